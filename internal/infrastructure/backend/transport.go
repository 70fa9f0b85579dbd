// Package backend holds the REST clients for the Credexa microservices the
// gateway fronts: login, customer, product, FD-account and calculator.
package backend

import (
	"net/http"
	"time"
)

const defaultClientTimeout = 10 * time.Second

// TokenSource supplies the current session token; the session store satisfies
// it.
type TokenSource interface {
	Token() string
}

// Transport attaches the session bearer token to every outbound request and
// funnels authentication-rejection responses into a single callback. It is
// used by every authenticated data client; the auth client itself stays on a
// plain transport so a 401 from bad credentials is a form error, not a
// session-expiry event.
type Transport struct {
	base        http.RoundTripper
	tokens      TokenSource
	onRejection func()
}

func NewTransport(base http.RoundTripper, tokens TokenSource, onRejection func()) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, tokens: tokens, onRejection: onRejection}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := t.tokens.Token(); token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && t.onRejection != nil {
		t.onRejection()
	}
	return resp, nil
}

// NewHTTPClient builds the http.Client shared by the data clients.
func NewHTTPClient(tokens TokenSource, onRejection func()) *http.Client {
	return &http.Client{
		Timeout:   defaultClientTimeout,
		Transport: NewTransport(nil, tokens, onRejection),
	}
}
