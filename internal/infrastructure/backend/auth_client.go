package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/credexa/session-gateway/internal/core/domain"
	"github.com/credexa/session-gateway/internal/core/ports"
)

// AuthClient talks to the login service. It deliberately uses a plain HTTP
// client: a 401 here means rejected credentials or an invalid token, never a
// session-expiry event.
type AuthClient struct {
	baseURL string
	client  *http.Client
}

var _ ports.AuthBackend = (*AuthClient)(nil)

func NewAuthClient(baseURL string) *AuthClient {
	return &AuthClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultClientTimeout},
	}
}

type loginRequest struct {
	Identifier string `json:"usernameOrEmailOrMobile"`
	Password   string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    struct {
		Token string              `json:"token"`
		User  *domain.UserProfile `json:"user"`
	} `json:"data"`
}

// Login exchanges credentials for a session token and profile.
func (c *AuthClient) Login(ctx context.Context, identifier, password string) (*domain.Session, error) {
	var resp loginResponse
	err := doJSON(ctx, c.client, http.MethodPost, c.baseURL+"/api/auth/login", loginRequest{
		Identifier: identifier,
		Password:   password,
	}, &resp)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			if se.Code == http.StatusUnauthorized || se.Code == http.StatusBadRequest || se.Code == http.StatusNotFound {
				return nil, domain.NewRejectedError(se.message())
			}
			return nil, domain.NewUnknownError(se)
		}
		return nil, domain.NewNetworkError(err)
	}

	if !resp.Success {
		return nil, domain.NewRejectedError(resp.Message)
	}
	sess := &domain.Session{Token: resp.Data.Token, User: resp.Data.User}
	if !sess.Valid() {
		return nil, domain.NewUnknownError(errors.New("login response missing token or user"))
	}
	return sess, nil
}

// oauthResponse is the flat shape the login service returns for SSO logins.
type oauthResponse struct {
	Token             string            `json:"token"`
	UserID            int64             `json:"userId"`
	Username          string            `json:"username"`
	Email             string            `json:"email"`
	MobileNumber      string            `json:"mobileNumber"`
	Roles             []domain.RoleName `json:"roles"`
	PreferredLanguage string            `json:"preferredLanguage"`
	PreferredCurrency string            `json:"preferredCurrency"`
}

// OAuthLogin exchanges a third-party identity token for a backend session.
func (c *AuthClient) OAuthLogin(ctx context.Context, exchange ports.OAuthExchange) (*domain.Session, error) {
	var resp oauthResponse
	err := doJSON(ctx, c.client, http.MethodPost, c.baseURL+"/oauth2/login", exchange, &resp)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			if se.Code == http.StatusUnauthorized || se.Code == http.StatusBadRequest {
				return nil, domain.NewRejectedError(se.message())
			}
			return nil, domain.NewUnknownError(se)
		}
		return nil, domain.NewNetworkError(err)
	}

	sess := &domain.Session{
		Token: resp.Token,
		User: &domain.UserProfile{
			UserID:            resp.UserID,
			Username:          resp.Username,
			Email:             resp.Email,
			MobileNumber:      resp.MobileNumber,
			Roles:             resp.Roles,
			PreferredLanguage: resp.PreferredLanguage,
			PreferredCurrency: resp.PreferredCurrency,
		},
	}
	if !sess.Valid() {
		return nil, domain.NewUnknownError(errors.New("oauth response missing token"))
	}
	return sess, nil
}

// Logout notifies the backend that the session ended. Callers treat failures
// as best-effort.
func (c *AuthClient) Logout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{Code: resp.StatusCode}
	}
	return nil
}

type validateRequest struct {
	Token string `json:"token"`
}

type validateResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username,omitempty"`
}

// ValidateToken reports whether the backend still accepts the token. A
// rejection status counts as invalid; transport failures surface as errors so
// the caller can distinguish "rejected" from "unreachable".
func (c *AuthClient) ValidateToken(ctx context.Context, token string) (bool, error) {
	var resp validateResponse
	err := doJSON(ctx, c.client, http.MethodPost, c.baseURL+"/api/auth/validate-token", validateRequest{Token: token}, &resp)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.Code == http.StatusUnauthorized {
			return false, nil
		}
		return false, err
	}
	return resp.Valid, nil
}
