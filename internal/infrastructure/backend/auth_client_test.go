package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/credexa/session-gateway/internal/core/domain"
	"github.com/credexa/session-gateway/internal/core/ports"
)

func TestAuthClient_LoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["usernameOrEmailOrMobile"] != "alice" {
			t.Fatalf("unexpected identifier field: %v", req)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"token": "tok-1",
				"user": map[string]any{
					"userId":   7,
					"username": "alice",
					"roles":    []string{"ROLE_ADMIN"},
				},
			},
		})
	}))
	defer srv.Close()

	client := NewAuthClient(srv.URL)
	sess, err := client.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Token != "tok-1" || sess.User.Username != "alice" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if !sess.User.HasRole(domain.RoleAdmin) {
		t.Fatalf("roles not decoded: %+v", sess.User)
	}
}

func TestAuthClient_LoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Invalid credentials"})
	}))
	defer srv.Close()

	client := NewAuthClient(srv.URL)
	_, err := client.Login(context.Background(), "alice", "wrong")
	ae := domain.AsAuthError(err)
	if ae.Kind != domain.KindRejected {
		t.Fatalf("expected rejected, got %v", err)
	}
	if ae.DisplayMessage() != "Invalid credentials" {
		t.Fatalf("expected backend message, got %q", ae.DisplayMessage())
	}
}

func TestAuthClient_LoginEnvelopeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Account is locked"})
	}))
	defer srv.Close()

	client := NewAuthClient(srv.URL)
	_, err := client.Login(context.Background(), "alice", "pw")
	ae := domain.AsAuthError(err)
	if ae.Kind != domain.KindRejected || ae.DisplayMessage() != "Account is locked" {
		t.Fatalf("expected rejected with message, got %v", err)
	}
}

func TestAuthClient_LoginMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{}})
	}))
	defer srv.Close()

	client := NewAuthClient(srv.URL)
	_, err := client.Login(context.Background(), "alice", "pw")
	ae := domain.AsAuthError(err)
	if ae.Kind != domain.KindUnknown {
		t.Fatalf("expected unknown error for incomplete session, got %v", err)
	}
}

func TestAuthClient_LoginNetworkError(t *testing.T) {
	srv := httptest.NewServer(nil)
	srv.Close() // nothing listening

	client := NewAuthClient(srv.URL)
	_, err := client.Login(context.Background(), "alice", "pw")
	ae := domain.AsAuthError(err)
	if ae.Kind != domain.KindNetwork {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestAuthClient_OAuthLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth2/login" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["provider"] != "google" || req["idToken"] != "id-tok" {
			t.Fatalf("unexpected exchange payload: %v", req)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token":             "tok-sso",
			"userId":            9,
			"username":          "alice.google",
			"email":             "alice@gmail.test",
			"roles":             []string{"ROLE_USER"},
			"preferredLanguage": "en",
			"preferredCurrency": "INR",
		})
	}))
	defer srv.Close()

	client := NewAuthClient(srv.URL)
	sess, err := client.OAuthLogin(context.Background(), ports.OAuthExchange{
		Provider: "google",
		IDToken:  "id-tok",
		Email:    "alice@gmail.test",
	})
	if err != nil {
		t.Fatalf("oauth login: %v", err)
	}
	if sess.Token != "tok-sso" || sess.User.Username != "alice.google" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.User.PreferredCurrency != "INR" {
		t.Fatalf("profile fields not decoded: %+v", sess.User)
	}
}

func TestAuthClient_LogoutSendsBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/logout" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewAuthClient(srv.URL)
	if err := client.Logout(context.Background(), "tok-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestAuthClient_ValidateToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(map[string]any{"valid": req["token"] == "good"})
	}))
	defer srv.Close()

	client := NewAuthClient(srv.URL)

	valid, err := client.ValidateToken(context.Background(), "good")
	if err != nil || !valid {
		t.Fatalf("expected valid=true, got %v/%v", valid, err)
	}
	valid, err = client.ValidateToken(context.Background(), "bad")
	if err != nil || valid {
		t.Fatalf("expected valid=false, got %v/%v", valid, err)
	}
}

func TestAuthClient_ValidateTokenRejectionStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewAuthClient(srv.URL)
	valid, err := client.ValidateToken(context.Background(), "expired")
	if err != nil {
		t.Fatalf("401 is a definitive rejection, not an error: %v", err)
	}
	if valid {
		t.Fatalf("expected invalid")
	}
}
