package ports

import (
	"context"

	"github.com/credexa/session-gateway/internal/core/domain"
)

// OAuthExchange carries a third-party identity token to be exchanged for a
// backend session. Email, Name and Picture are population hints only; the
// authoritative profile comes from the backend response.
type OAuthExchange struct {
	Provider    string `json:"provider" validate:"required"`
	IDToken     string `json:"idToken" validate:"required"`
	AccessToken string `json:"accessToken,omitempty"`
	Email       string `json:"email,omitempty"`
	Name        string `json:"name,omitempty"`
	Picture     string `json:"picture,omitempty"`
}

// AuthBackend is the login-service REST API.
type AuthBackend interface {
	// Login exchanges credentials for a session. The identifier may be a
	// username, email address or mobile number.
	Login(ctx context.Context, identifier, password string) (*domain.Session, error)
	// OAuthLogin exchanges a third-party identity token for a session.
	OAuthLogin(ctx context.Context, exchange OAuthExchange) (*domain.Session, error)
	// Logout notifies the backend that the token's session ended.
	Logout(ctx context.Context, token string) error
	// ValidateToken reports whether the backend still accepts the token.
	ValidateToken(ctx context.Context, token string) (bool, error)
}

// AuthLifecycle is the surface other components need from the auth
// controller: its current phase and the shared logout path.
type AuthLifecycle interface {
	State() domain.AuthState
	Logout(ctx context.Context, reason domain.LogoutReason) error
}

// AuthRejectionHandler reacts to an authentication-rejection response (401)
// observed on any backend call. Implementations must be idempotent per
// rejection event.
type AuthRejectionHandler interface {
	HandleAuthRejection(ctx context.Context)
}
