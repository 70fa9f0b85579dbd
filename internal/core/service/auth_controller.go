package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/credexa/session-gateway/internal/core/domain"
	"github.com/credexa/session-gateway/internal/core/ports"
	"github.com/credexa/session-gateway/pkg/tokens"
)

// AuthController orchestrates the authentication lifecycle:
// UNINITIALIZED → RESTORING → {AUTHENTICATED, UNAUTHENTICATED}, with logins
// and logouts moving between the last two states. All session mutation flows
// through it; the store itself never talks to the backend.
type AuthController struct {
	store    ports.SessionStore
	backend  ports.AuthBackend
	audit    ports.AuditRecorder
	validate *validator.Validate
	log      zerolog.Logger

	state atomic.Int32

	onRestore func()
	onLogout  func(domain.LogoutReason)

	mu         sync.Mutex
	lastReason domain.LogoutReason
}

var (
	_ ports.AuthLifecycle        = (*AuthController)(nil)
	_ ports.AuthRejectionHandler = (*AuthController)(nil)
)

// NewAuthController wires the controller. audit may be nil when no audit
// trail is configured.
func NewAuthController(store ports.SessionStore, backend ports.AuthBackend, audit ports.AuditRecorder, log zerolog.Logger) *AuthController {
	c := &AuthController{
		store:    store,
		backend:  backend,
		audit:    audit,
		validate: validator.New(),
		log:      log,
	}
	c.state.Store(int32(domain.StateUninitialized))
	return c
}

// OnRestore registers a callback fired after a persisted session is restored.
// Register before Initialize; not safe to call concurrently with it.
func (c *AuthController) OnRestore(fn func()) {
	c.onRestore = fn
}

// OnLogout registers a callback fired once per ended session with its reason.
// Register before the controller starts handling requests.
func (c *AuthController) OnLogout(fn func(domain.LogoutReason)) {
	c.onLogout = fn
}

// State returns the current lifecycle phase.
func (c *AuthController) State() domain.AuthState {
	return domain.AuthState(c.state.Load())
}

// LastLogoutReason reports why the most recent session ended. Cleared on the
// next successful login.
func (c *AuthController) LastLogoutReason() domain.LogoutReason {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastReason
}

// Initialize restores a persisted session and confirms it against the
// backend. A token the backend rejects is discarded through the regular
// logout path; a backend that cannot be reached leaves the restored session
// in place optimistically (the next 401 will end it).
func (c *AuthController) Initialize(ctx context.Context) {
	c.state.Store(int32(domain.StateRestoring))

	err := c.store.Restore(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			c.log.Warn().Err(err).Msg("session restore failed")
		}
		c.state.Store(int32(domain.StateUnauthenticated))
		return
	}

	token := c.store.Token()
	if tokens.Expired(token, time.Now()) {
		c.log.Info().Msg("restored token already expired")
		c.state.Store(int32(domain.StateAuthenticated))
		_ = c.Logout(ctx, domain.ReasonExpired)
		return
	}

	valid, err := c.backend.ValidateToken(ctx, token)
	switch {
	case err != nil:
		c.log.Warn().Err(err).Msg("token validation unreachable, keeping restored session")
		c.state.Store(int32(domain.StateAuthenticated))
	case !valid:
		c.state.Store(int32(domain.StateAuthenticated))
		_ = c.Logout(ctx, domain.ReasonInvalid)
		return
	default:
		c.state.Store(int32(domain.StateAuthenticated))
	}

	c.record(ctx, ports.AuditEvent{
		Username: c.username(),
		Type:     ports.AuditSessionRestore,
		Success:  true,
	})
	if c.onRestore != nil {
		c.onRestore()
	}
	c.log.Info().Str("user", c.username()).Msg("session restored")
}

type credentials struct {
	Identifier string `validate:"required,min=3"`
	Password   string `validate:"required"`
}

// Login authenticates against the login service. On success the session is
// stored and the controller becomes AUTHENTICATED; on failure the store is
// left untouched and a typed error with a displayable message is returned.
//
// A successful response that lands after an intervening logout is discarded:
// the store epoch is captured before dispatch and checked before commit.
func (c *AuthController) Login(ctx context.Context, identifier, password string) (*domain.Session, error) {
	if err := c.validate.Struct(credentials{Identifier: identifier, Password: password}); err != nil {
		return nil, domain.NewValidationError("username and password are required")
	}

	epoch := c.store.Epoch()

	sess, err := c.backend.Login(ctx, identifier, password)
	if err != nil {
		ae := domain.AsAuthError(err)
		c.record(ctx, ports.AuditEvent{
			Username: identifier,
			Type:     ports.AuditLoginFailure,
			Detail:   string(ae.Kind),
		})
		c.log.Info().Str("identifier", identifier).Str("kind", string(ae.Kind)).Msg("login failed")
		return nil, ae
	}

	if err := c.commit(ctx, sess, epoch); err != nil {
		return nil, err
	}

	c.record(ctx, ports.AuditEvent{
		Username: sess.User.Username,
		Type:     ports.AuditLoginSuccess,
		Success:  true,
	})
	c.log.Info().Str("user", sess.User.Username).Msg("login successful")
	return sess, nil
}

// OAuthLogin exchanges a third-party identity token for a backend session.
// Fields in the exchange beyond provider and idToken are population hints
// only; the committed profile comes from the backend response.
func (c *AuthController) OAuthLogin(ctx context.Context, exchange ports.OAuthExchange) (*domain.Session, error) {
	if err := c.validate.Struct(exchange); err != nil {
		return nil, domain.NewValidationError("provider and identity token are required")
	}

	epoch := c.store.Epoch()

	sess, err := c.backend.OAuthLogin(ctx, exchange)
	if err != nil {
		ae := domain.AsAuthError(err)
		c.record(ctx, ports.AuditEvent{
			Username: exchange.Email,
			Type:     ports.AuditLoginFailure,
			Detail:   "oauth:" + string(ae.Kind),
		})
		c.log.Info().Str("provider", exchange.Provider).Str("kind", string(ae.Kind)).Msg("oauth login failed")
		return nil, ae
	}

	if err := c.commit(ctx, sess, epoch); err != nil {
		return nil, err
	}

	c.record(ctx, ports.AuditEvent{
		Username: sess.User.Username,
		Type:     ports.AuditOAuthLogin,
		Success:  true,
		Detail:   exchange.Provider,
	})
	c.log.Info().Str("user", sess.User.Username).Str("provider", exchange.Provider).Msg("oauth login successful")
	return sess, nil
}

// commit stores a successful login result unless a logout moved the epoch
// while the request was in flight.
func (c *AuthController) commit(ctx context.Context, sess *domain.Session, epoch uint64) error {
	if !sess.Valid() {
		return domain.NewUnknownError(errors.New("backend returned an incomplete session"))
	}
	if c.store.Epoch() != epoch {
		c.log.Warn().Msg("discarding stale login response after logout")
		return domain.NewRejectedError("session ended before login completed")
	}
	if err := c.store.SetSession(ctx, sess.Token, sess.User); err != nil {
		return domain.NewUnknownError(err)
	}

	c.mu.Lock()
	c.lastReason = ""
	c.mu.Unlock()
	c.state.Store(int32(domain.StateAuthenticated))
	return nil
}

// Logout ends the session. The backend notification is best-effort; the
// local session is cleared unconditionally. Idempotent: logging out while
// unauthenticated is a no-op.
func (c *AuthController) Logout(ctx context.Context, reason domain.LogoutReason) error {
	if !c.store.Authenticated() {
		c.state.Store(int32(domain.StateUnauthenticated))
		return nil
	}

	username := c.username()
	token := c.store.Token()

	// Tokens the backend already rejected are not worth announcing.
	if token != "" && reason != domain.ReasonExpired && reason != domain.ReasonInvalid {
		if err := c.backend.Logout(ctx, token); err != nil {
			c.log.Warn().Err(err).Msg("backend logout notification failed")
		}
	}

	if err := c.store.ClearSession(ctx); err != nil {
		c.log.Warn().Err(err).Msg("persisted session clear failed")
	}

	c.mu.Lock()
	if reason == "" {
		reason = domain.ReasonManual
	}
	c.lastReason = reason
	c.mu.Unlock()
	c.state.Store(int32(domain.StateUnauthenticated))

	c.record(ctx, ports.AuditEvent{
		Username: username,
		Type:     auditTypeForReason(reason),
		Success:  true,
		Detail:   string(reason),
	})
	if c.onLogout != nil {
		c.onLogout(reason)
	}
	c.log.Info().Str("user", username).Str("reason", string(reason)).Msg("logged out")
	return nil
}

// ValidateToken asks the backend whether it still accepts the token.
func (c *AuthController) ValidateToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	return c.backend.ValidateToken(ctx, token)
}

// HandleAuthRejection is the single global path for a 401 observed on any
// backend call: the session is cleared exactly once per rejection event.
// Rejections arriving after the session already ended are no-ops.
func (c *AuthController) HandleAuthRejection(ctx context.Context) {
	if !c.store.Authenticated() {
		return
	}
	_ = c.Logout(ctx, domain.ReasonExpired)
}

func (c *AuthController) username() string {
	if u := c.store.User(); u != nil {
		return u.Username
	}
	return ""
}

func (c *AuthController) record(ctx context.Context, event ports.AuditEvent) {
	if c.audit == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	if err := c.audit.Record(ctx, event); err != nil {
		c.log.Warn().Err(err).Str("event", string(event.Type)).Msg("audit write failed")
	}
}

func auditTypeForReason(reason domain.LogoutReason) ports.AuditEventType {
	switch reason {
	case domain.ReasonIdle:
		return ports.AuditIdleTimeout
	case domain.ReasonExpired, domain.ReasonInvalid:
		return ports.AuditSessionExpired
	default:
		return ports.AuditLogout
	}
}
