package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/credexa/session-gateway/internal/core/domain"
	"github.com/credexa/session-gateway/internal/core/ports"
)

// stubStore is a minimal in-memory session store for guard tests.
type stubStore struct {
	sess  *domain.Session
	epoch uint64
}

func (s *stubStore) Restore(_ context.Context) error { return domain.ErrSessionNotFound }

func (s *stubStore) SetSession(_ context.Context, token string, user *domain.UserProfile) error {
	s.sess = &domain.Session{Token: token, User: user}
	return nil
}

func (s *stubStore) ClearSession(_ context.Context) error {
	if s.sess != nil {
		s.sess = nil
		s.epoch++
	}
	return nil
}

func (s *stubStore) Token() string {
	if s.sess == nil {
		return ""
	}
	return s.sess.Token
}

func (s *stubStore) User() *domain.UserProfile {
	if s.sess == nil {
		return nil
	}
	return s.sess.User
}

func (s *stubStore) Authenticated() bool { return s.sess != nil }
func (s *stubStore) Epoch() uint64       { return s.epoch }

func (s *stubStore) Subscribe(_ ports.SessionObserver) func() { return func() {} }

type stubStatus struct {
	state  domain.AuthState
	reason domain.LogoutReason
}

func (s *stubStatus) State() domain.AuthState               { return s.state }
func (s *stubStatus) LastLogoutReason() domain.LogoutReason { return s.reason }

func guardContext(t *testing.T, accept string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/fd-accounts", nil)
	if accept != "" {
		req.Header.Set(echo.HeaderAccept, accept)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authenticatedStore(roles ...domain.RoleName) *stubStore {
	return &stubStore{sess: &domain.Session{
		Token: "tok",
		User:  &domain.UserProfile{UserID: 1, Username: "alice", Roles: roles},
	}}
}

func okHandler(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true
		return c.NoContent(http.StatusOK)
	}
}

func TestGuard_RestoringRendersNeutralState(t *testing.T) {
	guard := NewGuard(&stubStore{}, &stubStatus{state: domain.StateRestoring})
	c, rec := guardContext(t, "")

	called := false
	handler := guard.RequireAuth()(okHandler(&called))
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if called {
		t.Fatalf("no decision should be made while restoring")
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 while restoring, got %d", rec.Code)
	}
}

func TestGuard_UnauthenticatedBrowserRedirectsToLogin(t *testing.T) {
	guard := NewGuard(&stubStore{}, &stubStatus{state: domain.StateUnauthenticated})
	c, rec := guardContext(t, echo.MIMETextHTML)

	called := false
	handler := guard.RequireAuth()(okHandler(&called))
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if called {
		t.Fatalf("next must not run unauthenticated")
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGuard_IdleLogoutCarriesReason(t *testing.T) {
	guard := NewGuard(&stubStore{}, &stubStatus{state: domain.StateUnauthenticated, reason: domain.ReasonIdle})
	c, rec := guardContext(t, echo.MIMETextHTML)

	handler := guard.RequireAuth()(okHandler(new(bool)))
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Header().Get("Location"); got != "/login?reason=idle" {
		t.Fatalf("expected idle reason on redirect, got %q", got)
	}
}

func TestGuard_UnauthenticatedAPIGets401(t *testing.T) {
	guard := NewGuard(&stubStore{}, &stubStatus{state: domain.StateUnauthenticated})
	c, rec := guardContext(t, echo.MIMEApplicationJSON)

	handler := guard.RequireAuth()(okHandler(new(bool)))
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for API caller, got %d", rec.Code)
	}
}

func TestGuard_ModuleAllowed(t *testing.T) {
	store := authenticatedStore(domain.RoleAdmin)
	guard := NewGuard(store, &stubStatus{state: domain.StateAuthenticated})
	c, rec := guardContext(t, "")

	called := false
	handler := guard.RequireModule(domain.ModuleSettings)(okHandler(&called))
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("ROLE_ADMIN must reach settings, got code %d", rec.Code)
	}
}

func TestGuard_ModuleDenied(t *testing.T) {
	store := authenticatedStore(domain.RoleUser)
	guard := NewGuard(store, &stubStatus{state: domain.StateAuthenticated})

	// Browser navigation: redirect to the safe default.
	c, rec := guardContext(t, echo.MIMETextHTML)
	called := false
	handler := guard.RequireModule(domain.ModuleFDAccounts)(okHandler(&called))
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if called {
		t.Fatalf("ROLE_USER must not reach fd_accounts")
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect home, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	// API call: plain 403.
	c, rec = guardContext(t, echo.MIMEApplicationJSON)
	handler = guard.RequireModule(domain.ModuleFDAccounts)(okHandler(new(bool)))
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestGuard_DecisionFollowsStoreState(t *testing.T) {
	store := authenticatedStore(domain.RoleAdmin)
	status := &stubStatus{state: domain.StateAuthenticated}
	guard := NewGuard(store, status)

	called := false
	handler := guard.RequireModule(domain.ModuleDashboard)(okHandler(&called))

	c, _ := guardContext(t, "")
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("authenticated request should pass")
	}

	// The session ends (e.g. idle timeout); the very next evaluation denies.
	_ = store.ClearSession(context.Background())
	status.state = domain.StateUnauthenticated

	called = false
	c, rec := guardContext(t, "")
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if called {
		t.Fatalf("stale authorization decision survived a logout")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}
