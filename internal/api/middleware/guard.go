package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/credexa/session-gateway/internal/api/metrics"
	"github.com/credexa/session-gateway/internal/core/domain"
	"github.com/credexa/session-gateway/internal/core/ports"
)

const loginPath = "/login"

// AuthStatus is what the guard needs from the auth controller: the lifecycle
// phase and why the last session ended.
type AuthStatus interface {
	State() domain.AuthState
	LastLogoutReason() domain.LogoutReason
}

// Guard decides, per navigation, whether to pass the request through, send
// the caller to the login entry point, or deny access. Decisions always read
// live session-store state, so a logout (manual, idle or expiry) takes effect
// on the very next request.
type Guard struct {
	store  ports.SessionStore
	status AuthStatus
}

func NewGuard(store ports.SessionStore, status AuthStatus) *Guard {
	return &Guard{store: store, status: status}
}

// RequireAuth gates routes that need a session but no particular module.
func (g *Guard) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if done, err := g.checkAuth(c, "none"); done {
				return err
			}
			return next(c)
		}
	}
}

// RequireModule gates module-scoped routes: the session must exist and at
// least one of the user's roles must grant the module.
func (g *Guard) RequireModule(module domain.Module) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if done, err := g.checkAuth(c, string(module)); done {
				return err
			}

			user := g.store.User()
			if user == nil || !domain.HasModulePermission(user.Roles, module) {
				metrics.GuardDenialsTotal.WithLabelValues(string(module), "forbidden").Inc()
				if wantsHTML(c) {
					// Safe default rather than an error page.
					return c.Redirect(http.StatusFound, "/")
				}
				return c.JSON(http.StatusForbidden, map[string]string{"error": "module access forbidden"})
			}

			return next(c)
		}
	}
}

// checkAuth handles the phases common to both guards. done reports that a
// response was already written.
func (g *Guard) checkAuth(c echo.Context, moduleLabel string) (done bool, err error) {
	switch g.status.State() {
	case domain.StateUninitialized, domain.StateRestoring:
		// No decision yet: neutral loading state instead of a premature
		// redirect.
		c.Response().Header().Set("Retry-After", "1")
		return true, c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "restoring"})
	}

	if !g.store.Authenticated() {
		metrics.GuardDenialsTotal.WithLabelValues(moduleLabel, "unauthenticated").Inc()
		if wantsHTML(c) {
			return true, c.Redirect(http.StatusFound, g.loginURL())
		}
		return true, c.JSON(http.StatusUnauthorized, map[string]string{
			"error":    "authentication required",
			"redirect": g.loginURL(),
		})
	}
	return false, nil
}

// loginURL carries the reason code for logouts the user did not ask for, so
// the login page can explain what happened.
func (g *Guard) loginURL() string {
	switch g.status.LastLogoutReason() {
	case domain.ReasonIdle:
		return loginPath + "?reason=idle"
	case domain.ReasonExpired, domain.ReasonInvalid:
		return loginPath + "?reason=expired"
	default:
		return loginPath
	}
}

// wantsHTML distinguishes browser navigations (redirect) from API calls
// (JSON status).
func wantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}
