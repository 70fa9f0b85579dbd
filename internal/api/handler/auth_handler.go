package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/credexa/session-gateway/internal/api/metrics"
	"github.com/credexa/session-gateway/internal/core/domain"
	"github.com/credexa/session-gateway/internal/core/ports"
)

// AuthLifecycle is the controller surface the auth routes drive.
type AuthLifecycle interface {
	State() domain.AuthState
	Login(ctx context.Context, identifier, password string) (*domain.Session, error)
	OAuthLogin(ctx context.Context, exchange ports.OAuthExchange) (*domain.Session, error)
	Logout(ctx context.Context, reason domain.LogoutReason) error
}

type AuthHandler struct {
	lifecycle AuthLifecycle
	store     ports.SessionStore
}

func NewAuthHandler(lifecycle AuthLifecycle, store ports.SessionStore) *AuthHandler {
	return &AuthHandler{lifecycle: lifecycle, store: store}
}

type loginRequest struct {
	Identifier string `json:"usernameOrEmailOrMobile" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Authenticated bool                `json:"authenticated"`
	State         string              `json:"state"`
	User          *domain.UserProfile `json:"user,omitempty"`
	Modules       []domain.Module     `json:"modules,omitempty"`
}

// Login authenticates against the login service and establishes the gateway
// session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, err := h.lifecycle.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		ae := domain.AsAuthError(err)
		metrics.LoginAttemptsTotal.WithLabelValues(string(ae.Kind)).Inc()
		return ae
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: true,
		State:         h.lifecycle.State().String(),
		User:          sess.User,
		Modules:       domain.UserModules(sess.User.Roles),
	})
}

// OAuthLogin exchanges a third-party identity token for a gateway session.
func (h *AuthHandler) OAuthLogin(c echo.Context) error {
	var req ports.OAuthExchange
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, err := h.lifecycle.OAuthLogin(c.Request().Context(), req)
	if err != nil {
		ae := domain.AsAuthError(err)
		metrics.OAuthLoginsTotal.WithLabelValues(req.Provider, string(ae.Kind)).Inc()
		return ae
	}

	metrics.OAuthLoginsTotal.WithLabelValues(req.Provider, "success").Inc()
	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: true,
		State:         h.lifecycle.State().String(),
		User:          sess.User,
		Modules:       domain.UserModules(sess.User.Roles),
	})
}

// Logout ends the session. Always succeeds from the caller's point of view.
// Counting happens in the controller's logout hook, which sees every reason.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.lifecycle.Logout(c.Request().Context(), domain.ReasonManual); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session reports the current authentication state so the UI can bootstrap
// without a login round-trip.
func (h *AuthHandler) Session(c echo.Context) error {
	user := h.store.User()
	resp := sessionResponse{
		Authenticated: h.store.Authenticated(),
		State:         h.lifecycle.State().String(),
		User:          user,
	}
	if user != nil {
		resp.Modules = domain.UserModules(user.Roles)
	}
	return c.JSON(http.StatusOK, resp)
}

// Activity is the beacon endpoint the UI calls on pointer, key, scroll and
// touch events; the activity middleware on the route group does the actual
// signalling.
func (h *AuthHandler) Activity(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
