package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/credexa/session-gateway/internal/core/domain"
	"github.com/credexa/session-gateway/internal/core/ports"
)

// DashboardHandler serves the landing view: who is signed in and which
// modules their roles unlock.
type DashboardHandler struct {
	store ports.SessionStore
}

func NewDashboardHandler(store ports.SessionStore) *DashboardHandler {
	return &DashboardHandler{store: store}
}

type dashboardResponse struct {
	User    *domain.UserProfile `json:"user"`
	Modules []domain.Module     `json:"modules"`
}

func (h *DashboardHandler) Dashboard(c echo.Context) error {
	user := h.store.User()
	if user == nil {
		return domain.ErrNotAuthenticated
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		User:    user,
		Modules: domain.UserModules(user.Roles),
	})
}
