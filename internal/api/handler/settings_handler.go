package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SettingsView is the admin-visible snapshot of gateway configuration.
// Secrets never appear here.
type SettingsView struct {
	Environment string            `json:"environment"`
	IdleTimeout time.Duration     `json:"-"`
	Services    map[string]string `json:"services"`
}

// SettingsHandler serves the settings module.
type SettingsHandler struct {
	view SettingsView
}

func NewSettingsHandler(view SettingsView) *SettingsHandler {
	return &SettingsHandler{view: view}
}

type settingsResponse struct {
	Environment string            `json:"environment"`
	IdleTimeout string            `json:"idleTimeout"`
	Services    map[string]string `json:"services"`
}

func (h *SettingsHandler) Settings(c echo.Context) error {
	return c.JSON(http.StatusOK, settingsResponse{
		Environment: h.view.Environment,
		IdleTimeout: h.view.IdleTimeout.String(),
		Services:    h.view.Services,
	})
}
