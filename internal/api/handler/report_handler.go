package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/credexa/session-gateway/internal/core/domain"
	"github.com/credexa/session-gateway/internal/core/ports"
)

// AuditReader reads back the authentication audit trail.
type AuditReader interface {
	RecentForUser(ctx context.Context, username string, limit int64) ([]ports.AuditEvent, error)
}

// ReportHandler serves the reports module from the audit trail.
type ReportHandler struct {
	audit AuditReader
	store ports.SessionStore
}

func NewReportHandler(audit AuditReader, store ports.SessionStore) *ReportHandler {
	return &ReportHandler{audit: audit, store: store}
}

type auditEntry struct {
	Username  string    `json:"username"`
	Type      string    `json:"type"`
	Success   bool      `json:"success"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// AuthActivity returns recent authentication events. Report viewers may
// query any username; everyone else sees only their own trail.
func (h *ReportHandler) AuthActivity(c echo.Context) error {
	user := h.store.User()
	if user == nil {
		return domain.ErrNotAuthenticated
	}

	username := user.Username
	if requested := c.QueryParam("username"); requested != "" && requested != username {
		if !user.HasRole(domain.RoleAdmin) && !user.HasRole(domain.RoleReportViewer) {
			return domain.ErrForbidden
		}
		username = requested
	}

	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	events, err := h.audit.RecentForUser(c.Request().Context(), username, limit)
	if err != nil {
		return err
	}

	entries := make([]auditEntry, 0, len(events))
	for _, ev := range events {
		entries = append(entries, auditEntry{
			Username:  ev.Username,
			Type:      string(ev.Type),
			Success:   ev.Success,
			Detail:    ev.Detail,
			Timestamp: ev.Timestamp,
		})
	}
	return c.JSON(http.StatusOK, entries)
}
