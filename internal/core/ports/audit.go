package ports

import (
	"context"
	"time"
)

// AuditEventType labels an authentication-lifecycle event.
type AuditEventType string

const (
	AuditLoginSuccess   AuditEventType = "LOGIN_SUCCESS"
	AuditLoginFailure   AuditEventType = "LOGIN_FAILURE"
	AuditOAuthLogin     AuditEventType = "OAUTH_LOGIN"
	AuditLogout         AuditEventType = "LOGOUT"
	AuditIdleTimeout    AuditEventType = "IDLE_TIMEOUT"
	AuditSessionExpired AuditEventType = "SESSION_EXPIRED"
	AuditSessionRestore AuditEventType = "SESSION_RESTORED"
)

// AuditEvent is one entry in the authentication audit trail.
type AuditEvent struct {
	Username  string
	Type      AuditEventType
	Success   bool
	Detail    string
	Timestamp time.Time
}

// AuditRecorder persists audit events. Writes are best-effort: callers log
// failures and move on.
type AuditRecorder interface {
	Record(ctx context.Context, event AuditEvent) error
}
