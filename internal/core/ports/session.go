package ports

import (
	"context"

	"github.com/credexa/session-gateway/internal/core/domain"
)

// SessionKeystore persists the session record across gateway restarts. The
// store is the only component allowed to touch it. Load returns
// domain.ErrSessionNotFound when nothing is persisted.
type SessionKeystore interface {
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Clear(ctx context.Context) error
}

// SessionObserver is invoked synchronously after every session mutation,
// before the mutating call returns. The session argument is nil when the
// session was cleared.
type SessionObserver func(session *domain.Session)

// SessionStore is the single source of truth for authentication state.
type SessionStore interface {
	// Restore loads a previously persisted session. Restoration marks the
	// store authenticated optimistically; the lifecycle controller confirms
	// validity afterwards.
	Restore(ctx context.Context) error
	// SetSession atomically replaces token and user and persists both.
	SetSession(ctx context.Context, token string, user *domain.UserProfile) error
	// ClearSession atomically removes token and user, in memory and persisted.
	// Clearing an already-empty store is a no-op.
	ClearSession(ctx context.Context) error

	Token() string
	User() *domain.UserProfile
	Authenticated() bool

	// Epoch is a monotonic counter bumped on every ClearSession. Callers use
	// it to detect that a logout intervened while a request was in flight.
	Epoch() uint64

	// Subscribe registers an observer and returns its removal function.
	Subscribe(obs SessionObserver) (unsubscribe func())
}
