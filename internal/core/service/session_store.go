package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/credexa/session-gateway/internal/core/domain"
	"github.com/credexa/session-gateway/internal/core/ports"
)

// SessionStore is the single source of truth for authentication state. It
// keeps the session in memory for synchronous reads and mirrors it into a
// keystore so a gateway restart does not force re-login.
//
// Observers are notified synchronously before the mutating call returns, so a
// read by any observer immediately after sees the new state.
type SessionStore struct {
	keystore ports.SessionKeystore
	log      zerolog.Logger

	mu        sync.RWMutex
	session   *domain.Session
	epoch     uint64
	observers map[int]ports.SessionObserver
	nextObsID int
}

var _ ports.SessionStore = (*SessionStore)(nil)

func NewSessionStore(keystore ports.SessionKeystore, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		keystore:  keystore,
		log:       log,
		observers: make(map[int]ports.SessionObserver),
	}
}

// Restore loads a previously persisted session into memory. The store becomes
// authenticated optimistically; the auth controller confirms token validity
// afterwards. Returns domain.ErrSessionNotFound when nothing usable is
// persisted.
func (s *SessionStore) Restore(ctx context.Context) error {
	sess, err := s.keystore.Load(ctx)
	if err != nil {
		return err
	}
	if !sess.Valid() {
		// Half-written record: token without user or vice versa. Drop it
		// rather than restoring a session that breaks the invariant.
		if clearErr := s.keystore.Clear(ctx); clearErr != nil {
			s.log.Warn().Err(clearErr).Msg("failed to clear invalid persisted session")
		}
		return domain.ErrSessionNotFound
	}

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	s.notify(sess)
	return nil
}

// SetSession atomically replaces token and user, persists both, and marks the
// store authenticated.
func (s *SessionStore) SetSession(ctx context.Context, token string, user *domain.UserProfile) error {
	sess := &domain.Session{Token: token, User: user}
	if !sess.Valid() {
		return errors.New("session store: token and user must both be present")
	}

	if err := s.keystore.Save(ctx, sess); err != nil {
		return err
	}

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	s.notify(sess)
	return nil
}

// ClearSession removes the session from memory and from the keystore.
// Clearing an empty store is a no-op. The in-memory state is always cleared,
// even when the keystore delete fails.
func (s *SessionStore) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return nil
	}
	s.session = nil
	s.epoch++
	s.mu.Unlock()

	err := s.keystore.Clear(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted session")
	}

	s.notify(nil)
	return err
}

func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

func (s *SessionStore) User() *domain.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	return s.session.User
}

func (s *SessionStore) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil
}

// Epoch returns a counter that advances on every ClearSession. A caller that
// records the epoch before dispatching a request can detect that a logout
// intervened while the request was in flight.
func (s *SessionStore) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// Subscribe registers an observer and returns its removal function. Each
// subscribe has exactly one matching unsubscribe.
func (s *SessionStore) Subscribe(obs ports.SessionObserver) func() {
	s.mu.Lock()
	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = obs
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// notify runs outside the state lock so observers may read the store.
func (s *SessionStore) notify(sess *domain.Session) {
	s.mu.RLock()
	obs := make([]ports.SessionObserver, 0, len(s.observers))
	for _, o := range s.observers {
		obs = append(obs, o)
	}
	s.mu.RUnlock()

	for _, o := range obs {
		o(sess)
	}
}
