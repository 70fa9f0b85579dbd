package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/credexa/session-gateway/internal/core/domain"
)

// memKeystore is an in-memory stand-in for the redis keystore.
type memKeystore struct {
	session  *domain.Session
	saveErr  error
	clearErr error
	saves    int
	clears   int
}

func (k *memKeystore) Load(_ context.Context) (*domain.Session, error) {
	if k.session == nil {
		return nil, domain.ErrSessionNotFound
	}
	return k.session, nil
}

func (k *memKeystore) Save(_ context.Context, session *domain.Session) error {
	if k.saveErr != nil {
		return k.saveErr
	}
	k.saves++
	k.session = session
	return nil
}

func (k *memKeystore) Clear(_ context.Context) error {
	if k.clearErr != nil {
		return k.clearErr
	}
	k.clears++
	k.session = nil
	return nil
}

func testProfile() *domain.UserProfile {
	return &domain.UserProfile{
		UserID:   7,
		Username: "alice",
		Email:    "alice@credexa.test",
		Roles:    []domain.RoleName{domain.RoleAdmin},
	}
}

func TestSessionStore_RoundTrip(t *testing.T) {
	store := NewSessionStore(&memKeystore{}, zerolog.Nop())
	ctx := context.Background()

	if store.Authenticated() {
		t.Fatalf("fresh store should be unauthenticated")
	}

	if err := store.SetSession(ctx, "tok-1", testProfile()); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	if store.Token() != "tok-1" {
		t.Fatalf("expected token tok-1, got %q", store.Token())
	}
	if u := store.User(); u == nil || u.Username != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if !store.Authenticated() {
		t.Fatalf("expected authenticated after SetSession")
	}

	if err := store.ClearSession(ctx); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	if store.Authenticated() || store.Token() != "" || store.User() != nil {
		t.Fatalf("expected empty store after clear")
	}
}

func TestSessionStore_InvariantRejectsPartialSession(t *testing.T) {
	store := NewSessionStore(&memKeystore{}, zerolog.Nop())
	ctx := context.Background()

	if err := store.SetSession(ctx, "", testProfile()); err == nil {
		t.Fatalf("expected error for missing token")
	}
	if err := store.SetSession(ctx, "tok", nil); err == nil {
		t.Fatalf("expected error for missing user")
	}
	if store.Authenticated() {
		t.Fatalf("store must stay unauthenticated after rejected set")
	}
}

func TestSessionStore_Restore(t *testing.T) {
	ks := &memKeystore{session: &domain.Session{Token: "tok-r", User: testProfile()}}
	store := NewSessionStore(ks, zerolog.Nop())

	if err := store.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !store.Authenticated() || store.Token() != "tok-r" {
		t.Fatalf("restored session not visible")
	}
}

func TestSessionStore_RestoreNothingPersisted(t *testing.T) {
	store := NewSessionStore(&memKeystore{}, zerolog.Nop())
	if err := store.Restore(context.Background()); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStore_RestoreDropsPartialRecord(t *testing.T) {
	ks := &memKeystore{session: &domain.Session{Token: "tok-only"}}
	store := NewSessionStore(ks, zerolog.Nop())

	if err := store.Restore(context.Background()); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound for partial record, got %v", err)
	}
	if ks.session != nil {
		t.Fatalf("partial persisted record should have been cleared")
	}
}

func TestSessionStore_ObserversNotifiedSynchronously(t *testing.T) {
	store := NewSessionStore(&memKeystore{}, zerolog.Nop())
	ctx := context.Background()

	var observed []*domain.Session
	unsubscribe := store.Subscribe(func(sess *domain.Session) {
		observed = append(observed, sess)
		// State must already be committed when the observer runs.
		if sess != nil && !store.Authenticated() {
			t.Fatalf("observer saw stale unauthenticated state")
		}
		if sess == nil && store.Authenticated() {
			t.Fatalf("observer saw stale authenticated state")
		}
	})

	if err := store.SetSession(ctx, "tok", testProfile()); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	if err := store.ClearSession(ctx); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}

	if len(observed) != 2 || observed[0] == nil || observed[1] != nil {
		t.Fatalf("unexpected notifications: %v", observed)
	}

	unsubscribe()
	_ = store.SetSession(ctx, "tok2", testProfile())
	if len(observed) != 2 {
		t.Fatalf("observer notified after unsubscribe")
	}
}

func TestSessionStore_ClearIdempotent(t *testing.T) {
	store := NewSessionStore(&memKeystore{}, zerolog.Nop())
	ctx := context.Background()

	_ = store.SetSession(ctx, "tok", testProfile())

	notifications := 0
	store.Subscribe(func(*domain.Session) { notifications++ })

	if err := store.ClearSession(ctx); err != nil {
		t.Fatalf("first clear: %v", err)
	}
	if err := store.ClearSession(ctx); err != nil {
		t.Fatalf("second clear should be a no-op, got %v", err)
	}
	if notifications != 1 {
		t.Fatalf("expected one net transition, got %d notifications", notifications)
	}
}

func TestSessionStore_EpochAdvancesOnClear(t *testing.T) {
	store := NewSessionStore(&memKeystore{}, zerolog.Nop())
	ctx := context.Background()

	before := store.Epoch()
	_ = store.SetSession(ctx, "tok", testProfile())
	if store.Epoch() != before {
		t.Fatalf("epoch must not move on set")
	}
	_ = store.ClearSession(ctx)
	if store.Epoch() != before+1 {
		t.Fatalf("epoch must advance on clear")
	}
	_ = store.ClearSession(ctx)
	if store.Epoch() != before+1 {
		t.Fatalf("no-op clear must not advance epoch")
	}
}

func TestSessionStore_MemoryClearedEvenWhenKeystoreFails(t *testing.T) {
	ks := &memKeystore{clearErr: context.DeadlineExceeded}
	store := NewSessionStore(ks, zerolog.Nop())
	ctx := context.Background()

	_ = store.SetSession(ctx, "tok", testProfile())
	if err := store.ClearSession(ctx); err == nil {
		t.Fatalf("expected keystore error to surface")
	}
	if store.Authenticated() {
		t.Fatalf("in-memory session must be gone regardless of keystore failure")
	}
}
