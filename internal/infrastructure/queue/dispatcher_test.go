package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/credexa/session-gateway/internal/core/ports"
)

type collectingRecorder struct {
	mu     sync.Mutex
	events []ports.AuditEvent
	done   chan struct{}
	expect int
}

func (r *collectingRecorder) Record(_ context.Context, event ports.AuditEvent) error {
	r.mu.Lock()
	r.events = append(r.events, event)
	if len(r.events) == r.expect {
		close(r.done)
	}
	r.mu.Unlock()
	return nil
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	recorder := &collectingRecorder{done: make(chan struct{}), expect: 3}
	d := NewDispatcher(2, recorder, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, ev := range []ports.AuditEvent{
		{Username: "alice", Type: ports.AuditLoginSuccess},
		{Username: "alice", Type: ports.AuditLogout},
		{Username: "bob", Type: ports.AuditLoginFailure},
	} {
		if err := d.Record(ctx, ev); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	select {
	case <-recorder.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("events not delivered in time")
	}
}

func TestDispatcher_PerUserOrdering(t *testing.T) {
	recorder := &collectingRecorder{done: make(chan struct{}), expect: 4}
	d := NewDispatcher(4, recorder, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	sequence := []ports.AuditEventType{
		ports.AuditLoginSuccess,
		ports.AuditIdleTimeout,
		ports.AuditLoginSuccess,
		ports.AuditLogout,
	}
	for _, typ := range sequence {
		_ = d.Record(ctx, ports.AuditEvent{Username: "alice", Type: typ})
	}

	select {
	case <-recorder.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("events not delivered in time")
	}

	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	for i, typ := range sequence {
		if recorder.events[i].Type != typ {
			t.Fatalf("event %d out of order: got %s, want %s", i, recorder.events[i].Type, typ)
		}
	}
}
