package service

import (
	"sync"

	"github.com/credexa/session-gateway/internal/core/ports"
)

// ActivityHub fans user-activity signals out to subscribers. The HTTP layer
// emits into it on every UI request and activity beacon; tests emit into it
// directly.
type ActivityHub struct {
	mu     sync.Mutex
	subs   map[int]func()
	nextID int
}

var _ ports.ActivitySource = (*ActivityHub)(nil)

func NewActivityHub() *ActivityHub {
	return &ActivityHub{subs: make(map[int]func())}
}

// Subscribe registers a callback fired on every activity event.
func (h *ActivityHub) Subscribe(fn func()) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Emit signals one activity event to all subscribers.
func (h *ActivityHub) Emit() {
	h.mu.Lock()
	subs := make([]func(), 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	h.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// SubscriberCount reports the number of active subscriptions.
func (h *ActivityHub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
