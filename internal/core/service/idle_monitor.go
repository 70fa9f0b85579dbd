package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/credexa/session-gateway/internal/core/domain"
	"github.com/credexa/session-gateway/internal/core/ports"
)

// DefaultIdleTimeout matches the UI's five-minute inactivity window.
const DefaultIdleTimeout = 5 * time.Minute

// IdleMonitor forces logout after a period with no user activity, only while
// a session exists. It follows the session store: authentication attaches the
// activity listener and arms the deadline, deauthentication (any path)
// cancels the deadline and detaches. Each attach has exactly one matching
// detach, so repeated login/logout cycles leak nothing.
type IdleMonitor struct {
	timeout   time.Duration
	source    ports.ActivitySource
	clock     ports.Clock
	lifecycle ports.AuthLifecycle
	store     ports.SessionStore
	log       zerolog.Logger

	mu             sync.Mutex
	timer          ports.Timer
	cancelActivity func()
	unsubStore     func()
}

func NewIdleMonitor(timeout time.Duration, source ports.ActivitySource, clock ports.Clock, lifecycle ports.AuthLifecycle, store ports.SessionStore, log zerolog.Logger) *IdleMonitor {
	if timeout <= 0 {
		timeout = DefaultIdleTimeout
	}
	return &IdleMonitor{
		timeout:   timeout,
		source:    source,
		clock:     clock,
		lifecycle: lifecycle,
		store:     store,
		log:       log,
	}
}

// Start begins following the session store. If a session already exists the
// deadline is armed immediately.
func (m *IdleMonitor) Start() {
	m.mu.Lock()
	if m.unsubStore == nil {
		m.unsubStore = m.store.Subscribe(m.onSessionChange)
	}
	m.mu.Unlock()

	if m.store.Authenticated() {
		m.attach()
	}
}

// Stop detaches everything. Safe to call repeatedly.
func (m *IdleMonitor) Stop() {
	m.detach()

	m.mu.Lock()
	if m.unsubStore != nil {
		m.unsubStore()
		m.unsubStore = nil
	}
	m.mu.Unlock()
}

func (m *IdleMonitor) onSessionChange(sess *domain.Session) {
	if sess != nil {
		m.attach()
	} else {
		m.detach()
	}
}

// attach subscribes to activity and arms a fresh deadline. Re-attaching while
// attached only rearms the deadline.
func (m *IdleMonitor) attach() {
	m.mu.Lock()
	if m.cancelActivity == nil {
		m.cancelActivity = m.source.Subscribe(m.onActivity)
	}
	m.rearmLocked()
	m.mu.Unlock()
}

// detach cancels the pending deadline and removes the activity listener.
func (m *IdleMonitor) detach() {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if m.cancelActivity != nil {
		m.cancelActivity()
		m.cancelActivity = nil
	}
	m.mu.Unlock()
}

// onActivity pushes the deadline out by the full timeout.
func (m *IdleMonitor) onActivity() {
	m.mu.Lock()
	if m.cancelActivity != nil {
		m.rearmLocked()
	}
	m.mu.Unlock()
}

func (m *IdleMonitor) rearmLocked() {
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = m.clock.AfterFunc(m.timeout, m.onDeadline)
}

// onDeadline fires when the window elapsed with no activity.
func (m *IdleMonitor) onDeadline() {
	m.mu.Lock()
	armed := m.timer != nil
	m.timer = nil
	m.mu.Unlock()

	if !armed || !m.store.Authenticated() {
		return
	}

	m.log.Info().Dur("idle_timeout", m.timeout).Msg("user idle, forcing logout")
	if err := m.lifecycle.Logout(context.Background(), domain.ReasonIdle); err != nil {
		m.log.Error().Err(err).Msg("idle logout failed")
	}
}
