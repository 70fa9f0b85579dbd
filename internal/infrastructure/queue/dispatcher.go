package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/credexa/session-gateway/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 128
)

// Dispatcher decouples audit writes from the authentication path: events are
// routed to a fixed set of workers using consistent hashing on the username,
// preserving per-user event ordering while keeping the login/logout hot path
// free of database latency.
type Dispatcher struct {
	workers  []chan ports.AuditEvent
	recorder ports.AuditRecorder
	log      zerolog.Logger
}

var _ ports.AuditRecorder = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, recorder ports.AuditRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.AuditEvent, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an event for its user's worker. Audit is best-effort: when
// the worker's buffer is full the event is dropped and logged rather than
// blocking the caller.
func (d *Dispatcher) Record(_ context.Context, event ports.AuditEvent) error {
	select {
	case d.workers[d.shardIndex(event.Username)] <- event:
	default:
		d.log.Warn().
			Str("event", string(event.Type)).
			Str("username", event.Username).
			Msg("audit queue full, dropping event")
	}
	return nil
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.recorder.Record(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("event", string(event.Type)).
					Str("username", event.Username).
					Int("worker_id", id).
					Msg("audit write failed")
			}
		}
	}
}
