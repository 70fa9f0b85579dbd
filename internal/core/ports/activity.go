package ports

import "time"

// ActivitySource emits a signal for every qualifying user-activity event.
// Production binds it to gateway HTTP traffic; tests bind a synthetic emitter.
type ActivitySource interface {
	// Subscribe registers a callback fired on each activity event and
	// returns its removal function.
	Subscribe(fn func()) (unsubscribe func())
}

// Timer is a single pending deadline that can be cancelled.
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented the
	// timer from firing.
	Stop() bool
}

// Clock abstracts time so idle-timeout behaviour is testable with a
// controllable clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}
