package service

import (
	"time"

	"github.com/credexa/session-gateway/internal/core/ports"
)

// SystemClock implements ports.Clock with real wall-clock timers.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) AfterFunc(d time.Duration, fn func()) ports.Timer {
	return time.AfterFunc(d, fn)
}
