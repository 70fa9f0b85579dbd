package middleware

import (
	"github.com/labstack/echo/v4"
)

// ActivityEmitter receives one signal per qualifying user request; the idle
// monitor subscribes to it.
type ActivityEmitter interface {
	Emit()
}

// Activity reports every request passing through it as user activity. Mount
// it on user-facing routes only — probes and metrics scrapes must not keep a
// session alive.
func Activity(emitter ActivityEmitter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			emitter.Emit()
			return next(c)
		}
	}
}
