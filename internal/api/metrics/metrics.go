// Package metrics defines and registers all custom Prometheus metrics for the
// Credexa session gateway. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "credexa_gateway"

// LoginAttemptsTotal counts password logins.
// Label:
//   - result: "success", "rejected", "validation", "network", "unknown"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of password login attempts, by result.",
	},
	[]string{"result"},
)

// OAuthLoginsTotal counts SSO logins.
// Labels:
//   - provider: identity provider name (e.g. "google")
//   - result: "success", "rejected", "validation", "network", "unknown"
var OAuthLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "oauth_logins_total",
		Help:      "Total number of OAuth2/SSO login attempts, by provider and result.",
	},
	[]string{"provider", "result"},
)

// LogoutsTotal counts ended sessions.
// Label:
//   - reason: "manual", "idle", "expired", "invalid_token"
var LogoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of sessions ended, by reason.",
	},
	[]string{"reason"},
)

// SessionRestoresTotal counts sessions restored from the keystore at startup.
var SessionRestoresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of sessions restored from persistence.",
	},
)

var sessionGaugeOnce sync.Once

// RegisterSessionGauge exposes the live authenticated state (1 or 0) through
// a gauge evaluated at scrape time. Only the first registration wins.
func RegisterSessionGauge(authenticated func() bool) {
	sessionGaugeOnce.Do(func() {
		promauto.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "session_authenticated",
				Help:      "Whether the gateway currently holds an authenticated session.",
			},
			func() float64 {
				if authenticated() {
					return 1
				}
				return 0
			},
		)
	})
}

// GuardDenialsTotal counts navigations the route guard refused.
// Labels:
//   - module: the module the route required, or "none" for plain auth routes
//   - reason: "unauthenticated" or "forbidden"
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of navigations denied by the route guard.",
	},
	[]string{"module", "reason"},
)
