// Package metrics registers the application's Prometheus collectors. All
// collectors are registered on the default registry, which the API server
// exposes on the configured metrics path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that
// can be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Login attempt outcomes used as the "result" label value.
const (
	LoginResultSuccess  = "success"
	LoginResultRejected = "rejected"
	LoginResultError    = "error"
)

//nolint: gochecknoglobals
var (
	// LoginAttempts counts authentication attempts by outcome.
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discounts_login_attempts_total",
		Help: "Total number of login attempts by result",
	}, []string{"result"})

	// PasswordCompareDuration observes how long password verification takes.
	PasswordCompareDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "discounts_password_compare_duration_seconds",
		Help:    "Latency of password hash comparisons",
		Buckets: DefaultBuckets,
	})

	// DiscountsExpired counts discounts deactivated by the expiry worker.
	DiscountsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discounts_expired_total",
		Help: "Total number of discounts deactivated after passing their validity date",
	})
)
