// Package metrics exposes Prometheus collectors for upstream traffic. The
// meal-plan pipeline is the only caller of third-party HTTP APIs, and these
// counters are how absorbed per-meal failures stay visible to operators
// without ever surfacing to end users.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts recipe-service requests by endpoint and outcome.
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pulsefit",
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Requests issued to the upstream recipe service.",
	}, []string{"endpoint", "outcome"})

	// MealDetailFailures counts per-meal detail fetches absorbed by
	// partial-failure isolation.
	MealDetailFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pulsefit",
		Subsystem: "mealplan",
		Name:      "detail_failures_total",
		Help:      "Per-meal detail fetches that degraded to unknown nutrition.",
	})

	// IdentityRequests counts identity-provider admin calls by action and outcome.
	IdentityRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pulsefit",
		Subsystem: "identity",
		Name:      "requests_total",
		Help:      "Admin requests issued to the identity provider.",
	}, []string{"action", "outcome"})
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
