// Package metrics holds the Prometheus collectors for person store operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values for StoreOperations.
const (
	OutcomeOK     = "ok"
	OutcomeAbsent = "absent"
	OutcomeError  = "error"
)

var (
	// StoreOperations counts person store operations by operation and outcome.
	StoreOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "people", Name: "store_operations_total", Help: "Number of person store operations by operation and outcome."},
		[]string{"operation", "outcome"},
	)
)

// RegisterCollectors registers all collectors in this package with reg.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(StoreOperations)
}

// Observe counts one store operation.
// A nil error with absent set counts as OutcomeAbsent.
func Observe(operation string, absent bool, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	} else if absent {
		outcome = OutcomeAbsent
	}
	StoreOperations.WithLabelValues(operation, outcome).Inc()
}
