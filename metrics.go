package transit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric outcome and rejection reason constants.
const (
	outcomeSuccess = "success"
	outcomeError   = "error"

	reasonUnknownState      = "unknown_state"
	reasonInvalidTransition = "invalid_transition"
)

// Metric definitions with appropriate labels.
var (
	// dispatchesTotal tracks completed dispatch attempts by machine, endpoints, and outcome.
	dispatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transit_dispatches_total",
		Help: "Total number of dispatch attempts by machine, from_state, to_state, and outcome (success or error)",
	}, []string{"machine", "from_state", "to_state", "outcome"})

	// rejectionsTotal tracks dispatches rejected before any handler ran.
	rejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transit_rejections_total",
		Help: "Total number of rejected dispatches by machine and reason",
	}, []string{"machine", "reason"})

	// handlerDuration tracks individual handler execution time.
	handlerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "transit_handler_duration_seconds",
		Help:    "Duration of handler execution by machine and registry slot",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	}, []string{"machine", "slot"})
)

// sanitizeMachine keeps the machine label non-empty for unnamed engines.
func sanitizeMachine(name string) string {
	if name == "" {
		return "unknown"
	}

	return name
}
