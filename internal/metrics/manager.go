// ABOUTME: Prometheus metrics for training operations.
// ABOUTME: Counters and histograms are registered on an injectable registerer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterOperations      *prometheus.CounterVec
	CounterReindexes       *prometheus.CounterVec
	CounterWorkoutsStarted prometheus.Counter
	CounterSetsCompleted   prometheus.Counter

	// histograms
	HistogramOperationDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("reps", "test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("reps", "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterOperations := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "operations_total",
		Help:      "The total number of service operations by result",
	}, []string{"op", "result"})
	counterReindexes := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "reindexes_total",
		Help:      "The total number of ordered-collection reindexes",
	}, []string{"collection"})
	counterWorkoutsStarted := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_started_total",
		Help:      "The total number of workouts instantiated from templates",
	})
	counterSetsCompleted := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sets_completed_total",
		Help:      "The total number of sets marked complete",
	})

	histogramOperationDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "operation_duration_seconds",
		Help:      "Histogram of service operation duration in seconds",
		Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"op"})

	return &Manager{
		CounterOperations:          counterOperations,
		CounterReindexes:           counterReindexes,
		CounterWorkoutsStarted:     counterWorkoutsStarted,
		CounterSetsCompleted:       counterSetsCompleted,
		HistogramOperationDuration: histogramOperationDuration,
	}
}

// ObserveOperation records one finished operation.
func (m *Manager) ObserveOperation(op, result string, elapsed time.Duration) {
	m.CounterOperations.WithLabelValues(op, result).Inc()
	m.HistogramOperationDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}
