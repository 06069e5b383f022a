// ABOUTME: Training service wiring: storage, logging, tracing and metrics.
// ABOUTME: Every operation runs through run() and mutating ones through one transaction.
package training

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/reps/internal/metrics"
	"github.com/harperreed/reps/internal/storage"
	"github.com/harperreed/reps/internal/telemetry/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// PageSize is the number of rows returned by paginated listings.
const PageSize = 10

// Service implements template authoring, workout instantiation and workout progress.
type Service struct {
	db      *storage.DB
	log     *logrus.Entry
	metrics *metrics.Manager
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the time source used for startedAt and finishedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger entry operations log through.
func WithLogger(log *logrus.Entry) Option {
	return func(s *Service) { s.log = log }
}

// WithMetrics sets the Prometheus manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a Service backed by db.
func NewService(db *storage.DB, opts ...Option) *Service {
	s := &Service{
		db:  db,
		log: logrus.WithField("component", "training"),
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.NewManager("reps", "training", prometheus.NewRegistry())
	}
	return s
}

// run wraps one operation with a span, a correlation id, logging and metrics.
// Errors leaving run are always *Error.
func (s *Service) run(ctx context.Context, op string, fn func(ctx context.Context) error) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "training."+op)
	start := time.Now()
	log := s.log.WithFields(logrus.Fields{"op": op, "op_id": uuid.NewString()})

	defer func() {
		err = classify(err)
		result := "ok"
		if err != nil {
			result = string(KindOf(err))
		}
		elapsed := time.Since(start)
		s.metrics.ObserveOperation(op, result, elapsed)

		entry := log.WithField("elapsed", elapsed)
		switch KindOf(err) {
		case "":
			entry.Debug("operation finished")
		case KindInternal:
			entry.WithError(err).Error("operation failed")
		default:
			entry.WithError(err).Debug("operation rejected")
		}
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return fn(ctx)
}

// inTx runs fn in one transaction inside run.
func (s *Service) inTx(ctx context.Context, op string, fn func(ctx context.Context, tx *storage.Tx) error) error {
	return s.run(ctx, op, func(ctx context.Context) error {
		return s.db.WithTx(ctx, func(tx *storage.Tx) error {
			return fn(ctx, tx)
		})
	})
}

// annotate records identifiers on the current span.
func annotate(ctx context.Context, kv ...attribute.KeyValue) {
	trace.SpanFromContext(ctx).SetAttributes(kv...)
}
