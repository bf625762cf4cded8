// Package marketplace implements the business operations of the job board.
// Every operation validates its input and checks the caller's session before
// it touches storage; mutating operations run in a single transaction.
package marketplace

import (
	"context"
	"time"

	"github.com/khrees2412/hireboard/internal/apperr"
	"github.com/khrees2412/hireboard/internal/database"
	"github.com/khrees2412/hireboard/internal/events"
	"github.com/khrees2412/hireboard/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Service composes validation, authorization and the persistence gateway
type Service struct {
	store   *database.Store
	log     *logrus.Logger
	events  events.Publisher
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithEvents publishes domain events after each committed change
func WithEvents(p events.Publisher) Option {
	return func(s *Service) { s.events = p }
}

// WithMetrics records operation counts and durations
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the source of apply and save dates
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns a Service over store
func New(store *database.Store, log *logrus.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		log:    log,
		events: events.Nop{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// inTx runs fn in one transaction. Domain failures come back unchanged;
// anything else is reported as a TransactionError.
func (s *Service) inTx(ctx context.Context, op string, fn func(tx *database.Tx) error) error {
	err := s.store.WithTx(ctx, fn)
	if err == nil {
		return nil
	}
	if apperr.IsClassified(err) {
		s.log.WithFields(logrus.Fields{"operation": op, "kind": apperr.Kind(err)}).Debug("transaction rolled back")
		return err
	}
	s.log.WithFields(logrus.Fields{"operation": op}).WithError(err).Warn("transaction rolled back")
	return &apperr.TransactionError{Op: op, Err: err}
}

// observe is deferred by every operation with a pointer to its named error
func (s *Service) observe(op string, start time.Time, err *error) {
	s.metrics.Observe(op, start, *err)
}

// publish sends an event after commit. Failures are logged, never returned.
func (s *Service) publish(ctx context.Context, e events.Event) {
	if err := s.events.Publish(ctx, e); err != nil {
		s.log.WithFields(logrus.Fields{"event": e.Type}).WithError(err).Warn("publish event failed")
	}
}

func (s *Service) committed(op string, userID int64, fields logrus.Fields) {
	entry := s.log.WithFields(logrus.Fields{"operation": op, "user_id": userID})
	if fields != nil {
		entry = entry.WithFields(fields)
	}
	entry.Debug("committed")
}

// today is the date stamped on applications and saved jobs
func (s *Service) today() time.Time {
	t := s.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// optional turns an empty input into an absent patch field
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
