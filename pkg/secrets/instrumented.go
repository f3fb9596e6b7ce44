package secrets

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var _ Service = (*InstrumentedService)(nil)

// InstrumentedService counts and times every call to the wrapped Service.
type InstrumentedService struct {
	next     Service
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func Instrument(next Service, reg prometheus.Registerer) *InstrumentedService {
	factory := promauto.With(reg)
	return &InstrumentedService{
		next: next,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "itrust_keychain",
				Subsystem: "service",
				Name:      "requests_total",
				Help:      "Secret-storage service requests by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "itrust_keychain",
				Subsystem: "service",
				Name:      "request_duration_seconds",
				Help:      "Secret-storage service request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrItemNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicateItem):
		return "duplicate"
	default:
		return "error"
	}
}

func (s *InstrumentedService) observe(op string, start time.Time, err error) {
	s.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	s.requests.WithLabelValues(op, outcome(err)).Inc()
}

func (s *InstrumentedService) Add(ctx context.Context, namespace, key string, data []byte) error {
	start := time.Now()
	err := s.next.Add(ctx, namespace, key, data)
	s.observe("add", start, err)
	return err
}

func (s *InstrumentedService) Modify(ctx context.Context, namespace, key string, data []byte) error {
	start := time.Now()
	err := s.next.Modify(ctx, namespace, key, data)
	s.observe("modify", start, err)
	return err
}

func (s *InstrumentedService) FindOne(ctx context.Context, namespace, key string) ([]byte, error) {
	start := time.Now()
	data, err := s.next.FindOne(ctx, namespace, key)
	s.observe("find", start, err)
	return data, err
}

func (s *InstrumentedService) Remove(ctx context.Context, namespace, key string) error {
	start := time.Now()
	err := s.next.Remove(ctx, namespace, key)
	s.observe("remove", start, err)
	return err
}
