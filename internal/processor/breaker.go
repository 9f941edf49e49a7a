package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainErrors "github.com/cassiomorais/storefront/internal/domain/errors"
	"github.com/sony/gobreaker/v2"
)

// BreakerProcessor wraps a Processor with a circuit breaker. There are no
// retries anywhere in the request path; the breaker only makes repeated
// processor outages fail fast instead of tying up requests.
type BreakerProcessor struct {
	inner Processor
	cb    *gobreaker.CircuitBreaker[*Session]
}

func NewBreakerProcessor(inner Processor) *BreakerProcessor {
	cb := gobreaker.NewCircuitBreaker[*Session](gobreaker.Settings{
		Name:        inner.Name(),
		MaxRequests: 10,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.6
		},
		IsSuccessful: func(err error) bool {
			// A missing session is an answer from the processor, not an
			// outage.
			return err == nil || errors.Is(err, domainErrors.ErrSessionNotFound)
		},
	})
	return &BreakerProcessor{inner: inner, cb: cb}
}

func (b *BreakerProcessor) Name() string { return b.inner.Name() }

func (b *BreakerProcessor) CreateSession(ctx context.Context, in CreateSessionInput) (*Session, error) {
	s, err := b.cb.Execute(func() (*Session, error) {
		return b.inner.CreateSession(ctx, in)
	})
	return s, classifyBreakerError(err)
}

func (b *BreakerProcessor) GetSession(ctx context.Context, id string) (*Session, error) {
	s, err := b.cb.Execute(func() (*Session, error) {
		return b.inner.GetSession(ctx, id)
	})
	return s, classifyBreakerError(err)
}

func classifyBreakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("circuit breaker open: %w", domainErrors.ErrProcessorUnavailable)
	}
	return err
}
