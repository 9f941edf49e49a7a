package processor

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	domainErrors "github.com/cassiomorais/storefront/internal/domain/errors"
	"github.com/google/uuid"
)

// MockProcessor simulates the external processor in memory. Sessions it
// creates are retrievable with the metadata returned verbatim, which is the
// round-trip the reconciliation flow relies on.
type MockProcessor struct {
	name        string
	failureRate float64 // 0.0 to 1.0
	latency     time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

type MockProcessorOption func(*MockProcessor)

func WithFailureRate(rate float64) MockProcessorOption {
	return func(p *MockProcessor) { p.failureRate = rate }
}

func WithLatency(d time.Duration) MockProcessorOption {
	return func(p *MockProcessor) { p.latency = d }
}

func NewMockProcessor(name string, opts ...MockProcessorOption) *MockProcessor {
	p := &MockProcessor{
		name:     name,
		sessions: make(map[string]*Session),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *MockProcessor) Name() string { return p.name }

func (p *MockProcessor) CreateSession(ctx context.Context, in CreateSessionInput) (*Session, error) {
	if err := p.simulate(ctx); err != nil {
		return nil, err
	}

	quantity := in.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	metadata := make(map[string]string, len(in.Metadata))
	for k, v := range in.Metadata {
		metadata[k] = v
	}

	id := fmt.Sprintf("cs_%s_%s", p.name, uuid.New().String()[:8])
	s := &Session{
		ID:            id,
		AmountTotal:   in.UnitAmount * quantity,
		Currency:      in.Currency,
		PaymentStatus: "unpaid",
		URL:           fmt.Sprintf("https://checkout.%s.example/pay/%s", p.name, id),
		CustomerDetails: &CustomerDetails{
			Email: in.CustomerEmail,
		},
		LineItems: []LineItem{
			{
				Description: in.ProductName,
				Quantity:    quantity,
				AmountTotal: in.UnitAmount * quantity,
				Currency:    in.Currency,
			},
		},
		Metadata: metadata,
	}

	p.mu.Lock()
	p.sessions[id] = s
	p.mu.Unlock()

	return copySession(s), nil
}

func (p *MockProcessor) GetSession(ctx context.Context, id string) (*Session, error) {
	if err := p.simulate(ctx); err != nil {
		return nil, err
	}

	p.mu.Lock()
	s, ok := p.sessions[id]
	p.mu.Unlock()
	if !ok {
		return nil, domainErrors.ErrSessionNotFound
	}
	return copySession(s), nil
}

// Seed installs a session directly, bypassing CreateSession. Tests use it
// to model sessions with arbitrary state, including corrupted metadata.
func (p *MockProcessor) Seed(s *Session) {
	p.mu.Lock()
	p.sessions[s.ID] = copySession(s)
	p.mu.Unlock()
}

// MarkPaid flips a stored session to paid, as the processor would after the
// customer completes the hosted flow.
func (p *MockProcessor) MarkPaid(id string) {
	p.mu.Lock()
	if s, ok := p.sessions[id]; ok {
		s.PaymentStatus = "paid"
	}
	p.mu.Unlock()
}

func (p *MockProcessor) simulate(ctx context.Context) error {
	if p.latency > 0 {
		select {
		case <-time.After(p.latency):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if p.failureRate > 0 && rand.Float64() < p.failureRate {
		return domainErrors.ErrProcessorUnavailable
	}
	return nil
}

func copySession(s *Session) *Session {
	out := *s
	if s.CustomerDetails != nil {
		cd := *s.CustomerDetails
		out.CustomerDetails = &cd
	}
	out.LineItems = append([]LineItem(nil), s.LineItems...)
	out.Metadata = make(map[string]string, len(s.Metadata))
	for k, v := range s.Metadata {
		out.Metadata[k] = v
	}
	return &out
}
