package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cassiomorais/storefront/internal/domain/catalog"
	"github.com/cassiomorais/storefront/internal/domain/order"
	"github.com/cassiomorais/storefront/internal/infrastructure/observability"
	"github.com/cassiomorais/storefront/internal/processor"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Session metadata keys. Written once at session creation; the processor
// returns them verbatim on resolution, which is what lets a payment be
// correlated back to a product and a local order.
const (
	MetaProductID  = "productId"
	MetaColor      = "color"
	MetaSize       = "size"
	MetaUnitAmount = "unitAmount"
	MetaOrderID    = "orderId"
)

// CheckoutService initiates checkout sessions against the external payment
// processor.
type CheckoutService struct {
	catalogRepo catalog.Repository
	orderRepo   order.Repository
	proc        processor.Processor
	currency    string
	logger      zerolog.Logger
	metrics     *observability.Metrics
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	catalogRepo catalog.Repository,
	orderRepo order.Repository,
	proc processor.Processor,
	currency string,
	logger zerolog.Logger,
	metrics *observability.Metrics,
) *CheckoutService {
	return &CheckoutService{
		catalogRepo: catalogRepo,
		orderRepo:   orderRepo,
		proc:        proc,
		currency:    currency,
		logger:      logger,
		metrics:     metrics,
	}
}

// InitiateCheckoutRequest holds the input for opening a checkout session.
type InitiateCheckoutRequest struct {
	ProductID     string
	CustomerName  string
	CustomerEmail string
	Address       string
	Color         string
	Size          string
}

// InitiateCheckoutResponse holds the processor session handle the client
// needs for the hosted redirect flow.
type InitiateCheckoutResponse struct {
	OrderID     uuid.UUID
	SessionID   string
	RedirectURL string
}

// InitiateCheckout opens a payment session for one product. The product is
// loaded first: a missing product aborts before any session or order row
// exists, so the processor never holds orphan sessions. The catalog price
// read here is the last one before payment; it is snapshotted into both the
// local order and the session metadata. The processor call is not retried —
// the client resubmits, and the idempotency layer makes that safe.
func (s *CheckoutService) InitiateCheckout(ctx context.Context, req InitiateCheckoutRequest) (*InitiateCheckoutResponse, error) {
	start := time.Now()

	if err := catalog.ValidateID(req.ProductID); err != nil {
		s.observe("invalid_id", start)
		return nil, err
	}

	product, err := s.catalogRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		s.observe("product_not_found", start)
		return nil, err
	}

	o, err := order.NewOrder(
		product.ID, req.Color, req.Size,
		product.Price, s.currency,
		req.CustomerName, req.CustomerEmail,
	)
	if err != nil {
		s.observe("invalid_order", start)
		return nil, err
	}
	if err := s.orderRepo.Create(ctx, o); err != nil {
		s.observe("store_error", start)
		return nil, fmt.Errorf("create order record: %w", err)
	}

	session, err := s.proc.CreateSession(ctx, processor.CreateSessionInput{
		ProductName:        product.Name,
		ProductDescription: product.Description,
		UnitAmount:         product.Price,
		Currency:           s.currency,
		Quantity:           1,
		CustomerEmail:      req.CustomerEmail,
		Metadata: map[string]string{
			MetaProductID:  product.ID,
			MetaColor:      req.Color,
			MetaSize:       req.Size,
			MetaUnitAmount: strconv.FormatInt(product.Price, 10),
			MetaOrderID:    o.ID.String(),
		},
	})
	if err != nil {
		s.failOrder(ctx, o, err.Error())
		s.observe("processor_error", start)
		return nil, err
	}

	o.AttachSession(session.ID)
	if err := s.orderRepo.Update(ctx, o); err != nil {
		// The session exists either way; reconciliation can still find the
		// order through the metadata order id.
		s.logger.Error().Err(err).
			Str("order_id", o.ID.String()).
			Str("session_id", session.ID).
			Msg("failed to attach session to order")
	}

	s.logger.Info().
		Str("order_id", o.ID.String()).
		Str("session_id", session.ID).
		Str("product_id", product.ID).
		Int64("unit_amount", product.Price).
		Msg("checkout session created")
	s.observe("success", start)

	return &InitiateCheckoutResponse{
		OrderID:     o.ID,
		SessionID:   session.ID,
		RedirectURL: session.URL,
	}, nil
}

func (s *CheckoutService) failOrder(ctx context.Context, o *order.Order, reason string) {
	if err := o.MarkFailed(reason); err != nil {
		return
	}
	if err := s.orderRepo.Update(ctx, o); err != nil {
		s.logger.Error().Err(err).Str("order_id", o.ID.String()).Msg("failed to mark order failed")
	}
}

func (s *CheckoutService) observe(outcome string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.CheckoutsInitiated.WithLabelValues(outcome).Inc()
	s.metrics.CheckoutDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}
