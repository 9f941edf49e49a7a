package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cassiomorais/storefront/internal/domain/catalog"
	domainErrors "github.com/cassiomorais/storefront/internal/domain/errors"
	"github.com/cassiomorais/storefront/internal/domain/order"
	"github.com/cassiomorais/storefront/internal/infrastructure/observability"
	"github.com/cassiomorais/storefront/internal/processor"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderService resolves processor sessions and reconciles them with the
// catalog into order views.
type OrderService struct {
	catalogRepo catalog.Repository
	orderRepo   order.Repository
	proc        processor.Processor
	logger      zerolog.Logger
	metrics     *observability.Metrics
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	catalogRepo catalog.Repository,
	orderRepo order.Repository,
	proc processor.Processor,
	logger zerolog.Logger,
	metrics *observability.Metrics,
) *OrderService {
	return &OrderService{
		catalogRepo: catalogRepo,
		orderRepo:   orderRepo,
		proc:        proc,
		logger:      logger,
		metrics:     metrics,
	}
}

// ResolveSession retrieves the processor's current view of a session with
// line items expanded. A session without a product id in its metadata is a
// hard integrity violation: every session this system creates carries one,
// and it is never defaulted.
func (s *OrderService) ResolveSession(ctx context.Context, sessionID string) (*processor.Session, error) {
	session, err := s.proc.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Metadata[MetaProductID] == "" {
		return nil, fmt.Errorf("session %s: %w", sessionID, domainErrors.ErrSessionMetadata)
	}
	return session, nil
}

// Reconcile joins the processor's authoritative payment state with the
// catalog's authoritative product state into a single order view. Every
// step short-circuits the whole operation; a partial view is never
// returned.
//
// Provenance: product name, description and category come from the catalog
// as of now; the variant selection and the charged unit price come from the
// session metadata written at initiation.
func (s *OrderService) Reconcile(ctx context.Context, sessionID string) (*order.View, error) {
	start := time.Now()

	session, err := s.ResolveSession(ctx, sessionID)
	if err != nil {
		s.observe(reconcileOutcome(err), start)
		return nil, err
	}

	productID := session.Metadata[MetaProductID]
	product, err := s.catalogRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrProductNotFound) || errors.Is(err, domainErrors.ErrInvalidProductID) {
			// Distinct from a missing session: the session is fine, the
			// catalog has drifted since purchase.
			err = fmt.Errorf("product %s from session metadata: %w", productID, domainErrors.ErrProductNotFound)
			s.failOrderForSession(ctx, session, "product missing at reconciliation")
		}
		s.observe("catalog_error", start)
		return nil, err
	}

	view := &order.View{
		SessionID:     session.ID,
		AmountTotal:   session.AmountTotal,
		Currency:      session.Currency,
		PaymentStatus: session.PaymentStatus,
		Product: order.ProductSnapshot{
			Name:          product.Name,
			Description:   product.Description,
			Category:      product.Category,
			Price:         s.chargedUnitAmount(session, product),
			SelectedColor: session.Metadata[MetaColor],
			SelectedSize:  session.Metadata[MetaSize],
		},
	}
	if session.CustomerDetails != nil {
		view.CustomerDetails = order.CustomerDetails{
			Name:    session.CustomerDetails.Name,
			Email:   session.CustomerDetails.Email,
			Address: session.CustomerDetails.Address,
		}
	}
	for _, li := range session.LineItems {
		view.LineItems = append(view.LineItems, order.LineItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			AmountTotal: li.AmountTotal,
			Currency:    li.Currency,
		})
	}

	s.resolveOrder(ctx, session)
	s.observe("success", start)
	return view, nil
}

// GetOrder returns a locally persisted order by id.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// ListOrders lists locally persisted orders.
func (s *OrderService) ListOrders(ctx context.Context, filter order.ListFilter) ([]*order.Order, error) {
	return s.orderRepo.List(ctx, filter)
}

// chargedUnitAmount returns the price snapshotted into the session at
// initiation. Sessions created before snapshotting existed lack the key;
// for those the current catalog price is the only value available.
func (s *OrderService) chargedUnitAmount(session *processor.Session, product *catalog.Product) int64 {
	raw, ok := session.Metadata[MetaUnitAmount]
	if !ok {
		return product.Price
	}
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.logger.Warn().Str("session_id", session.ID).Str("unit_amount", raw).
			Msg("unparseable unit amount in session metadata")
		return product.Price
	}
	return amount
}

// resolveOrder transitions the local order row for this session to
// resolved. The view is already complete at this point; a ledger write
// failure is logged and does not fail the read.
func (s *OrderService) resolveOrder(ctx context.Context, session *processor.Session) {
	o, err := s.lookupOrder(ctx, session)
	if err != nil {
		s.logger.Debug().Err(err).Str("session_id", session.ID).Msg("no local order for session")
		return
	}
	if o.Status != order.StatusInitiated {
		return
	}
	if err := o.MarkResolved(session.AmountTotal); err != nil {
		return
	}
	if err := s.orderRepo.Update(ctx, o); err != nil {
		s.logger.Error().Err(err).Str("order_id", o.ID.String()).Msg("failed to mark order resolved")
	}
}

func (s *OrderService) failOrderForSession(ctx context.Context, session *processor.Session, reason string) {
	o, err := s.lookupOrder(ctx, session)
	if err != nil || o.Status != order.StatusInitiated {
		return
	}
	if err := o.MarkFailed(reason); err != nil {
		return
	}
	if err := s.orderRepo.Update(ctx, o); err != nil {
		s.logger.Error().Err(err).Str("order_id", o.ID.String()).Msg("failed to mark order failed")
	}
}

func (s *OrderService) lookupOrder(ctx context.Context, session *processor.Session) (*order.Order, error) {
	o, err := s.orderRepo.GetBySessionID(ctx, session.ID)
	if err == nil {
		return o, nil
	}
	// Fall back to the metadata correlation id in case attaching the
	// session id to the row failed at initiation.
	raw := session.Metadata[MetaOrderID]
	if raw == "" {
		return nil, err
	}
	id, parseErr := uuid.Parse(raw)
	if parseErr != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, id)
}

func (s *OrderService) observe(outcome string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ReconciliationsTotal.WithLabelValues(outcome).Inc()
	s.metrics.ReconciliationDuration.Observe(time.Since(start).Seconds())
}

func reconcileOutcome(err error) string {
	switch {
	case errors.Is(err, domainErrors.ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, domainErrors.ErrSessionMetadata):
		return "metadata_integrity"
	default:
		return "processor_error"
	}
}
