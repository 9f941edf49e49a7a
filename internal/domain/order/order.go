package order

import (
	"time"

	"github.com/cassiomorais/storefront/internal/domain/errors"
	"github.com/google/uuid"
)

// Status represents the order state in the state machine.
type Status string

const (
	// StatusInitiated means a checkout session was requested; the row is
	// written before the processor call so no session can exist without a
	// local record.
	StatusInitiated Status = "initiated"
	// StatusResolved means the processor session was reconciled against the
	// catalog into a complete order view.
	StatusResolved Status = "resolved"
	// StatusFailed means the processor call or a later reconciliation step
	// failed for this order.
	StatusFailed Status = "failed"
)

// Order is the locally persisted record of one purchase attempt. It is
// created at checkout initiation and updated, never re-derived, at
// resolution time.
type Order struct {
	ID        uuid.UUID
	ProductID string
	Color     string
	Size      string
	// UnitAmount is the catalog price snapshotted at initiation, in the
	// smallest currency unit. The processor charges this amount; later
	// catalog edits do not change it.
	UnitAmount    int64
	Currency      string
	CustomerName  string
	CustomerEmail string
	SessionID     *string
	AmountTotal   *int64
	LastError     *string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ResolvedAt    *time.Time
}

// NewOrder creates an order in the initiated state.
func NewOrder(productID, color, size string, unitAmount int64, currency, customerName, customerEmail string) (*Order, error) {
	if productID == "" {
		return nil, errors.NewValidationError("product_id", "must not be empty")
	}
	if unitAmount <= 0 {
		return nil, errors.NewValidationError("unit_amount", "must be positive")
	}

	now := time.Now()
	return &Order{
		ID:            uuid.New(),
		ProductID:     productID,
		Color:         color,
		Size:          size,
		UnitAmount:    unitAmount,
		Currency:      currency,
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		Status:        StatusInitiated,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// CanTransitionTo checks if the order can transition to the given status.
func (o *Order) CanTransitionTo(newStatus Status) bool {
	transitions := map[Status][]Status{
		StatusInitiated: {StatusResolved, StatusFailed},
		StatusResolved:  {},
		StatusFailed:    {},
	}
	for _, s := range transitions[o.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

// AttachSession records the processor-issued session identifier.
func (o *Order) AttachSession(sessionID string) {
	o.SessionID = &sessionID
	o.UpdatedAt = time.Now()
}

// MarkResolved transitions the order to resolved with the amount the
// processor reports as charged.
func (o *Order) MarkResolved(amountTotal int64) error {
	if !o.CanTransitionTo(StatusResolved) {
		return errors.ErrInvalidStateTransition
	}
	now := time.Now()
	o.Status = StatusResolved
	o.AmountTotal = &amountTotal
	o.ResolvedAt = &now
	o.UpdatedAt = now
	return nil
}

// MarkFailed transitions the order to failed and records the reason.
func (o *Order) MarkFailed(reason string) error {
	if !o.CanTransitionTo(StatusFailed) {
		return errors.ErrInvalidStateTransition
	}
	o.Status = StatusFailed
	o.LastError = &reason
	o.UpdatedAt = time.Now()
	return nil
}
