package order

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter holds optional filters for listing orders.
type ListFilter struct {
	Status *Status
	Limit  int
	Offset int
}

// Repository persists the order state machine.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	// GetByID returns the order or errors.ErrOrderNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// GetBySessionID returns the order correlated with a processor session,
	// or errors.ErrOrderNotFound.
	GetBySessionID(ctx context.Context, sessionID string) (*Order, error)
	Update(ctx context.Context, o *Order) error
	List(ctx context.Context, filter ListFilter) ([]*Order, error)
}
