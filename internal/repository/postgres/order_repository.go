package postgres

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/cassiomorais/storefront/internal/domain/errors"
	"github.com/cassiomorais/storefront/internal/domain/order"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `id, product_id, color, size, unit_amount, currency,
	        customer_name, customer_email, session_id, amount_total,
	        last_error, status, created_at, updated_at, resolved_at`

// OrderRepository implements order.Repository using PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Create inserts a new order.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO orders
		 (id, product_id, color, size, unit_amount, currency,
		  customer_name, customer_email, session_id, amount_total,
		  last_error, status, created_at, updated_at, resolved_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		o.ID, o.ProductID, o.Color, o.Size, o.UnitAmount, o.Currency,
		o.CustomerName, o.CustomerEmail, o.SessionID, o.AmountTotal,
		o.LastError, string(o.Status), o.CreatedAt, o.UpdatedAt, o.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID retrieves an order by its ID.
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.scanOrder(r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
}

// GetBySessionID retrieves the order correlated with a processor session.
func (r *OrderRepository) GetBySessionID(ctx context.Context, sessionID string) (*order.Order, error) {
	return r.scanOrder(r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE session_id = $1`, sessionID))
}

// Update updates an existing order.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET
		  session_id=$1, amount_total=$2, last_error=$3,
		  status=$4, updated_at=$5, resolved_at=$6
		 WHERE id=$7`,
		o.SessionID, o.AmountTotal, o.LastError,
		string(o.Status), o.UpdatedAt, o.ResolvedAt, o.ID,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrOrderNotFound
	}
	return nil
}

// List lists orders with optional filters, newest first.
func (r *OrderRepository) List(ctx context.Context, f order.ListFilter) ([]*order.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []any{}
	argIdx := 1

	if f.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, string(*f.Status))
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, f.Limit)
		argIdx++
	}
	if f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, f.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*order.Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) scanOrder(row scanner) (*order.Order, error) {
	var o order.Order
	var status string

	err := row.Scan(
		&o.ID, &o.ProductID, &o.Color, &o.Size, &o.UnitAmount, &o.Currency,
		&o.CustomerName, &o.CustomerEmail, &o.SessionID, &o.AmountTotal,
		&o.LastError, &status, &o.CreatedAt, &o.UpdatedAt, &o.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	o.Status = order.Status(status)
	return &o, nil
}
