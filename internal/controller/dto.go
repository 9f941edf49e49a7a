package controller

import (
	"time"

	"github.com/cassiomorais/storefront/internal/domain/catalog"
	"github.com/cassiomorais/storefront/internal/domain/order"
)

// --- Request DTOs ---

// CreateProductRequest holds the input for creating a product. Prices are
// in the smallest currency unit.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       int64    `json:"price" validate:"gte=0"`
	Colors      []string `json:"colors,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
}

// UpdateProductRequest holds a partial product update; absent fields are
// left untouched.
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *int64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	Colors      []string `json:"colors,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
}

// CreateCheckoutSessionRequest holds the checkout form submission.
type CreateCheckoutSessionRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Name      string `json:"name"`
	Email     string `json:"email" validate:"required,email"`
	Address   string `json:"address,omitempty"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// --- Response DTOs ---

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       int64     `json:"price"`
	Colors      []string  `json:"colors,omitempty"`
	Sizes       []string  `json:"sizes,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	UploadTime  time.Time `json:"uploadTime"`
}

// CheckoutSessionResponse carries the processor session handle for the
// hosted redirect flow.
type CheckoutSessionResponse struct {
	ID      string `json:"id"`
	URL     string `json:"url,omitempty"`
	OrderID string `json:"orderId"`
}

// CheckoutSummaryResponse is what the checkout page renders before the
// customer proceeds to payment.
type CheckoutSummaryResponse struct {
	Product       ProductResponse `json:"product"`
	SelectedColor string          `json:"selectedColor"`
	SelectedSize  string          `json:"selectedSize"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
}

// CustomerDetailsResponse mirrors the processor's customer details.
type CustomerDetailsResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
}

// LineItemResponse is one line of a resolved session.
type LineItemResponse struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	AmountTotal int64  `json:"amount_total"`
	Currency    string `json:"currency"`
}

// OrderProductResponse is the product snapshot inside an order view.
type OrderProductResponse struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Price         int64  `json:"price"`
	SelectedColor string `json:"selectedColor"`
	SelectedSize  string `json:"selectedSize"`
}

// OrderDetailsResponse is the reconciled order view.
type OrderDetailsResponse struct {
	ID              string                  `json:"id"`
	AmountTotal     int64                   `json:"amount_total"`
	Currency        string                  `json:"currency"`
	PaymentStatus   string                  `json:"payment_status"`
	CustomerDetails CustomerDetailsResponse `json:"customer_details"`
	LineItems       []LineItemResponse      `json:"line_items"`
	Product         OrderProductResponse    `json:"product"`
}

// OrderResponse represents a locally persisted order record.
type OrderResponse struct {
	ID            string     `json:"id"`
	ProductID     string     `json:"product_id"`
	Color         string     `json:"color,omitempty"`
	Size          string     `json:"size,omitempty"`
	UnitAmount    int64      `json:"unit_amount"`
	Currency      string     `json:"currency"`
	CustomerEmail string     `json:"customer_email,omitempty"`
	SessionID     *string    `json:"session_id,omitempty"`
	AmountTotal   *int64     `json:"amount_total,omitempty"`
	Status        string     `json:"status"`
	LastError     *string    `json:"last_error,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
}

// UploadResponse points at the stored file.
type UploadResponse struct {
	URL string `json:"url"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// --- Conversion helpers ---

// FromProduct converts a catalog product to its response form.
func FromProduct(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Colors:      p.Colors,
		Sizes:       p.Sizes,
		ImageURL:    p.ImageURL,
		UploadTime:  p.UploadTime,
	}
}

// FromOrderView converts a reconciled view to its response form.
func FromOrderView(v *order.View) OrderDetailsResponse {
	resp := OrderDetailsResponse{
		ID:            v.SessionID,
		AmountTotal:   v.AmountTotal,
		Currency:      v.Currency,
		PaymentStatus: v.PaymentStatus,
		CustomerDetails: CustomerDetailsResponse{
			Name:    v.CustomerDetails.Name,
			Email:   v.CustomerDetails.Email,
			Address: v.CustomerDetails.Address,
		},
		Product: OrderProductResponse{
			Name:          v.Product.Name,
			Description:   v.Product.Description,
			Category:      v.Product.Category,
			Price:         v.Product.Price,
			SelectedColor: v.Product.SelectedColor,
			SelectedSize:  v.Product.SelectedSize,
		},
	}
	for _, li := range v.LineItems {
		resp.LineItems = append(resp.LineItems, LineItemResponse{
			Description: li.Description,
			Quantity:    li.Quantity,
			AmountTotal: li.AmountTotal,
			Currency:    li.Currency,
		})
	}
	return resp
}

// FromOrder converts a persisted order to its response form.
func FromOrder(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID.String(),
		ProductID:     o.ProductID,
		Color:         o.Color,
		Size:          o.Size,
		UnitAmount:    o.UnitAmount,
		Currency:      o.Currency,
		CustomerEmail: o.CustomerEmail,
		SessionID:     o.SessionID,
		AmountTotal:   o.AmountTotal,
		Status:        string(o.Status),
		LastError:     o.LastError,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		ResolvedAt:    o.ResolvedAt,
	}
}
