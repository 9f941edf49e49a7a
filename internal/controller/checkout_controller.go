package controller

import (
	"net/http"
	"strconv"

	"github.com/cassiomorais/storefront/internal/domain/order"
	"github.com/cassiomorais/storefront/internal/middleware"
	"github.com/cassiomorais/storefront/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CheckoutController orchestrates the client side of the purchase round
// trip: checkout summary, session creation, order reconciliation.
type CheckoutController struct {
	catalogService  *service.CatalogService
	checkoutService *service.CheckoutService
	orderService    *service.OrderService
}

// NewCheckoutController creates a new CheckoutController.
func NewCheckoutController(
	catalogService *service.CatalogService,
	checkoutService *service.CheckoutService,
	orderService *service.OrderService,
) *CheckoutController {
	return &CheckoutController{
		catalogService:  catalogService,
		checkoutService: checkoutService,
		orderService:    orderService,
	}
}

// Summary handles GET /api/v1/checkout/{id}. It loads the product for the
// checkout page and echoes the caller's identity and variant selection.
func (h *CheckoutController) Summary(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogService.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())
	writeJSON(w, http.StatusOK, CheckoutSummaryResponse{
		Product:       FromProduct(product),
		SelectedColor: r.URL.Query().Get("color"),
		SelectedSize:  r.URL.Query().Get("size"),
		CustomerName:  identity.Name,
		CustomerEmail: identity.Email,
	})
}

// CreateSession handles POST /api/v1/create-checkout-session
func (h *CheckoutController) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateCheckoutSessionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.checkoutService.InitiateCheckout(r.Context(), service.InitiateCheckoutRequest{
		ProductID:     req.ProductID,
		CustomerName:  req.Name,
		CustomerEmail: req.Email,
		Address:       req.Address,
		Color:         req.Color,
		Size:          req.Size,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CheckoutSessionResponse{
		ID:      resp.SessionID,
		URL:     resp.RedirectURL,
		OrderID: resp.OrderID.String(),
	})
}

// OrderDetails handles GET /api/v1/order-details?session_id=...
func (h *CheckoutController) OrderDetails(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing session_id", Code: "missing_parameter"})
		return
	}

	view, err := h.orderService.Reconcile(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromOrderView(view))
}

// GetOrder handles GET /api/v1/orders/{id}
func (h *CheckoutController) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid order id", Code: "invalid_id"})
		return
	}

	o, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromOrder(o))
}

// ListOrders handles GET /api/v1/orders
func (h *CheckoutController) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter := order.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := order.Status(s)
		filter.Status = &status
	}
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	orders, err := h.orderService.ListOrders(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, FromOrder(o))
	}
	writeJSON(w, http.StatusOK, resp)
}
