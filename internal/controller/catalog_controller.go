package controller

import (
	"net/http"

	"github.com/cassiomorais/storefront/internal/domain/catalog"
	"github.com/cassiomorais/storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

// CatalogController handles product catalog HTTP requests.
type CatalogController struct {
	catalogService *service.CatalogService
}

// NewCatalogController creates a new CatalogController.
func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// List handles GET /api/v1/products
func (h *CatalogController) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	sort := catalog.SortOrder(r.URL.Query().Get("sort"))

	products, err := h.catalogService.ListProducts(r.Context(), category, sort)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, FromProduct(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/products/{id}
func (h *CatalogController) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogService.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FromProduct(product))
}

// Create handles POST /api/v1/products
func (h *CatalogController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.catalogService.CreateProduct(r.Context(), &catalog.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Colors:      req.Colors,
		Sizes:       req.Sizes,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// Update handles PUT and PATCH /api/v1/products/{id}. Both verbs merge the
// supplied fields; last write wins.
func (h *CatalogController) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	err := h.catalogService.UpdateProduct(r.Context(), chi.URLParam(r, "id"), catalog.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Colors:      req.Colors,
		Sizes:       req.Sizes,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "product updated successfully"})
}
