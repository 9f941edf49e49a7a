package service

import (
	"context"

	"github.com/cassiomorais/storefront/internal/domain/catalog"
	domainErrors "github.com/cassiomorais/storefront/internal/domain/errors"
)

// CatalogService handles product catalog business logic. Authorization is
// enforced at the routing layer, before any of these methods run, so every
// mutation passes the same gate.
type CatalogService struct {
	repo catalog.Repository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo catalog.Repository) *CatalogService {
	return &CatalogService{repo: repo}
}

// GetProduct returns a product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	if err := catalog.ValidateID(id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// ListProducts lists products with an optional category filter, ordered by
// upload time. An unrecognized sort order falls back to descending, the
// storefront's default of newest first.
func (s *CatalogService) ListProducts(ctx context.Context, category string, sort catalog.SortOrder) ([]*catalog.Product, error) {
	if sort != catalog.SortAscending {
		sort = catalog.SortDescending
	}
	return s.repo.List(ctx, catalog.ListFilter{Category: category, SortOrder: sort})
}

// CreateProduct validates and persists a new product, returning its id.
func (s *CatalogService) CreateProduct(ctx context.Context, p *catalog.Product) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	return s.repo.Create(ctx, p)
}

// UpdateProduct merges the patch into an existing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, patch catalog.ProductPatch) error {
	if err := catalog.ValidateID(id); err != nil {
		return err
	}
	if patch.Empty() {
		return domainErrors.NewValidationError("body", "no fields to update")
	}
	if patch.Price != nil && *patch.Price < 0 {
		return domainErrors.NewValidationError("price", "must not be negative")
	}
	return s.repo.Update(ctx, id, patch)
}
