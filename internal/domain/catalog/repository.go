package catalog

import "context"

// ListFilter narrows and orders a catalog listing. Category is an equality
// filter; an empty value matches everything. Ordering is always by upload
// time, which every write resets, so "recently modified" and "recently
// added" are the same axis.
type ListFilter struct {
	Category  string
	SortOrder SortOrder
}

// Repository is the keyed-document persistence interface for products.
type Repository interface {
	// GetByID returns the product or errors.ErrProductNotFound.
	GetByID(ctx context.Context, id string) (*Product, error)
	// List returns products matching the filter ordered by upload time.
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
	// Create persists a new product with a server-set upload time and
	// returns the assigned id.
	Create(ctx context.Context, p *Product) (string, error)
	// Update merges the patch into the stored document and resets the
	// upload time. Last write wins; there is no optimistic concurrency
	// check. Returns errors.ErrProductNotFound if the id does not exist.
	Update(ctx context.Context, id string, patch ProductPatch) error
}
