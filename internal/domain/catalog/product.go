package catalog

import (
	"strings"
	"time"

	"github.com/cassiomorais/storefront/internal/domain/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SortOrder controls list ordering by upload time.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// Product represents a catalog entry. Products are owned and mutated only
// through the catalog repository; the checkout flow reads them and never
// writes.
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	// Price is in the smallest currency unit (e.g. cents).
	Price      int64
	Colors     []string
	Sizes      []string
	ImageURL   string
	UploadTime time.Time
}

// ProductPatch holds a partial update. Nil fields are left untouched; the
// repository merges the rest into the stored document.
type ProductPatch struct {
	Name        *string
	Description *string
	Category    *string
	Price       *int64
	Colors      []string
	Sizes       []string
	ImageURL    *string
}

// Empty reports whether the patch carries no changes.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil &&
		p.Price == nil && p.Colors == nil && p.Sizes == nil && p.ImageURL == nil
}

// ValidateID checks that id is a syntactically valid product identifier.
// Catalog ids are hex ObjectIDs; this rejects malformed input before any
// store or processor call happens.
func ValidateID(id string) error {
	if _, err := primitive.ObjectIDFromHex(strings.TrimSpace(id)); err != nil {
		return errors.ErrInvalidProductID
	}
	return nil
}

// Validate checks the invariants of a new product.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.NewValidationError("name", "must not be empty")
	}
	if p.Price < 0 {
		return errors.NewValidationError("price", "must not be negative")
	}
	return nil
}
