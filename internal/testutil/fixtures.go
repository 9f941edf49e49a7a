package testutil

import (
	"time"

	"github.com/cassiomorais/storefront/internal/domain/catalog"
	"github.com/cassiomorais/storefront/internal/domain/order"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewTestProduct returns a valid product with sensible defaults.
// Override fields after the call when a scenario needs them.
func NewTestProduct() *catalog.Product {
	return &catalog.Product{
		ID:          primitive.NewObjectID().Hex(),
		Name:        "Classic Tee",
		Description: "A plain cotton tee",
		Category:    "tshirts",
		Price:       2000,
		Colors:      []string{"red", "black"},
		Sizes:       []string{"S", "M", "L"},
		ImageURL:    "https://cdn.example.com/classic-tee.jpg",
		UploadTime:  time.Now().UTC(),
	}
}

// NewTestOrder returns a freshly initiated order for the given product.
func NewTestOrder(productID string) *order.Order {
	o, err := order.NewOrder(productID, "red", "M", 2000, "usd", "Jane Doe", "jane@example.com")
	if err != nil {
		panic(err)
	}
	return o
}
