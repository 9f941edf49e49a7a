package service

import (
	"context"
	"testing"
	"time"

	"github.com/cassiomorais/storefront/internal/domain/catalog"
	domainErrors "github.com/cassiomorais/storefront/internal/domain/errors"
	"github.com/cassiomorais/storefront/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupCatalogService() (*CatalogService, *testutil.MockCatalogRepository) {
	repo := testutil.NewMockCatalogRepository()
	return NewCatalogService(repo), repo
}

func TestGetProduct_Success(t *testing.T) {
	svc, repo := setupCatalogService()
	ctx := context.Background()

	product := testutil.NewTestProduct()
	repo.AddProduct(product)

	got, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Name, got.Name)
	assert.Equal(t, product.Price, got.Price)
}

func TestGetProduct_InvalidID(t *testing.T) {
	svc, _ := setupCatalogService()

	_, err := svc.GetProduct(context.Background(), "garbage")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidProductID)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc, _ := setupCatalogService()

	_, err := svc.GetProduct(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, domainErrors.ErrProductNotFound)
}

func TestListProducts_CategoryFilterAndAscendingSort(t *testing.T) {
	svc, repo := setupCatalogService()
	ctx := context.Background()

	now := time.Now().UTC()
	older := testutil.NewTestProduct()
	older.Name = "Older Tee"
	older.Category = "tshirts"
	older.UploadTime = now.Add(-2 * time.Hour)
	repo.AddProduct(older)

	newer := testutil.NewTestProduct()
	newer.Name = "Newer Tee"
	newer.Category = "tshirts"
	newer.UploadTime = now.Add(-1 * time.Hour)
	repo.AddProduct(newer)

	hoodie := testutil.NewTestProduct()
	hoodie.Name = "Hoodie"
	hoodie.Category = "hoodies"
	hoodie.UploadTime = now
	repo.AddProduct(hoodie)

	got, err := svc.ListProducts(ctx, "tshirts", catalog.SortAscending)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Older Tee", got[0].Name)
	assert.Equal(t, "Newer Tee", got[1].Name)
}

func TestListProducts_DefaultsToDescending(t *testing.T) {
	svc, repo := setupCatalogService()
	ctx := context.Background()

	now := time.Now().UTC()
	older := testutil.NewTestProduct()
	older.Name = "Older"
	older.UploadTime = now.Add(-time.Hour)
	repo.AddProduct(older)

	newer := testutil.NewTestProduct()
	newer.Name = "Newer"
	newer.UploadTime = now
	repo.AddProduct(newer)

	got, err := svc.ListProducts(ctx, "", catalog.SortOrder("sideways"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Newer", got[0].Name)
}

func TestCreateProduct_Success(t *testing.T) {
	svc, repo := setupCatalogService()
	ctx := context.Background()

	id, err := svc.CreateProduct(ctx, &catalog.Product{
		Name:     "New Tee",
		Category: "tshirts",
		Price:    1500,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	stored, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "New Tee", stored.Name)
}

func TestCreateProduct_MissingName(t *testing.T) {
	svc, _ := setupCatalogService()

	_, err := svc.CreateProduct(context.Background(), &catalog.Product{Price: 1000})
	var vErr *domainErrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	svc, _ := setupCatalogService()

	_, err := svc.CreateProduct(context.Background(), &catalog.Product{Name: "Bad", Price: -1})
	var vErr *domainErrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "price", vErr.Field)
}

func TestUpdateProduct_Success(t *testing.T) {
	svc, repo := setupCatalogService()
	ctx := context.Background()

	product := testutil.NewTestProduct()
	repo.AddProduct(product)

	price := int64(2500)
	err := svc.UpdateProduct(ctx, product.ID, catalog.ProductPatch{Price: &price})
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), stored.Price)
	assert.Equal(t, product.Name, stored.Name)
}

func TestUpdateProduct_EmptyPatch(t *testing.T) {
	svc, repo := setupCatalogService()

	product := testutil.NewTestProduct()
	repo.AddProduct(product)

	err := svc.UpdateProduct(context.Background(), product.ID, catalog.ProductPatch{})
	var vErr *domainErrors.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc, _ := setupCatalogService()

	name := "Renamed"
	err := svc.UpdateProduct(context.Background(), primitive.NewObjectID().Hex(), catalog.ProductPatch{Name: &name})
	assert.ErrorIs(t, err, domainErrors.ErrProductNotFound)
}
