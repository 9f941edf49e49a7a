package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cassiomorais/storefront/internal/service"
	"github.com/cassiomorais/storefront/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupCatalogController() (*CatalogController, *testutil.MockCatalogRepository) {
	repo := testutil.NewMockCatalogRepository()
	return NewCatalogController(service.NewCatalogService(repo)), repo
}

func TestCatalogController_List(t *testing.T) {
	handler, repo := setupCatalogController()

	now := time.Now().UTC()
	tee := testutil.NewTestProduct()
	tee.Category = "tshirts"
	tee.UploadTime = now.Add(-time.Hour)
	repo.AddProduct(tee)

	hoodie := testutil.NewTestProduct()
	hoodie.Name = "Hoodie"
	hoodie.Category = "hoodies"
	hoodie.UploadTime = now
	repo.AddProduct(hoodie)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=hoodies", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []ProductResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Hoodie", resp[0].Name)
}

func TestCatalogController_List_Empty(t *testing.T) {
	handler, _ := setupCatalogController()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCatalogController_Get(t *testing.T) {
	handler, repo := setupCatalogController()

	product := testutil.NewTestProduct()
	repo.AddProduct(product)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+product.ID, nil)
	req = withURLParam(req, "id", product.ID)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProductResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, product.ID, resp.ID)
	assert.Equal(t, product.Price, resp.Price)
}

func TestCatalogController_Get_NotFound(t *testing.T) {
	handler, _ := setupCatalogController()

	id := primitive.NewObjectID().Hex()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+id, nil)
	req = withURLParam(req, "id", id)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogController_Create(t *testing.T) {
	handler, repo := setupCatalogController()

	body, _ := json.Marshal(CreateProductRequest{
		Name:     "New Tee",
		Category: "tshirts",
		Price:    1500,
		Colors:   []string{"red"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp["id"])

	stored, err := repo.GetByID(req.Context(), resp["id"])
	require.NoError(t, err)
	assert.Equal(t, "New Tee", stored.Name)
}

func TestCatalogController_Create_MissingName(t *testing.T) {
	handler, _ := setupCatalogController()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader([]byte(`{"price":1500}`)))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogController_Update(t *testing.T) {
	handler, repo := setupCatalogController()

	product := testutil.NewTestProduct()
	repo.AddProduct(product)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/products/"+product.ID, bytes.NewReader([]byte(`{"price":2500}`)))
	req = withURLParam(req, "id", product.ID)
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	stored, err := repo.GetByID(req.Context(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), stored.Price)
	assert.Equal(t, product.Name, stored.Name)
}

func TestCatalogController_Update_EmptyBody(t *testing.T) {
	handler, repo := setupCatalogController()

	product := testutil.NewTestProduct()
	repo.AddProduct(product)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/"+product.ID, bytes.NewReader([]byte(`{}`)))
	req = withURLParam(req, "id", product.ID)
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogController_Update_NegativePrice(t *testing.T) {
	handler, repo := setupCatalogController()

	product := testutil.NewTestProduct()
	repo.AddProduct(product)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/products/"+product.ID, bytes.NewReader([]byte(`{"price":-5}`)))
	req = withURLParam(req, "id", product.ID)
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
