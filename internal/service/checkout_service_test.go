package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	domainErrors "github.com/cassiomorais/storefront/internal/domain/errors"
	"github.com/cassiomorais/storefront/internal/domain/order"
	"github.com/cassiomorais/storefront/internal/processor"
	"github.com/cassiomorais/storefront/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Test Helpers ---

func setupCheckoutService() (*CheckoutService, *testutil.MockCatalogRepository, *testutil.MockOrderRepository, *processor.MockProcessor) {
	catalogRepo := testutil.NewMockCatalogRepository()
	orderRepo := testutil.NewMockOrderRepository()
	proc := processor.NewMockProcessor("test")

	svc := NewCheckoutService(catalogRepo, orderRepo, proc, "usd", zerolog.Nop(), nil)
	return svc, catalogRepo, orderRepo, proc
}

// --- InitiateCheckout Tests ---

func TestInitiateCheckout_Success(t *testing.T) {
	svc, catalogRepo, orderRepo, proc := setupCheckoutService()
	ctx := context.Background()

	product := testutil.NewTestProduct()
	catalogRepo.AddProduct(product)

	resp, err := svc.InitiateCheckout(ctx, InitiateCheckoutRequest{
		ProductID:     product.ID,
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		Color:         "red",
		Size:          "M",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
	assert.NotEmpty(t, resp.RedirectURL)

	// Session metadata carries the product id, variant and price snapshot.
	session, err := proc.GetSession(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, session.Metadata[MetaProductID])
	assert.Equal(t, "red", session.Metadata[MetaColor])
	assert.Equal(t, "M", session.Metadata[MetaSize])
	assert.Equal(t, strconv.FormatInt(product.Price, 10), session.Metadata[MetaUnitAmount])
	assert.Equal(t, resp.OrderID.String(), session.Metadata[MetaOrderID])

	// The local order row exists, initiated, with the session attached.
	stored := orderRepo.GetOrderByID(resp.OrderID)
	assert.Equal(t, order.StatusInitiated, stored.Status)
	require.NotNil(t, stored.SessionID)
	assert.Equal(t, resp.SessionID, *stored.SessionID)
	assert.Equal(t, product.Price, stored.UnitAmount)
}

func TestInitiateCheckout_InvalidProductID(t *testing.T) {
	svc, _, _, _ := setupCheckoutService()
	ctx := context.Background()

	_, err := svc.InitiateCheckout(ctx, InitiateCheckoutRequest{
		ProductID:     "not-a-valid-id",
		CustomerEmail: "jane@example.com",
	})
	assert.ErrorIs(t, err, domainErrors.ErrInvalidProductID)
}

func TestInitiateCheckout_ProductNotFound_NoSessionCreated(t *testing.T) {
	svc, _, orderRepo, proc := setupCheckoutService()
	ctx := context.Background()

	missingID := primitive.NewObjectID().Hex()
	_, err := svc.InitiateCheckout(ctx, InitiateCheckoutRequest{
		ProductID:     missingID,
		CustomerEmail: "jane@example.com",
	})
	assert.ErrorIs(t, err, domainErrors.ErrProductNotFound)

	// The product lookup happens before anything else; neither a session
	// nor an order record may exist.
	orders, err := orderRepo.List(ctx, order.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
	_, err = proc.GetSession(ctx, "cs_test_anything")
	assert.ErrorIs(t, err, domainErrors.ErrSessionNotFound)
}

func TestInitiateCheckout_ProcessorFailure_MarksOrderFailed(t *testing.T) {
	catalogRepo := testutil.NewMockCatalogRepository()
	orderRepo := testutil.NewMockOrderRepository()
	proc := processor.NewMockProcessor("test", processor.WithFailureRate(1.0))
	svc := NewCheckoutService(catalogRepo, orderRepo, proc, "usd", zerolog.Nop(), nil)
	ctx := context.Background()

	product := testutil.NewTestProduct()
	catalogRepo.AddProduct(product)

	_, err := svc.InitiateCheckout(ctx, InitiateCheckoutRequest{
		ProductID:     product.ID,
		CustomerEmail: "jane@example.com",
	})
	assert.ErrorIs(t, err, domainErrors.ErrProcessorUnavailable)

	// Exactly one order, marked failed; the processor call is not retried.
	orders, err := orderRepo.List(ctx, order.ListFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.StatusFailed, orders[0].Status)
	require.NotNil(t, orders[0].LastError)
}

func TestInitiateCheckout_OrderStoreFailure(t *testing.T) {
	svc, catalogRepo, orderRepo, _ := setupCheckoutService()
	ctx := context.Background()

	product := testutil.NewTestProduct()
	catalogRepo.AddProduct(product)

	orderRepo.CreateFunc = func(ctx context.Context, o *order.Order) error {
		return errors.New("connection refused")
	}

	_, err := svc.InitiateCheckout(ctx, InitiateCheckoutRequest{
		ProductID:     product.ID,
		CustomerEmail: "jane@example.com",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "create order record")
}

func TestInitiateCheckout_SessionAttachFailure_StillSucceeds(t *testing.T) {
	svc, catalogRepo, orderRepo, _ := setupCheckoutService()
	ctx := context.Background()

	product := testutil.NewTestProduct()
	catalogRepo.AddProduct(product)

	// Create works, the follow-up update attaching the session fails. The
	// checkout still succeeds; the metadata order id covers reconciliation.
	orderRepo.UpdateFunc = func(ctx context.Context, o *order.Order) error {
		return errors.New("connection reset")
	}

	resp, err := svc.InitiateCheckout(ctx, InitiateCheckoutRequest{
		ProductID:     product.ID,
		CustomerEmail: "jane@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
}
