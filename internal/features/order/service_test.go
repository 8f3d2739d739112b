package order

import (
	"context"
	"testing"

	"github.com/juniper-commerce/marketplace-backend/internal/features/catalog"
	"github.com/juniper-commerce/marketplace-backend/internal/features/inventory"
	"github.com/juniper-commerce/marketplace-backend/internal/servererrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type testLedger interface {
	stockLedger
	SetStock(ctx context.Context, productID, vendorID uuid.UUID, qty int)
	Record(ctx context.Context, productID, vendorID uuid.UUID) (inventory.StockRecord, bool)
}

type testCatalog interface {
	productFetcher
	CreateProduct(ctx context.Context, newProduct *catalog.CreateProductRequest) (catalog.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, update *catalog.UpdateProductRequest) (catalog.Product, error)
}

func newTestServices() (testLedger, testCatalog, *service) {
	inventoryService := inventory.NewService(inventory.NewStore(), nil)
	catalogService := catalog.NewService(catalog.NewStore(), inventoryService)
	orderService := NewService(NewStore(), inventoryService, catalogService, nil)

	return inventoryService, catalogService, orderService
}

func createTestProduct(
	t *testing.T,
	catalogService testCatalog,
	vendorID uuid.UUID,
	name string,
	price float64,
	qty int,
) catalog.Product {
	t.Helper()

	product, err := catalogService.CreateProduct(context.Background(), &catalog.CreateProductRequest{
		VendorID:    vendorID.String(),
		Name:        name,
		Description: "Handmade from reclaimed hardwood, finished with food-safe oil.",
		Price:       price,
		Category:    "home",
		Quantity:    qty,
	})
	require.NoError(t, err)

	return product
}

func TestService_CreateOrder(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	t.Run("snapshots items, reserves stock and starts in Processing", func(t *testing.T) {
		ledger, catalogService, svc := newTestServices()

		vendorA := uuid.New()
		vendorB := uuid.New()
		productA := createTestProduct(t, catalogService, vendorA, "Oak Serving Board", 10.50, 20)
		productB := createTestProduct(t, catalogService, vendorB, "Linen Napkin Set", 3.25, 20)

		order, err := svc.CreateOrder(ctx, customerID, []NewItem{
			{ProductID: productA.ProductID, VendorID: vendorA, Quantity: 2},
			{ProductID: productB.ProductID, VendorID: vendorB, Quantity: 4},
		})

		require.NoError(t, err)
		require.Equal(t, StatusProcessing, order.Status)
		require.Equal(t, customerID, order.CustomerID)
		require.Len(t, order.Items, 2)
		require.Equal(t, "Oak Serving Board", order.Items[0].ProductName)
		require.Equal(t, DeliveryStatusPending, order.Items[0].DeliveryStatus)
		require.True(t, order.TotalPrice.Equal(decimal.NewFromFloat(34.00)),
			"total should be 2*10.50 + 4*3.25, got %s", order.TotalPrice)

		recordA, _ := ledger.Record(ctx, productA.ProductID, vendorA)
		require.Equal(t, 18, recordA.AvailableQuantity)
		require.Equal(t, 2, recordA.ReservedQuantity)

		recordB, _ := ledger.Record(ctx, productB.ProductID, vendorB)
		require.Equal(t, 16, recordB.AvailableQuantity)
		require.Equal(t, 4, recordB.ReservedQuantity)
	})

	t.Run("rejects an empty order", func(t *testing.T) {
		_, _, svc := newTestServices()

		_, err := svc.CreateOrder(ctx, customerID, nil)

		require.ErrorIs(t, err, servererrors.ErrEmptyOrder)
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		_, catalogService, svc := newTestServices()

		vendorID := uuid.New()
		product := createTestProduct(t, catalogService, vendorID, "Ceramic Mug", 8.00, 20)

		_, err := svc.CreateOrder(ctx, customerID, []NewItem{
			{ProductID: product.ProductID, VendorID: vendorID, Quantity: 0},
		})

		require.ErrorIs(t, err, servererrors.ErrInvalidQuantity)
	})

	t.Run("rejects unknown products", func(t *testing.T) {
		_, _, svc := newTestServices()

		_, err := svc.CreateOrder(ctx, customerID, []NewItem{
			{ProductID: uuid.New(), VendorID: uuid.New(), Quantity: 1},
		})

		require.ErrorIs(t, err, servererrors.ErrProductNotFound)
	})

	t.Run("reserves nothing when one item is short", func(t *testing.T) {
		ledger, catalogService, svc := newTestServices()

		vendorA := uuid.New()
		vendorB := uuid.New()
		productA := createTestProduct(t, catalogService, vendorA, "Oak Serving Board", 10.50, 20)
		productB := createTestProduct(t, catalogService, vendorB, "Linen Napkin Set", 3.25, 3)

		_, err := svc.CreateOrder(ctx, customerID, []NewItem{
			{ProductID: productA.ProductID, VendorID: vendorA, Quantity: 2},
			{ProductID: productB.ProductID, VendorID: vendorB, Quantity: 5},
		})

		require.ErrorIs(t, err, servererrors.ErrInsufficientStock)

		recordA, _ := ledger.Record(ctx, productA.ProductID, vendorA)
		require.Equal(t, 20, recordA.AvailableQuantity)
		require.Equal(t, 0, recordA.ReservedQuantity)

		require.Empty(t, svc.AllOrders(ctx))
	})
}

func TestService_UpdateItems(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	t.Run("replaces items and recomputes the total while Processing", func(t *testing.T) {
		_, catalogService, svc := newTestServices()

		vendorID := uuid.New()
		productA := createTestProduct(t, catalogService, vendorID, "Oak Serving Board", 10.00, 20)
		productB := createTestProduct(t, catalogService, vendorID, "Linen Napkin Set", 4.00, 20)

		order, err := svc.CreateOrder(ctx, customerID, []NewItem{
			{ProductID: productA.ProductID, VendorID: vendorID, Quantity: 1},
		})
		require.NoError(t, err)

		updated, err := svc.UpdateItems(ctx, order.OrderID, []NewItem{
			{ProductID: productB.ProductID, VendorID: vendorID, Quantity: 3},
		})

		require.NoError(t, err)
		require.Len(t, updated.Items, 1)
		require.Equal(t, "Linen Napkin Set", updated.Items[0].ProductName)
		require.True(t, updated.TotalPrice.Equal(decimal.NewFromFloat(12.00)))
	})

	t.Run("refuses once the order has shipped", func(t *testing.T) {
		_, catalogService, svc := newTestServices()

		vendorID := uuid.New()
		product := createTestProduct(t, catalogService, vendorID, "Ceramic Mug", 8.00, 20)

		order, err := svc.CreateOrder(ctx, customerID, []NewItem{
			{ProductID: product.ProductID, VendorID: vendorID, Quantity: 1},
		})
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, order.OrderID, StatusShipped)
		require.NoError(t, err)

		_, err = svc.UpdateItems(ctx, order.OrderID, []NewItem{
			{ProductID: product.ProductID, VendorID: vendorID, Quantity: 2},
		})

		require.ErrorIs(t, err, servererrors.ErrInvalidState)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	newProcessingOrder := func(t *testing.T) (*service, Order) {
		t.Helper()

		_, catalogService, svc := newTestServices()
		vendorID := uuid.New()
		product := createTestProduct(t, catalogService, vendorID, "Ceramic Mug", 8.00, 20)

		order, err := svc.CreateOrder(ctx, customerID, []NewItem{
			{ProductID: product.ProductID, VendorID: vendorID, Quantity: 1},
		})
		require.NoError(t, err)

		return svc, order
	}

	t.Run("ships a Processing order, then delivers it", func(t *testing.T) {
		svc, order := newProcessingOrder(t)

		shipped, err := svc.UpdateStatus(ctx, order.OrderID, StatusShipped)
		require.NoError(t, err)
		require.Equal(t, StatusShipped, shipped.Status)

		delivered, err := svc.UpdateStatus(ctx, order.OrderID, StatusDelivered)
		require.NoError(t, err)
		require.Equal(t, StatusDelivered, delivered.Status)
	})

	t.Run("refuses Delivered straight from Processing", func(t *testing.T) {
		svc, order := newProcessingOrder(t)

		_, err := svc.UpdateStatus(ctx, order.OrderID, StatusDelivered)

		require.ErrorIs(t, err, servererrors.ErrInvalidTransition)
	})

	t.Run("refuses shipping twice", func(t *testing.T) {
		svc, order := newProcessingOrder(t)

		_, err := svc.UpdateStatus(ctx, order.OrderID, StatusShipped)
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, order.OrderID, StatusShipped)

		require.ErrorIs(t, err, servererrors.ErrInvalidTransition)
	})

	t.Run("refuses statuses outside the fulfillment path", func(t *testing.T) {
		svc, order := newProcessingOrder(t)

		_, err := svc.UpdateStatus(ctx, order.OrderID, StatusCancelled)

		require.ErrorIs(t, err, servererrors.ErrInvalidTransition)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, _, svc := newTestServices()

		_, err := svc.UpdateStatus(ctx, uuid.New(), StatusShipped)

		require.ErrorIs(t, err, servererrors.ErrOrderNotFound)
	})
}

func TestService_CancelOrder(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	_, catalogService, svc := newTestServices()
	vendorID := uuid.New()
	product := createTestProduct(t, catalogService, vendorID, "Ceramic Mug", 8.00, 20)

	order, err := svc.CreateOrder(ctx, customerID, []NewItem{
		{ProductID: product.ProductID, VendorID: vendorID, Quantity: 1},
	})
	require.NoError(t, err)

	shippedOrder, err := svc.CreateOrder(ctx, customerID, []NewItem{
		{ProductID: product.ProductID, VendorID: vendorID, Quantity: 1},
	})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, shippedOrder.OrderID, StatusShipped)
	require.NoError(t, err)

	cancelled, err := svc.CancelOrder(ctx, order.OrderID)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, cancelled.Status)

	_, err = svc.CancelOrder(ctx, shippedOrder.OrderID)
	require.ErrorIs(t, err, servererrors.ErrInvalidState)
}

func TestService_CancellationWorkflow(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	t.Run("approval cancels the order and releases stock for every vendor", func(t *testing.T) {
		ledger, catalogService, svc := newTestServices()

		vendorA := uuid.New()
		vendorB := uuid.New()
		productA := createTestProduct(t, catalogService, vendorA, "Oak Serving Board", 10.50, 20)
		productB := createTestProduct(t, catalogService, vendorB, "Linen Napkin Set", 3.25, 20)

		order, err := svc.CreateOrder(ctx, customerID, []NewItem{
			{ProductID: productA.ProductID, VendorID: vendorA, Quantity: 2},
			{ProductID: productB.ProductID, VendorID: vendorB, Quantity: 3},
		})
		require.NoError(t, err)

		requested, err := svc.RequestCancellation(ctx, order.OrderID)
		require.NoError(t, err)
		require.Equal(t, StatusCancellationRequested, requested.Status)

		approved, err := svc.ProcessCancellation(ctx, order.OrderID, ActionApprove)
		require.NoError(t, err)
		require.Equal(t, StatusCancelled, approved.Status)

		recordA, _ := ledger.Record(ctx, productA.ProductID, vendorA)
		require.Equal(t, 20, recordA.AvailableQuantity)
		require.Equal(t, 0, recordA.ReservedQuantity)

		recordB, _ := ledger.Record(ctx, productB.ProductID, vendorB)
		require.Equal(t, 20, recordB.AvailableQuantity)
		require.Equal(t, 0, recordB.ReservedQuantity)

		_, err = svc.ProcessCancellation(ctx, order.OrderID, ActionApprove)
		require.ErrorIs(t, err, servererrors.ErrNoActiveRequest)
	})

	t.Run("rejection puts the order back to Processing with stock reserved", func(t *testing.T) {
		ledger, catalogService, svc := newTestServices()

		vendorID := uuid.New()
		product := createTestProduct(t, catalogService, vendorID, "Ceramic Mug", 8.00, 20)

		order, err := svc.CreateOrder(ctx, customerID, []NewItem{
			{ProductID: product.ProductID, VendorID: vendorID, Quantity: 4},
		})
		require.NoError(t, err)

		_, err = svc.RequestCancellation(ctx, order.OrderID)
		require.NoError(t, err)

		rejected, err := svc.ProcessCancellation(ctx, order.OrderID, ActionReject)
		require.NoError(t, err)
		require.Equal(t, StatusProcessing, rejected.Status)

		record, _ := ledger.Record(ctx, product.ProductID, vendorID)
		require.Equal(t, 16, record.AvailableQuantity)
		require.Equal(t, 4, record.ReservedQuantity)
	})

	t.Run("requests are only accepted while Processing", func(t *testing.T) {
		_, catalogService, svc := newTestServices()

		vendorID := uuid.New()
		product := createTestProduct(t, catalogService, vendorID, "Ceramic Mug", 8.00, 20)

		order, err := svc.CreateOrder(ctx, customerID, []NewItem{
			{ProductID: product.ProductID, VendorID: vendorID, Quantity: 1},
		})
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, order.OrderID, StatusShipped)
		require.NoError(t, err)

		_, err = svc.RequestCancellation(ctx, order.OrderID)

		require.ErrorIs(t, err, servererrors.ErrInvalidState)
	})

	t.Run("approval requires an active request", func(t *testing.T) {
		_, catalogService, svc := newTestServices()

		vendorID := uuid.New()
		product := createTestProduct(t, catalogService, vendorID, "Ceramic Mug", 8.00, 20)

		order, err := svc.CreateOrder(ctx, customerID, []NewItem{
			{ProductID: product.ProductID, VendorID: vendorID, Quantity: 1},
		})
		require.NoError(t, err)

		_, err = svc.ProcessCancellation(ctx, order.OrderID, ActionApprove)

		require.ErrorIs(t, err, servererrors.ErrNoActiveRequest)
	})

	t.Run("unknown actions are refused", func(t *testing.T) {
		_, _, svc := newTestServices()

		_, err := svc.ProcessCancellation(ctx, uuid.New(), CancellationAction("Escalate"))

		require.ErrorIs(t, err, servererrors.ErrInvalidAction)
	})
}

func TestService_MarkItemDelivered(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	t.Run("partial then full delivery recomputes the aggregate status", func(t *testing.T) {
		_, catalogService, svc := newTestServices()

		vendorA := uuid.New()
		vendorB := uuid.New()
		productA := createTestProduct(t, catalogService, vendorA, "Oak Serving Board", 10.50, 20)
		productB := createTestProduct(t, catalogService, vendorB, "Linen Napkin Set", 3.25, 20)

		order, err := svc.CreateOrder(ctx, customerID, []NewItem{
			{ProductID: productA.ProductID, VendorID: vendorA, Quantity: 1},
			{ProductID: productB.ProductID, VendorID: vendorB, Quantity: 1},
		})
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, order.OrderID, StatusShipped)
		require.NoError(t, err)

		partial, err := svc.MarkItemDelivered(ctx, order.OrderID, vendorA, productA.ProductID)
		require.NoError(t, err)
		require.Equal(t, StatusPartiallyDelivered, partial.Status)
		require.Equal(t, DeliveryStatusDelivered, partial.Items[0].DeliveryStatus)
		require.Equal(t, DeliveryStatusPending, partial.Items[1].DeliveryStatus)

		full, err := svc.MarkItemDelivered(ctx, order.OrderID, vendorB, productB.ProductID)
		require.NoError(t, err)
		require.Equal(t, StatusDelivered, full.Status)
	})

	t.Run("unknown (vendor, product) line", func(t *testing.T) {
		_, catalogService, svc := newTestServices()

		vendorID := uuid.New()
		product := createTestProduct(t, catalogService, vendorID, "Ceramic Mug", 8.00, 20)

		order, err := svc.CreateOrder(ctx, customerID, []NewItem{
			{ProductID: product.ProductID, VendorID: vendorID, Quantity: 1},
		})
		require.NoError(t, err)

		_, err = svc.MarkItemDelivered(ctx, order.OrderID, uuid.New(), product.ProductID)

		require.ErrorIs(t, err, servererrors.ErrItemNotFound)
	})
}

func TestService_OrderSnapshotIsImmutable(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	_, catalogService, svc := newTestServices()

	vendorID := uuid.New()
	product := createTestProduct(t, catalogService, vendorID, "Oak Serving Board", 10.00, 20)

	order, err := svc.CreateOrder(ctx, customerID, []NewItem{
		{ProductID: product.ProductID, VendorID: vendorID, Quantity: 2},
	})
	require.NoError(t, err)

	newName := "Walnut Serving Board"
	newPrice := 99.00
	_, err = catalogService.UpdateProduct(ctx, product.ProductID, &catalog.UpdateProductRequest{
		Name:  &newName,
		Price: &newPrice,
	})
	require.NoError(t, err)

	got, err := svc.GetOrder(ctx, order.OrderID)
	require.NoError(t, err)
	require.Equal(t, "Oak Serving Board", got.Items[0].ProductName)
	require.True(t, got.Items[0].Price.Equal(decimal.NewFromFloat(10.00)))
	require.True(t, got.TotalPrice.Equal(decimal.NewFromFloat(20.00)))
}

func TestService_ItemsByVendor(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	_, catalogService, svc := newTestServices()

	vendorA := uuid.New()
	vendorB := uuid.New()
	productA := createTestProduct(t, catalogService, vendorA, "Oak Serving Board", 10.50, 20)
	productB := createTestProduct(t, catalogService, vendorB, "Linen Napkin Set", 3.25, 20)

	_, err := svc.CreateOrder(ctx, customerID, []NewItem{
		{ProductID: productA.ProductID, VendorID: vendorA, Quantity: 1},
		{ProductID: productB.ProductID, VendorID: vendorB, Quantity: 2},
	})
	require.NoError(t, err)

	items := svc.ItemsByVendor(ctx, vendorA)

	require.Len(t, items, 1)
	require.Equal(t, productA.ProductID, items[0].ProductID)
}
