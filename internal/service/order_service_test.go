package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-bizmanager/internal/model"
	"go-bizmanager/internal/repository"
	"go-bizmanager/internal/testutil"
	"go-bizmanager/pkg/apperror"
)

var orderTime = time.Date(2026, time.October, 15, 10, 30, 0, 0, time.Local)

func newOrderService(t *testing.T) (*orderService, *gorm.DB, *recordingBroadcaster) {
	t.Helper()
	db := testutil.NewTestDB(t)
	events := &recordingBroadcaster{}

	svc := NewOrderService(
		repository.NewOrderRepo(db),
		repository.NewProductRepo(db),
		repository.NewStockMovementRepo(db),
		nil,
		db,
		events,
	).(*orderService)
	svc.now = func() time.Time { return orderTime }
	return svc, db, events
}

func orderRequest(items ...OrderItemRequest) *CreateOrderRequest {
	return &CreateOrderRequest{
		Customer: model.Customer{
			Name:    "Jane Buyer",
			Email:   "jane@example.com",
			Address: "4 Harbour Lane",
		},
		Items:         items,
		PaymentMethod: model.PaymentCash,
	}
}

func TestCreateOrderSingleItem(t *testing.T) {
	svc, db, events := newOrderService(t)
	p := testutil.SeedProduct(t, db, "P-001", "1000", 5)
	require.NoError(t, db.Model(p).Update("low_stock_threshold", 2).Error)

	order, err := svc.CreateOrder(context.Background(), orderRequest(OrderItemRequest{ProductID: p.ID, Quantity: 3}), employee)
	require.NoError(t, err)

	assert.Equal(t, "INV-2610-0001", order.InvoiceNumber)
	assert.Equal(t, "3000", order.TotalAmount.String())
	assert.Equal(t, model.OrderPending, order.Status)
	assert.Equal(t, model.PaymentPending, order.PaymentStatus)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "1000", order.Items[0].Price.String())
	require.NotNil(t, order.Items[0].Product)
	assert.Equal(t, "P-001", order.Items[0].Product.SKU)
	assert.True(t, order.Items[0].Product.IsLowStock())

	assert.Equal(t, 2, quantityOf(t, db, p.ID))
	assert.Equal(t, []string{"order_created", "low_stock"}, events.actions())

	var movements []model.StockMovement
	require.NoError(t, db.Find(&movements).Error)
	require.Len(t, movements, 1)
	assert.Equal(t, model.MovementOut, movements[0].Type)
	assert.Equal(t, 3, movements[0].Quantity)
	require.NotNil(t, movements[0].OrderID)
	assert.Equal(t, order.ID, *movements[0].OrderID)
}

func TestCreateOrderAlreadyLowDoesNotRealert(t *testing.T) {
	svc, db, events := newOrderService(t)
	p := testutil.SeedProduct(t, db, "P-002", "10", 4)

	_, err := svc.CreateOrder(context.Background(), orderRequest(OrderItemRequest{ProductID: p.ID, Quantity: 1}), employee)
	require.NoError(t, err)
	assert.Equal(t, []string{"order_created"}, events.actions())
}

func TestCreateOrderTotalsAndDecrementsEveryItem(t *testing.T) {
	svc, db, _ := newOrderService(t)
	a := testutil.SeedProduct(t, db, "A", "999.99", 20)
	b := testutil.SeedProduct(t, db, "B", "40", 50)

	order, err := svc.CreateOrder(context.Background(), orderRequest(
		OrderItemRequest{ProductID: a.ID, Quantity: 3},
		OrderItemRequest{ProductID: b.ID, Quantity: 1},
		OrderItemRequest{ProductID: a.ID, Quantity: 1},
	), employee)
	require.NoError(t, err)

	assert.True(t, order.TotalAmount.Equal(order.CalculateTotal()))
	assert.Equal(t, "4039.96", order.TotalAmount.StringFixed(2))
	assert.Equal(t, 16, quantityOf(t, db, a.ID))
	assert.Equal(t, 49, quantityOf(t, db, b.ID))
}

func TestCreateOrderInsufficientStockChangesNothing(t *testing.T) {
	svc, db, events := newOrderService(t)
	a := testutil.SeedProduct(t, db, "A", "10", 10)
	b := testutil.SeedProduct(t, db, "B", "10", 1)

	_, err := svc.CreateOrder(context.Background(), orderRequest(
		OrderItemRequest{ProductID: a.ID, Quantity: 3},
		OrderItemRequest{ProductID: b.ID, Quantity: 2},
	), employee)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Available: 1")

	assert.Equal(t, 10, quantityOf(t, db, a.ID), "earlier items are rolled back")
	assert.Equal(t, 1, quantityOf(t, db, b.ID))
	assert.Empty(t, events.actions())

	var orders, movements int64
	db.Model(&model.Order{}).Count(&orders)
	db.Model(&model.StockMovement{}).Count(&movements)
	assert.Zero(t, orders)
	assert.Zero(t, movements)

	order, err := svc.CreateOrder(context.Background(), orderRequest(OrderItemRequest{ProductID: a.ID, Quantity: 1}), employee)
	require.NoError(t, err)
	assert.Equal(t, "INV-2610-0001", order.InvoiceNumber, "failed orders do not consume numbers")
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	svc, db, _ := newOrderService(t)
	a := testutil.SeedProduct(t, db, "A", "10", 10)

	_, err := svc.CreateOrder(context.Background(), orderRequest(
		OrderItemRequest{ProductID: a.ID, Quantity: 1},
		OrderItemRequest{ProductID: uuid.New(), Quantity: 1},
	), employee)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, 10, quantityOf(t, db, a.ID))
}

func TestCreateOrderValidation(t *testing.T) {
	svc, db, _ := newOrderService(t)
	p := testutil.SeedProduct(t, db, "A", "10", 10)

	tests := []struct {
		name   string
		mutate func(r *CreateOrderRequest)
	}{
		{"no items", func(r *CreateOrderRequest) { r.Items = nil }},
		{"zero quantity", func(r *CreateOrderRequest) { r.Items[0].Quantity = 0 }},
		{"missing product", func(r *CreateOrderRequest) { r.Items[0].ProductID = uuid.Nil }},
		{"missing customer email", func(r *CreateOrderRequest) { r.Customer.Email = "" }},
		{"bad customer email", func(r *CreateOrderRequest) { r.Customer.Email = "nope" }},
		{"missing address", func(r *CreateOrderRequest) { r.Customer.Address = "" }},
		{"missing payment method", func(r *CreateOrderRequest) { r.PaymentMethod = "" }},
		{"unknown payment method", func(r *CreateOrderRequest) { r.PaymentMethod = "bitcoin" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := orderRequest(OrderItemRequest{ProductID: p.ID, Quantity: 1})
			tt.mutate(req)

			_, err := svc.CreateOrder(context.Background(), req, employee)
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}
	assert.Equal(t, 10, quantityOf(t, db, p.ID))
}

func TestInvoiceNumbersIncrease(t *testing.T) {
	svc, db, _ := newOrderService(t)
	p := testutil.SeedProduct(t, db, "A", "10", 100)

	var numbers []string
	for i := 0; i < 3; i++ {
		order, err := svc.CreateOrder(context.Background(), orderRequest(OrderItemRequest{ProductID: p.ID, Quantity: 1}), employee)
		require.NoError(t, err)
		numbers = append(numbers, order.InvoiceNumber)
	}
	assert.Equal(t, []string{"INV-2610-0001", "INV-2610-0002", "INV-2610-0003"}, numbers)

	svc.now = func() time.Time { return orderTime.AddDate(0, 1, 0) }
	order, err := svc.CreateOrder(context.Background(), orderRequest(OrderItemRequest{ProductID: p.ID, Quantity: 1}), employee)
	require.NoError(t, err)
	assert.Equal(t, "INV-2611-0001", order.InvoiceNumber)
}

func TestUpdateStatus(t *testing.T) {
	svc, db, events := newOrderService(t)
	p := testutil.SeedProduct(t, db, "A", "10", 10)
	order, err := svc.CreateOrder(context.Background(), orderRequest(OrderItemRequest{ProductID: p.ID, Quantity: 2}), employee)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.UpdateStatus(ctx, order.ID, "lost", employee)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	stored, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPending, stored.Status)

	_, err = svc.UpdateStatus(ctx, uuid.New(), model.OrderShipped, employee)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	updated, err := svc.UpdateStatus(ctx, order.ID, model.OrderCancelled, employee)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCancelled, updated.Status)
	assert.Equal(t, 8, quantityOf(t, db, p.ID), "cancelling does not restock")
	assert.Contains(t, events.actions(), "order_status_updated")
}

func TestUpdatePaymentStatus(t *testing.T) {
	svc, db, _ := newOrderService(t)
	p := testutil.SeedProduct(t, db, "A", "10", 10)
	order, err := svc.CreateOrder(context.Background(), orderRequest(OrderItemRequest{ProductID: p.ID, Quantity: 1}), employee)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.UpdatePaymentStatus(ctx, order.ID, "", employee)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.UpdatePaymentStatus(ctx, order.ID, "chargeback", employee)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	updated, err := svc.UpdatePaymentStatus(ctx, order.ID, model.PaymentPaid, employee)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, updated.PaymentStatus)
	assert.Equal(t, model.OrderPending, updated.Status)
}

func TestListOrdersNewestFirst(t *testing.T) {
	svc, db, _ := newOrderService(t)
	p := testutil.SeedProduct(t, db, "A", "10", 10)
	ctx := context.Background()

	first, err := svc.CreateOrder(ctx, orderRequest(OrderItemRequest{ProductID: p.ID, Quantity: 1}), employee)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := svc.CreateOrder(ctx, orderRequest(OrderItemRequest{ProductID: p.ID, Quantity: 1}), employee)
	require.NoError(t, err)

	orders, err := svc.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
	require.NotNil(t, orders[0].Items[0].Product)
}
