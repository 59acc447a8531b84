package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-bizmanager/internal/model"
	"go-bizmanager/internal/repository"
	"go-bizmanager/internal/testutil"
)

func TestPublicStatsEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewDashboardService(repository.NewDashboardRepo(db), repository.NewStockMovementRepo(db))

	stats, err := svc.GetPublicStats()
	require.NoError(t, err)
	assert.Zero(t, stats.Products.TotalProducts)
	assert.Zero(t, stats.Products.LowStockPercentage)
	assert.True(t, stats.Sales.TotalSales.IsZero())
	assert.Len(t, stats.Sales.SalesByDay, 7)
}

func TestPublicStats(t *testing.T) {
	orders, db, _ := newOrderService(t)
	orders.now = func() time.Time { return time.Now() }
	a := testutil.SeedProduct(t, db, "A", "100", 10)
	testutil.SeedProduct(t, db, "B", "5", 1)
	ctx := context.Background()

	_, err := orders.CreateOrder(ctx, orderRequest(OrderItemRequest{ProductID: a.ID, Quantity: 2}), employee)
	require.NoError(t, err)
	second, err := orders.CreateOrder(ctx, orderRequest(OrderItemRequest{ProductID: a.ID, Quantity: 1}), employee)
	require.NoError(t, err)
	_, err = orders.UpdateStatus(ctx, second.ID, model.OrderShipped, employee)
	require.NoError(t, err)

	users := NewUserService(repository.NewUserRepo(db))
	_, err = users.CreateUser(&CreateUserRequest{Name: "Eve", Email: "eve@example.com", Password: "secret1", Role: model.RoleAdmin}, admin)
	require.NoError(t, err)
	_, err = NewEmployeeService(repository.NewEmployeeRepo(db)).CreateEmployee(employeeRequest("ada@example.com"), admin)
	require.NoError(t, err)

	svc := NewDashboardService(repository.NewDashboardRepo(db), repository.NewStockMovementRepo(db))
	stats, err := svc.GetPublicStats()
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.Sales.TotalOrders)
	assert.Equal(t, "300.00", stats.Sales.TotalSales.StringFixed(2))
	assert.Equal(t, map[string]int64{"pending": 1, "shipped": 1}, stats.Sales.OrdersByStatus)
	today := stats.Sales.SalesByDay[len(stats.Sales.SalesByDay)-1]
	assert.Equal(t, int64(2), today.Orders)
	assert.Equal(t, "300.00", today.Total.StringFixed(2))

	assert.Equal(t, int64(2), stats.Products.TotalProducts)
	assert.Equal(t, int64(1), stats.Products.LowStockCount)
	assert.InDelta(t, 50.0, stats.Products.LowStockPercentage, 0.001)
	assert.Equal(t, map[string]int64{"General": 2}, stats.Products.ProductsByCategory)

	assert.Equal(t, int64(1), stats.Employees.TotalEmployees)
	assert.Equal(t, int64(1), stats.Employees.NewEmployees)
	assert.Equal(t, map[string]int64{"Finance": 1}, stats.Employees.EmployeesByDepartment)

	assert.Equal(t, int64(1), stats.Users.TotalUsers)
	assert.Equal(t, map[string]int64{"admin": 1}, stats.Users.UsersByRole)

	movement, err := svc.GetStockMovement(7)
	require.NoError(t, err)
	require.Len(t, movement, 7)
	assert.Equal(t, 3, movement[6].Outbound)
}

func TestPublicStatsSalesStayExact(t *testing.T) {
	orders, db, _ := newOrderService(t)
	orders.now = func() time.Time { return time.Now() }
	dime := testutil.SeedProduct(t, db, "DIME", "0.10", 100)
	ctx := context.Background()

	_, err := orders.CreateOrder(ctx, orderRequest(OrderItemRequest{ProductID: dime.ID, Quantity: 1}), employee)
	require.NoError(t, err)
	_, err = orders.CreateOrder(ctx, orderRequest(OrderItemRequest{ProductID: dime.ID, Quantity: 2}), employee)
	require.NoError(t, err)

	svc := NewDashboardService(repository.NewDashboardRepo(db), repository.NewStockMovementRepo(db))
	stats, err := svc.GetPublicStats()
	require.NoError(t, err)

	assert.True(t, stats.Sales.TotalSales.Equal(decimal.RequireFromString("0.3")), stats.Sales.TotalSales.String())
	today := stats.Sales.SalesByDay[len(stats.Sales.SalesByDay)-1]
	assert.True(t, today.Total.Equal(decimal.RequireFromString("0.3")), today.Total.String())
}
