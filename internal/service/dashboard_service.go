package service

import (
	"time"

	"github.com/shopspring/decimal"

	"go-bizmanager/internal/model"
	"go-bizmanager/internal/repository"
)

type DashboardService interface {
	GetStockMovement(days int) ([]repository.StockMovementData, error)
	GetPublicStats() (*PublicStats, error)
}

type SalesStats struct {
	TotalOrders    int64                   `json:"total_orders"`
	TotalSales     decimal.Decimal         `json:"total_sales"`
	OrdersByStatus map[string]int64        `json:"orders_by_status"`
	SalesByDay     []repository.DailySales `json:"sales_by_day"`
}

type ProductStats struct {
	TotalProducts      int64            `json:"total_products"`
	LowStockCount      int64            `json:"low_stock_count"`
	LowStockPercentage float64          `json:"low_stock_percentage"`
	ProductsByCategory map[string]int64 `json:"products_by_category"`
}

type EmployeeStats struct {
	TotalEmployees        int64            `json:"total_employees"`
	NewEmployees          int64            `json:"new_employees"`
	EmployeesByDepartment map[string]int64 `json:"employees_by_department"`
}

type UserStats struct {
	TotalUsers  int64            `json:"total_users"`
	UsersByRole map[string]int64 `json:"users_by_role"`
	NewUsers    int64            `json:"new_users"`
}

// PublicStats is the unauthenticated home page summary.
type PublicStats struct {
	Sales     SalesStats    `json:"sales"`
	Products  ProductStats  `json:"products"`
	Employees EmployeeStats `json:"employees"`
	Users     UserStats     `json:"users"`
}

const (
	salesWindowDays = 7
	newcomerWindow  = 30
	maxMovementDays = 365
	defaultMoveDays = 7
)

type dashboardService struct {
	statsRepo    repository.DashboardRepository
	movementRepo repository.StockMovementRepository
	now          func() time.Time
}

func NewDashboardService(statsRepo repository.DashboardRepository, movementRepo repository.StockMovementRepository) DashboardService {
	return &dashboardService{statsRepo: statsRepo, movementRepo: movementRepo, now: time.Now}
}

// GetStockMovement returns the daily movement series covering the last days
// days, today included.
func (s *dashboardService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	if days <= 0 {
		days = defaultMoveDays
	}
	if days > maxMovementDays {
		days = maxMovementDays
	}

	endDate := s.now()
	startDate := startOfDay(endDate.AddDate(0, 0, -(days - 1)))

	return s.movementRepo.GetStockMovement(startDate, endDate)
}

func (s *dashboardService) GetPublicStats() (*PublicStats, error) {
	now := s.now()
	var stats PublicStats
	var err error

	// sales
	if stats.Sales.TotalOrders, err = s.statsRepo.Count(&model.Order{}); err != nil {
		return nil, err
	}
	if stats.Sales.TotalSales, err = s.statsRepo.TotalSales(); err != nil {
		return nil, err
	}
	if stats.Sales.OrdersByStatus, err = s.grouped(&model.Order{}, "status"); err != nil {
		return nil, err
	}
	if stats.Sales.SalesByDay, err = s.statsRepo.SalesByDay(startOfDay(now.AddDate(0, 0, -(salesWindowDays - 1)))); err != nil {
		return nil, err
	}

	// products
	if stats.Products.TotalProducts, err = s.statsRepo.Count(&model.Product{}); err != nil {
		return nil, err
	}
	if stats.Products.LowStockCount, err = s.statsRepo.CountLowStock(); err != nil {
		return nil, err
	}
	if stats.Products.TotalProducts > 0 {
		stats.Products.LowStockPercentage = float64(stats.Products.LowStockCount) / float64(stats.Products.TotalProducts) * 100
	}
	if stats.Products.ProductsByCategory, err = s.grouped(&model.Product{}, "category"); err != nil {
		return nil, err
	}

	// employees and users
	since := now.AddDate(0, 0, -newcomerWindow)
	if stats.Employees.TotalEmployees, err = s.statsRepo.Count(&model.Employee{}); err != nil {
		return nil, err
	}
	if stats.Employees.NewEmployees, err = s.statsRepo.CountSince(&model.Employee{}, since); err != nil {
		return nil, err
	}
	if stats.Employees.EmployeesByDepartment, err = s.grouped(&model.Employee{}, "department"); err != nil {
		return nil, err
	}
	if stats.Users.TotalUsers, err = s.statsRepo.Count(&model.User{}); err != nil {
		return nil, err
	}
	if stats.Users.NewUsers, err = s.statsRepo.CountSince(&model.User{}, since); err != nil {
		return nil, err
	}
	if stats.Users.UsersByRole, err = s.grouped(&model.User{}, "role"); err != nil {
		return nil, err
	}

	return &stats, nil
}

func (s *dashboardService) grouped(value interface{}, column string) (map[string]int64, error) {
	rows, err := s.statsRepo.GroupCount(value, column)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Name] = r.Count
	}
	return out, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
