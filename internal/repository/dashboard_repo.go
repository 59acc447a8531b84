package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-bizmanager/internal/model"
)

// GroupCount is one bucket of a GROUP BY count.
type GroupCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// DailySales aggregates orders placed on one day.
type DailySales struct {
	Date   string          `json:"date"`
	Orders int64           `json:"orders"`
	Total  decimal.Decimal `json:"total"`
}

// DashboardRepository runs the read-only aggregates behind the dashboards.
type DashboardRepository interface {
	Count(value interface{}) (int64, error)
	CountSince(value interface{}, since time.Time) (int64, error)
	CountLowStock() (int64, error)
	GroupCount(value interface{}, column string) ([]GroupCount, error)
	TotalSales() (decimal.Decimal, error)
	SalesByDay(since time.Time) ([]DailySales, error)
}

type dashboardRepo struct {
	db *gorm.DB
}

func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{db}
}

func (r *dashboardRepo) Count(value interface{}) (int64, error) {
	var count int64
	err := r.db.Model(value).Count(&count).Error
	return count, err
}

func (r *dashboardRepo) CountSince(value interface{}, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(value).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

func (r *dashboardRepo) CountLowStock() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("quantity <= low_stock_threshold").Count(&count).Error
	return count, err
}

// GroupCount counts rows of value grouped by column. column must be a
// trusted identifier, never user input.
func (r *dashboardRepo) GroupCount(value interface{}, column string) ([]GroupCount, error) {
	var out []GroupCount
	err := r.db.Model(value).
		Select(column + " AS name, COUNT(*) AS count").
		Group(column).
		Scan(&out).Error
	return out, err
}

func (r *dashboardRepo) TotalSales() (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Model(&model.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}

// SalesByDay returns one entry per day from since until today, oldest first.
func (r *dashboardRepo) SalesByDay(since time.Time) ([]DailySales, error) {
	var orders []model.Order
	err := r.db.
		Select("total_amount", "created_at").
		Where("created_at >= ?", since).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	var days []DailySales
	index := make(map[string]int)
	for d := truncateDay(since); !d.After(time.Now()); d = d.AddDate(0, 0, 1) {
		index[d.Format(dayLayout)] = len(days)
		days = append(days, DailySales{Date: d.Format(dayLayout)})
	}

	for _, o := range orders {
		i, ok := index[o.CreatedAt.In(since.Location()).Format(dayLayout)]
		if !ok {
			continue
		}
		days[i].Orders++
		days[i].Total = days[i].Total.Add(o.TotalAmount)
	}

	return days, nil
}
