package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-bizmanager/internal/model"
)

type StockMovementRepository interface {
	Create(tx *gorm.DB, movement *model.StockMovement) error
	FindByProduct(productID uuid.UUID) ([]model.StockMovement, error)
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
}

// StockMovementData is one point of the stock movement chart
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

const dayLayout = "2006-01-02"

type stockMovementRepo struct {
	db *gorm.DB
}

func NewStockMovementRepo(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db}
}

func (r *stockMovementRepo) Create(tx *gorm.DB, movement *model.StockMovement) error {
	return tx.Create(movement).Error
}

func (r *stockMovementRepo) FindByProduct(productID uuid.UUID) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.Where("product_id = ?", productID).Order("created_at DESC").Find(&movements).Error
	return movements, err
}

// GetStockMovement returns one entry per calendar day between startDate and
// endDate inclusive, with zero entries for quiet days. Days are bucketed in Go
// so the query stays portable between postgres and sqlite.
func (r *stockMovementRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var movements []model.StockMovement
	err := r.db.
		Select("type", "quantity", "created_at").
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Find(&movements).Error
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*StockMovementData)
	var results []StockMovementData
	for d := truncateDay(startDate); !d.After(endDate); d = d.AddDate(0, 0, 1) {
		results = append(results, StockMovementData{Date: d.Format(dayLayout)})
	}
	for i := range results {
		byDay[results[i].Date] = &results[i]
	}

	for _, m := range movements {
		point, ok := byDay[m.CreatedAt.In(startDate.Location()).Format(dayLayout)]
		if !ok {
			continue
		}
		switch m.Type {
		case model.MovementIn:
			point.Inbound += m.Quantity
		case model.MovementOut:
			point.Outbound += m.Quantity
		}
	}

	return results, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
