package sequence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-bizmanager/internal/model"
)

// GormSequencer keeps counters in the invoice_sequences table. The upsert
// takes a row lock that is held until the caller's transaction ends, so two
// concurrent orders in the same period are serialized.
type GormSequencer struct{}

func NewGormSequencer() *GormSequencer {
	return &GormSequencer{}
}

func (GormSequencer) Next(ctx context.Context, tx *gorm.DB, period string) (int64, error) {
	db := tx.WithContext(ctx)

	row := model.InvoiceSequence{Period: period, LastValue: 1}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "period"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_value": gorm.Expr("invoice_sequences.last_value + 1"),
		}),
	}).Create(&row).Error
	if err != nil {
		return 0, fmt.Errorf("failed to advance invoice sequence: %w", err)
	}

	if err := db.First(&row, "period = ?", period).Error; err != nil {
		return 0, fmt.Errorf("failed to read invoice sequence: %w", err)
	}
	return row.LastValue, nil
}
