// Package sequence issues the per-month invoice counters.
package sequence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Sequencer returns the next value of the counter for period. tx is the
// surrounding order transaction; implementations that live outside the
// database may ignore it.
type Sequencer interface {
	Next(ctx context.Context, tx *gorm.DB, period string) (int64, error)
}

// Period is the YYMM bucket a timestamp falls into.
func Period(t time.Time) string {
	return t.Format("0601")
}

// InvoiceNumber formats INV-YYMM-NNNN.
func InvoiceNumber(t time.Time, seq int64) string {
	return fmt.Sprintf("INV-%s-%04d", Period(t), seq)
}
