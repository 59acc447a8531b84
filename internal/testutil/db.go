// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-bizmanager/internal/model"
	"go-bizmanager/pkg/database"
)

// NewTestDB returns a migrated in-memory SQLite database private to t.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.Options{Driver: "sqlite", DSN: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.Tables...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SeedProduct inserts a product with the given stock and price.
func SeedProduct(t *testing.T, db *gorm.DB, sku string, price string, quantity int) *model.Product {
	t.Helper()

	p := &model.Product{
		SKU:               sku,
		Name:              "Product " + sku,
		Category:          "General",
		Price:             decimal.RequireFromString(price),
		Quantity:          quantity,
		LowStockThreshold: model.DefaultLowStockThreshold,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}
