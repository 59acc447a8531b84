package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold applies when a product is created without a threshold.
const DefaultLowStockThreshold = 5

type Product struct {
	BaseModel
	SKU               string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name              string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description       string          `gorm:"type:text" json:"description"`
	Category          string          `gorm:"type:varchar(100);not null;index" json:"category" validate:"required"`
	Price             decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price" validate:"gte=0"`
	Quantity          int             `gorm:"not null" json:"quantity" validate:"gte=0"`
	LowStockThreshold int             `gorm:"not null" json:"low_stock_threshold" validate:"gte=0"`
	Supplier          string          `gorm:"type:varchar(255)" json:"supplier"`
}

// IsLowStock reports whether quantity has reached the low-stock threshold.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}

// ProductResponse is the API shape of a product, including derived fields
type ProductResponse struct {
	ID                uuid.UUID       `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Category          string          `json:"category"`
	Price             decimal.Decimal `json:"price"`
	Quantity          int             `json:"quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	IsLowStock        bool            `json:"is_low_stock"`
	Supplier          string          `json:"supplier"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToResponse converts Product to ProductResponse
func (p *Product) ToResponse() ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		SKU:               p.SKU,
		Name:              p.Name,
		Description:       p.Description,
		Category:          p.Category,
		Price:             p.Price,
		Quantity:          p.Quantity,
		LowStockThreshold: p.LowStockThreshold,
		IsLowStock:        p.IsLowStock(),
		Supplier:          p.Supplier,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// ProductResponses converts a slice of products.
func ProductResponses(products []Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = products[i].ToResponse()
	}
	return out
}
