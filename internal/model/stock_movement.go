package model

import "github.com/google/uuid"

type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

const (
	ReasonOrder      = "order"
	ReasonAdjustment = "adjustment"
)

// StockMovement records every change of a product's quantity.
type StockMovement struct {
	BaseModel
	ProductID uuid.UUID    `gorm:"type:uuid;not null;index" json:"product_id"`
	Type      MovementType `gorm:"type:varchar(10);not null" json:"type"`
	Quantity  int          `gorm:"not null" json:"quantity"`
	Reason    string       `gorm:"type:varchar(20);not null" json:"reason"`
	OrderID   *uuid.UUID   `gorm:"type:uuid;index" json:"order_id,omitempty"`
	Note      string       `json:"note,omitempty"`
}
