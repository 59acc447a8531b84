package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Address struct {
	Street     string `gorm:"type:varchar(255)" json:"street"`
	City       string `gorm:"type:varchar(100)" json:"city"`
	PostalCode string `gorm:"type:varchar(20)" json:"postal_code"`
	Country    string `gorm:"type:varchar(100)" json:"country"`
}

type Employee struct {
	BaseModel
	FirstName  string           `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName   string           `gorm:"type:varchar(100);not null" json:"last_name"`
	Email      string           `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone      string           `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Position   string           `gorm:"type:varchar(100);not null" json:"position"`
	Department string           `gorm:"type:varchar(100);not null;index" json:"department"`
	HireDate   time.Time        `gorm:"not null" json:"hire_date"`
	Salary     *decimal.Decimal `gorm:"type:decimal(12,2)" json:"salary,omitempty"`
	Address    Address          `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	IsActive   bool             `gorm:"not null" json:"is_active"`
	UserID     *uuid.UUID       `gorm:"type:uuid;index" json:"user_id,omitempty"`
}
