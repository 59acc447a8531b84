package model

// InvoiceSequence holds the last invoice sequence issued for a YYMM period.
type InvoiceSequence struct {
	Period    string `gorm:"type:varchar(4);primaryKey" json:"period"`
	LastValue int64  `gorm:"not null" json:"last_value"`
}
