// Package invoice turns an order into a printable invoice.
package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"go-bizmanager/internal/model"
)

// Seller is the company block printed at the top of every invoice.
type Seller struct {
	Name    string
	Address string
	City    string
	Email   string
}

// Line is one row of the item table.
type Line struct {
	SKU         string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// Document is everything the renderer needs, already resolved from the order.
type Document struct {
	Title         string
	Number        string
	Seller        Seller
	Customer      model.Customer
	OrderDate     time.Time
	IssuedAt      time.Time
	PaymentMethod model.PaymentMethod
	PaymentStatus model.PaymentStatus
	Lines         []Line
	Total         decimal.Decimal
	Currency      string
}

var now = time.Now

// Build prepares the document for order. Items must have Product preloaded;
// a nil Product means the product has since been deleted.
func Build(order *model.Order, seller Seller, currency string) Document {
	doc := Document{
		Title:         "INVOICE",
		Number:        order.InvoiceNumber,
		Seller:        seller,
		Customer:      order.Customer,
		OrderDate:     order.CreatedAt,
		IssuedAt:      now(),
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: order.PaymentStatus,
		Lines:         make([]Line, 0, len(order.Items)),
		Total:         order.TotalAmount,
		Currency:      currency,
	}

	for i := range order.Items {
		item := &order.Items[i]
		line := Line{
			SKU:         "-",
			Description: "Deleted product",
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			Total:       item.LineTotal(),
		}
		if item.Product != nil {
			line.SKU = item.Product.SKU
			line.Description = item.Product.Name
		}
		doc.Lines = append(doc.Lines, line)
	}

	return doc
}

// Money formats an amount with two decimals and the currency suffix.
func (d Document) Money(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " " + d.Currency
}
