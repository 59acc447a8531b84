package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderCalculateTotal(t *testing.T) {
	order := Order{Items: []OrderItem{
		{Quantity: 3, Price: decimal.NewFromInt(1000)},
		{Quantity: 2, Price: decimal.RequireFromString("19.99")},
	}}

	assert.Equal(t, "3039.98", order.CalculateTotal().StringFixed(2))
	assert.True(t, (&Order{}).CalculateTotal().IsZero())
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, OrderShipped.Valid())
	assert.False(t, OrderStatus("lost").Valid())
	assert.True(t, PaymentBankTransfer.Valid())
	assert.False(t, PaymentMethod("crypto").Valid())
	assert.True(t, PaymentRefunded.Valid())
	assert.False(t, PaymentStatus("").Valid())
	assert.True(t, RoleEmployee.Valid())
	assert.False(t, Role("root").Valid())
}

func TestUserPasswordHash(t *testing.T) {
	u := User{}
	assert.NoError(t, u.SetPassword("secret123"))

	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, u.CheckPassword("secret123"))
	assert.False(t, u.CheckPassword("wrong"))
}
