package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-bizmanager/internal/model"
)

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	FindAll() ([]model.Order, error)
	FindByID(id uuid.UUID) (*model.Order, error)
	UpdateStatus(id uuid.UUID, status model.OrderStatus, updatedBy string) error
	UpdatePaymentStatus(id uuid.UUID, status model.PaymentStatus, updatedBy string) error
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func itemsInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// Create inserts the order and its items within tx. Items must not carry a
// resolved Product, otherwise GORM would upsert it too.
func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepo) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.
		Preload("Items", itemsInOrder).
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// FindByID loads the order with its items and their products. Product is nil
// for items whose product has been deleted.
func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.
		Preload("Items", itemsInOrder).
		Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) UpdateStatus(id uuid.UUID, status model.OrderStatus, updatedBy string) error {
	return r.updateColumn(id, "status", status, updatedBy)
}

func (r *orderRepo) UpdatePaymentStatus(id uuid.UUID, status model.PaymentStatus, updatedBy string) error {
	return r.updateColumn(id, "payment_status", status, updatedBy)
}

func (r *orderRepo) updateColumn(id uuid.UUID, column string, value interface{}, updatedBy string) error {
	res := r.db.Model(&model.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			column:       value,
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
