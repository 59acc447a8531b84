package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-bizmanager/internal/model"
	"go-bizmanager/pkg/apperror"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	Search(query string) ([]model.Product, error)
	FindLowStock() ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	DecrementQuantity(tx *gorm.DB, id uuid.UUID, amount int, updatedBy string) (*model.Product, error)
	SetQuantity(tx *gorm.DB, product *model.Product, quantity int, updatedBy string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Search matches query case-insensitively against the text columns.
func (r *productRepo) Search(query string) ([]model.Product, error) {
	like := "%" + strings.ToLower(query) + "%"

	var products []model.Product
	err := r.db.
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ? OR LOWER(supplier) LIKE ? OR LOWER(sku) LIKE ?",
			like, like, like, like, like).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindLowStock() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("quantity <= low_stock_threshold").Order("quantity ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// LockByID loads the product with a row lock held until tx ends.
func (r *productRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// DecrementQuantity removes amount units from stock. When stock is short the
// row is left untouched and an InsufficientStock error is returned.
func (r *productRepo) DecrementQuantity(tx *gorm.DB, id uuid.UUID, amount int, updatedBy string) (*model.Product, error) {
	product, err := r.LockByID(tx, id)
	if err != nil {
		return nil, err
	}

	if amount > product.Quantity {
		return nil, apperror.InsufficientStock("Insufficient stock for %s. Available: %d, requested: %d",
			product.Name, product.Quantity, amount)
	}

	if err := r.SetQuantity(tx, product, product.Quantity-amount, updatedBy); err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) SetQuantity(tx *gorm.DB, product *model.Product, quantity int, updatedBy string) error {
	err := tx.Model(&model.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_by": updatedBy,
		}).Error
	if err != nil {
		return err
	}

	product.Quantity = quantity
	product.UpdatedBy = updatedBy
	return nil
}
