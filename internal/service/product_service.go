package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-bizmanager/internal/model"
	"go-bizmanager/internal/repository"
	"go-bizmanager/pkg/apperror"
	"go-bizmanager/pkg/validator"
)

type ProductService interface {
	CreateProduct(req *ProductRequest, actor model.Principal) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *ProductRequest, actor model.Principal) (*model.Product, error)
	DeleteProduct(id uuid.UUID, actor model.Principal) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetAllProducts() ([]model.Product, error)
	SearchProducts(query string) ([]model.Product, error)
	GetLowStockProducts() ([]model.Product, error)
	UpdateQuantity(id uuid.UUID, quantity *int, actor model.Principal) (*QuantityUpdate, error)
}

// ProductRequest is the create/update payload. A nil LowStockThreshold keeps
// the current value, or the default for new products.
type ProductRequest struct {
	SKU               string          `json:"sku" validate:"required"`
	Name              string          `json:"name" validate:"required"`
	Description       string          `json:"description"`
	Category          string          `json:"category" validate:"required"`
	Price             decimal.Decimal `json:"price" validate:"gte=0"`
	Quantity          int             `json:"quantity" validate:"gte=0"`
	LowStockThreshold *int            `json:"low_stock_threshold" validate:"omitempty,gte=0"`
	Supplier          string          `json:"supplier"`
}

// QuantityUpdate carries the product after a manual stock change and, when
// it is now at or below its threshold, an alert for the operator.
type QuantityUpdate struct {
	Product model.ProductResponse `json:"product"`
	Alert   string                `json:"alert,omitempty"`
}

type productService struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	db           *gorm.DB
	events       Broadcaster
}

func NewProductService(pRepo repository.ProductRepository, mRepo repository.StockMovementRepository, db *gorm.DB, events Broadcaster) ProductService {
	return &productService{
		productRepo:  pRepo,
		movementRepo: mRepo,
		db:           db,
		events:       broadcasterOrNop(events),
	}
}

func (s *productService) CreateProduct(req *ProductRequest, actor model.Principal) (*model.Product, error) {
	if err := requireAdmin(actor, "create a product"); err != nil {
		return nil, err
	}
	req.SKU = strings.TrimSpace(req.SKU)
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindBySKU(req.SKU); err == nil {
		return nil, apperror.Conflict("SKU already exists")
	}

	product := &model.Product{
		SKU:               req.SKU,
		Name:              req.Name,
		Description:       req.Description,
		Category:          req.Category,
		Price:             req.Price,
		Quantity:          req.Quantity,
		LowStockThreshold: model.DefaultLowStockThreshold,
		Supplier:          req.Supplier,
	}
	if req.LowStockThreshold != nil {
		product.LowStockThreshold = *req.LowStockThreshold
	}
	product.CreatedBy = actor.Actor()
	product.UpdatedBy = actor.Actor()

	if err := s.productRepo.Create(product); err != nil {
		return nil, conflict(err, "SKU already exists")
	}

	s.events.Publish(EventStock, "product_created", product.ToResponse(),
		fmt.Sprintf("%s created product '%s'", actor.Name, product.Name))

	return product, nil
}

func (s *productService) UpdateProduct(id uuid.UUID, req *ProductRequest, actor model.Principal) (*model.Product, error) {
	if err := requireAdmin(actor, "update a product"); err != nil {
		return nil, err
	}
	req.SKU = strings.TrimSpace(req.SKU)
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, "Product")
	}

	if req.SKU != existing.SKU {
		if other, err := s.productRepo.FindBySKU(req.SKU); err == nil && other.ID != existing.ID {
			return nil, apperror.Conflict("SKU already exists")
		}
	}

	oldQuantity := existing.Quantity

	existing.SKU = req.SKU
	existing.Name = req.Name
	existing.Description = req.Description
	existing.Category = req.Category
	existing.Price = req.Price
	existing.Quantity = req.Quantity
	existing.Supplier = req.Supplier
	if req.LowStockThreshold != nil {
		existing.LowStockThreshold = *req.LowStockThreshold
	}
	existing.UpdatedBy = actor.Actor()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		return s.recordAdjustment(tx, existing.ID, existing.Quantity-oldQuantity, actor)
	})
	if err != nil {
		return nil, conflict(err, "SKU already exists")
	}

	s.events.Publish(EventStock, "product_updated", existing.ToResponse(),
		fmt.Sprintf("%s updated product '%s'", actor.Name, existing.Name))
	s.alertIfLow(existing)

	return existing, nil
}

func (s *productService) DeleteProduct(id uuid.UUID, actor model.Principal) error {
	if err := requireAdmin(actor, "delete a product"); err != nil {
		return err
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return notFound(err, "Product")
	}
	if err := s.productRepo.Delete(id); err != nil {
		return notFound(err, "Product")
	}

	s.events.Publish(EventStock, "product_deleted", productRef(product),
		fmt.Sprintf("%s deleted product '%s'", actor.Name, product.Name))
	return nil
}

func (s *productService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, "Product")
	}
	return product, nil
}

func (s *productService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *productService) SearchProducts(query string) ([]model.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.Validation("Missing search query")
	}
	return s.productRepo.Search(query)
}

func (s *productService) GetLowStockProducts() ([]model.Product, error) {
	return s.productRepo.FindLowStock()
}

// UpdateQuantity sets the stock level directly and logs the difference as an
// adjustment movement.
func (s *productService) UpdateQuantity(id uuid.UUID, quantity *int, actor model.Principal) (*QuantityUpdate, error) {
	if quantity == nil {
		return nil, apperror.Validation("Quantity is required")
	}
	if *quantity < 0 {
		return nil, apperror.Validation("Quantity cannot be negative")
	}

	var product *model.Product
	var oldQuantity int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		product, err = s.productRepo.LockByID(tx, id)
		if err != nil {
			return err
		}
		oldQuantity = product.Quantity

		if err := s.productRepo.SetQuantity(tx, product, *quantity, actor.Actor()); err != nil {
			return err
		}
		return s.recordAdjustment(tx, product.ID, *quantity-oldQuantity, actor)
	})
	if err != nil {
		return nil, notFound(err, "Product")
	}

	s.events.Publish(EventStock, "quantity_updated", map[string]interface{}{
		"id":           product.ID,
		"sku":          product.SKU,
		"name":         product.Name,
		"old_quantity": oldQuantity,
		"new_quantity": product.Quantity,
	}, fmt.Sprintf("%s set stock of '%s' to %d", actor.Name, product.Name, product.Quantity))

	out := &QuantityUpdate{Product: product.ToResponse()}
	if product.IsLowStock() {
		out.Alert = lowStockMessage(product)
		s.alertIfLow(product)
	}
	return out, nil
}

func (s *productService) recordAdjustment(tx *gorm.DB, productID uuid.UUID, delta int, actor model.Principal) error {
	if delta == 0 {
		return nil
	}

	movement := &model.StockMovement{
		ProductID: productID,
		Type:      model.MovementIn,
		Quantity:  delta,
		Reason:    model.ReasonAdjustment,
	}
	if delta < 0 {
		movement.Type = model.MovementOut
		movement.Quantity = -delta
	}
	movement.CreatedBy = actor.Actor()
	movement.UpdatedBy = actor.Actor()

	if err := s.movementRepo.Create(tx, movement); err != nil {
		return fmt.Errorf("failed to record stock movement: %w", err)
	}
	return nil
}

func (s *productService) alertIfLow(product *model.Product) {
	if !product.IsLowStock() {
		return
	}
	zap.L().Info("product at low stock",
		zap.String("sku", product.SKU),
		zap.Int("quantity", product.Quantity),
		zap.Int("threshold", product.LowStockThreshold))
	s.events.Publish(EventStock, "low_stock", product.ToResponse(), lowStockMessage(product))
}

func lowStockMessage(p *model.Product) string {
	return fmt.Sprintf("Low stock for %s (%d remaining)", p.Name, p.Quantity)
}

// productRef is the minimal identification of a product that no longer exists.
func productRef(p *model.Product) map[string]interface{} {
	return map[string]interface{}{"id": p.ID, "sku": p.SKU, "name": p.Name}
}
