package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-bizmanager/internal/model"
	"go-bizmanager/internal/repository"
	"go-bizmanager/internal/sequence"
	"go-bizmanager/pkg/apperror"
	"go-bizmanager/pkg/validator"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest, actor model.Principal) (*model.Order, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, actor model.Principal) (*model.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus, actor model.Principal) (*model.Order, error)
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"gte=1"`
}

type CreateOrderRequest struct {
	Customer      model.Customer      `json:"customer"`
	Items         []OrderItemRequest  `json:"items" validate:"required,min=1,dive"`
	PaymentMethod model.PaymentMethod `json:"payment_method" validate:"required"`
	Notes         string              `json:"notes"`
}

type orderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	sequencer    sequence.Sequencer
	db           *gorm.DB
	events       Broadcaster
	now          func() time.Time
}

func NewOrderService(
	oRepo repository.OrderRepository,
	pRepo repository.ProductRepository,
	mRepo repository.StockMovementRepository,
	seq sequence.Sequencer,
	db *gorm.DB,
	events Broadcaster,
) OrderService {
	if seq == nil {
		seq = sequence.NewGormSequencer()
	}
	return &orderService{
		orderRepo:    oRepo,
		productRepo:  pRepo,
		movementRepo: mRepo,
		sequencer:    seq,
		db:           db,
		events:       broadcasterOrNop(events),
		now:          time.Now,
	}
}

type stockChange struct {
	before  int
	product model.Product
}

// CreateOrder reserves stock for every item and records the order in a
// single transaction. If any item fails, no quantity is changed and no order
// or invoice number is persisted.
func (s *orderService) CreateOrder(ctx context.Context, req *CreateOrderRequest, actor model.Principal) (*model.Order, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if !req.PaymentMethod.Valid() {
		return nil, apperror.Validation("Invalid payment method: %s", req.PaymentMethod)
	}

	now := s.now()
	order := &model.Order{
		Customer:      req.Customer,
		Status:        model.OrderPending,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: model.PaymentPending,
		Notes:         strings.TrimSpace(req.Notes),
	}
	order.ID = uuid.New()
	order.CreatedBy = actor.Actor()
	order.UpdatedBy = actor.Actor()

	changes := make(map[uuid.UUID]*stockChange)
	var touched []uuid.UUID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Items {
			product, err := s.productRepo.DecrementQuantity(tx, item.ProductID, item.Quantity, actor.Actor())
			if err != nil {
				return notFound(err, fmt.Sprintf("Product %s", item.ProductID))
			}

			order.Items = append(order.Items, model.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     product.Price,
			})

			movement := &model.StockMovement{
				ProductID: product.ID,
				Type:      model.MovementOut,
				Quantity:  item.Quantity,
				Reason:    model.ReasonOrder,
				OrderID:   &order.ID,
			}
			movement.CreatedBy = actor.Actor()
			movement.UpdatedBy = actor.Actor()
			if err := s.movementRepo.Create(tx, movement); err != nil {
				return fmt.Errorf("failed to record stock movement: %w", err)
			}

			if c, ok := changes[product.ID]; ok {
				c.product = *product
			} else {
				changes[product.ID] = &stockChange{before: product.Quantity + item.Quantity, product: *product}
				touched = append(touched, product.ID)
			}
		}

		order.TotalAmount = order.CalculateTotal()

		seq, err := s.sequencer.Next(ctx, tx, sequence.Period(now))
		if err != nil {
			return err
		}
		order.InvoiceNumber = sequence.InvoiceNumber(now, seq)

		return s.orderRepo.Create(tx, order)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("order created",
		zap.String("invoice_number", order.InvoiceNumber),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.TotalAmount.StringFixed(2)))

	created, err := s.orderRepo.FindByID(order.ID)
	if err != nil {
		created = order
	}

	s.events.Publish(EventOrder, "order_created", created,
		fmt.Sprintf("%s created order %s", actor.Name, created.InvoiceNumber))

	for _, id := range touched {
		c := changes[id]
		if c.product.IsLowStock() && c.before > c.product.LowStockThreshold {
			s.events.Publish(EventStock, "low_stock", c.product.ToResponse(), lowStockMessage(&c.product))
		}
	}

	return created, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, "Order")
	}
	return order, nil
}

// UpdateStatus changes the lifecycle status. Stock is not touched, including
// on cancellation.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, actor model.Principal) (*model.Order, error) {
	if status == "" {
		return nil, apperror.Validation("Status is required")
	}
	if !status.Valid() {
		return nil, apperror.Validation("Invalid order status: %s", status)
	}

	if err := s.orderRepo.UpdateStatus(id, status, actor.Actor()); err != nil {
		return nil, notFound(err, "Order")
	}
	return s.reloadAndPublish(id, "order_status_updated", fmt.Sprintf("%s set order status to %s", actor.Name, status))
}

func (s *orderService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus, actor model.Principal) (*model.Order, error) {
	if status == "" {
		return nil, apperror.Validation("Payment status is required")
	}
	if !status.Valid() {
		return nil, apperror.Validation("Invalid payment status: %s", status)
	}

	if err := s.orderRepo.UpdatePaymentStatus(id, status, actor.Actor()); err != nil {
		return nil, notFound(err, "Order")
	}
	return s.reloadAndPublish(id, "payment_status_updated", fmt.Sprintf("%s set payment status to %s", actor.Name, status))
}

func (s *orderService) reloadAndPublish(id uuid.UUID, action, message string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, "Order")
	}
	s.events.Publish(EventOrder, action, order, message)
	return order, nil
}
