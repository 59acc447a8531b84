package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-bizmanager/internal/middleware"
	"go-bizmanager/internal/model"
	"go-bizmanager/internal/service"
)

type OrderHandler struct {
	orders   service.OrderService
	invoices service.InvoiceService
}

func NewOrderHandler(orders service.OrderService, invoices service.InvoiceService) *OrderHandler {
	return &OrderHandler{orders: orders, invoices: invoices}
}

func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req service.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	order, err := h.orders.CreateOrder(c.UserContext(), &req, middleware.PrincipalFrom(c))
	if err != nil {
		return err
	}

	return c.Status(201).JSON(fiber.Map{"message": "Order created", "data": order})
}

func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListOrders(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := parseID(c, "order")
	if err != nil {
		return err
	}

	order, err := h.orders.GetOrder(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(order)
}

// UpdateStatus PATCH /api/orders/:id/status {"status": "..."}
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "order")
	if err != nil {
		return err
	}

	var req struct {
		Status model.OrderStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	order, err := h.orders.UpdateStatus(c.UserContext(), id, req.Status, middleware.PrincipalFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Order status updated", "data": order})
}

// UpdatePaymentStatus PATCH /api/orders/:id/payment {"payment_status": "..."}
func (h *OrderHandler) UpdatePaymentStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "order")
	if err != nil {
		return err
	}

	var req struct {
		PaymentStatus model.PaymentStatus `json:"payment_status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	order, err := h.orders.UpdatePaymentStatus(c.UserContext(), id, req.PaymentStatus, middleware.PrincipalFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Payment status updated", "data": order})
}

// GenerateInvoice renders and stores the invoice
// GET /api/orders/:id/invoice
func (h *OrderHandler) GenerateInvoice(c *fiber.Ctx) error {
	id, err := parseID(c, "order")
	if err != nil {
		return err
	}

	info, err := h.invoices.Generate(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Invoice generated", "data": info})
}

// DownloadInvoice streams a previously generated invoice
// GET /api/orders/:id/invoice/download
func (h *OrderHandler) DownloadInvoice(c *fiber.Ctx) error {
	id, err := parseID(c, "order")
	if err != nil {
		return err
	}

	file, err := h.invoices.Download(c.UserContext(), id)
	if err != nil {
		return err
	}

	c.Attachment(file.FileName)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(file.Content)
}
