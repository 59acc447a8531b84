package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-bizmanager/internal/middleware"
	"go-bizmanager/internal/model"
	"go-bizmanager/internal/service"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	product, err := h.service.CreateProduct(&req, middleware.PrincipalFrom(c))
	if err != nil {
		return err
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product.ToResponse()})
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	productID, err := parseID(c, "product")
	if err != nil {
		return err
	}

	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	updated, err := h.service.UpdateProduct(productID, &req, middleware.PrincipalFrom(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": updated.ToResponse()})
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	productID, err := parseID(c, "product")
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(productID, middleware.PrincipalFrom(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return err
	}
	return c.JSON(model.ProductResponses(products))
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	productID, err := parseID(c, "product")
	if err != nil {
		return err
	}

	product, err := h.service.GetProduct(productID)
	if err != nil {
		return err
	}
	return c.JSON(product.ToResponse())
}

// SearchProducts GET /api/products/search?query=
func (h *ProductHandler) SearchProducts(c *fiber.Ctx) error {
	products, err := h.service.SearchProducts(c.Query("query"))
	if err != nil {
		return err
	}
	return c.JSON(model.ProductResponses(products))
}

func (h *ProductHandler) GetLowStock(c *fiber.Ctx) error {
	products, err := h.service.GetLowStockProducts()
	if err != nil {
		return err
	}
	return c.JSON(model.ProductResponses(products))
}

// UpdateQuantity sets the stock level
// PATCH /api/products/:id/quantity {"quantity": n}
func (h *ProductHandler) UpdateQuantity(c *fiber.Ctx) error {
	productID, err := parseID(c, "product")
	if err != nil {
		return err
	}

	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	out, err := h.service.UpdateQuantity(productID, req.Quantity, middleware.PrincipalFrom(c))
	if err != nil {
		return err
	}

	resp := fiber.Map{"message": "Quantity updated", "data": out.Product}
	if out.Alert != "" {
		resp["alert"] = out.Alert
	}
	return c.JSON(resp)
}
