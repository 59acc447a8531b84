package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-bizmanager/internal/middleware"
	"go-bizmanager/internal/model"
)

// Handlers groups every HTTP handler the API exposes.
type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Employee  *EmployeeHandler
	Product   *ProductHandler
	Order     *OrderHandler
	Dashboard *DashboardHandler
}

// RegisterRoutes mounts the REST API under /api. requireAuth guards every
// route that is not explicitly public.
func RegisterRoutes(app *fiber.App, h Handlers, requireAuth fiber.Handler) {
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)

	api.Get("/public/dashboard", h.Dashboard.GetPublicStats)

	// ============ PROTECTED ROUTES ============
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	users := api.Group("/users", requireAuth)
	users.Get("/me", h.Auth.Me)
	users.Get("/", adminOnly, h.User.GetUsers)
	users.Get("/:id", adminOnly, h.User.GetUser)
	users.Post("/", adminOnly, h.User.CreateUser)
	users.Put("/:id", adminOnly, h.User.UpdateUser)
	users.Delete("/:id", adminOnly, h.User.DeleteUser)

	employees := api.Group("/employees", requireAuth)
	employees.Get("/", h.Employee.GetEmployees)
	employees.Get("/search", h.Employee.SearchEmployees)
	employees.Get("/:id", h.Employee.GetEmployee)
	employees.Post("/", adminOnly, h.Employee.CreateEmployee)
	employees.Put("/:id", adminOnly, h.Employee.UpdateEmployee)
	employees.Delete("/:id", adminOnly, h.Employee.DeleteEmployee)

	products := api.Group("/products", requireAuth)
	products.Get("/", h.Product.GetProducts)
	products.Get("/search", h.Product.SearchProducts)
	products.Get("/low-stock", h.Product.GetLowStock)
	products.Get("/:id", h.Product.GetProduct)
	products.Post("/", adminOnly, h.Product.CreateProduct)
	products.Put("/:id", adminOnly, h.Product.UpdateProduct)
	products.Delete("/:id", adminOnly, h.Product.DeleteProduct)
	products.Patch("/:id/quantity", h.Product.UpdateQuantity)

	orders := api.Group("/orders", requireAuth)
	orders.Get("/", h.Order.GetOrders)
	orders.Post("/", h.Order.CreateOrder)
	orders.Get("/:id", h.Order.GetOrder)
	orders.Patch("/:id/status", h.Order.UpdateStatus)
	orders.Patch("/:id/payment", h.Order.UpdatePaymentStatus)
	orders.Get("/:id/invoice", h.Order.GenerateInvoice)
	orders.Get("/:id/invoice/download", h.Order.DownloadInvoice)

	api.Get("/dashboard/stock-movement", requireAuth, h.Dashboard.GetStockMovement)
}
