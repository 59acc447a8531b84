package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-bizmanager/internal/middleware"
	"go-bizmanager/internal/service"
)

type EmployeeHandler struct {
	service service.EmployeeService
}

func NewEmployeeHandler(s service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: s}
}

func (h *EmployeeHandler) GetEmployees(c *fiber.Ctx) error {
	employees, err := h.service.GetAllEmployees()
	if err != nil {
		return err
	}
	return c.JSON(employees)
}

// SearchEmployees matches name, email, position and department
// GET /api/employees/search?query=
func (h *EmployeeHandler) SearchEmployees(c *fiber.Ctx) error {
	employees, err := h.service.SearchEmployees(c.Query("query"))
	if err != nil {
		return err
	}
	return c.JSON(employees)
}

func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := parseID(c, "employee")
	if err != nil {
		return err
	}

	employee, err := h.service.GetEmployee(id)
	if err != nil {
		return err
	}
	return c.JSON(employee)
}

func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var req service.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	employee, err := h.service.CreateEmployee(&req, middleware.PrincipalFrom(c))
	if err != nil {
		return err
	}

	return c.Status(201).JSON(fiber.Map{"message": "Employee created", "data": employee})
}

func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := parseID(c, "employee")
	if err != nil {
		return err
	}

	var req service.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	employee, err := h.service.UpdateEmployee(id, &req, middleware.PrincipalFrom(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Employee updated", "data": employee})
}

func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := parseID(c, "employee")
	if err != nil {
		return err
	}

	if err := h.service.DeleteEmployee(id, middleware.PrincipalFrom(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Employee deleted"})
}
