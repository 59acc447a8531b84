package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"go-bizmanager/internal/service"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStockMovement returns stock movement data for charts
// Query params: days (default 7)
func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}

	data, err := h.service.GetStockMovement(days)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"period": len(data),
		"data":   data,
	})
}

// GetPublicStats returns the unauthenticated overview
// GET /api/public/dashboard
func (h *DashboardHandler) GetPublicStats(c *fiber.Ctx) error {
	stats, err := h.service.GetPublicStats()
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
