package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/log"
	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/services"
	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/validate"
)

type InventoryHandler struct {
	Catalog *services.CatalogService
}

// Check reports availability for one product as JSON.
// GET /api/v1/availability?productId=3
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Query("productId"))
	if !ok {
		applog.Warn(c, "validation.fail", nil, map[string]any{"field": "productId", "value": c.Query("productId")})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid productId"})
	}
	a, err := h.Catalog.Availability(id)
	if err != nil {
		applog.Error(c, "availability.check", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "availability check failed"})
	}
	return c.JSON(a)
}
