package handler

import (
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func (h *InventoryHandler) GetInventory(c *fiber.Ctx) error {
	rows, err := h.service.GetAllInventory()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	rows, err := h.service.GetLowStockInventory()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

func (h *InventoryHandler) GetByProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	inv, err := h.service.GetInventoryByProduct(productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var req model.AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	inv, err := h.service.AdjustStock(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock adjusted", "data": inv})
}

func (h *InventoryHandler) UpdateThreshold(c *fiber.Ctx) error {
	var req model.UpdateThresholdRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	inv, err := h.service.UpdateReorderThreshold(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Threshold updated", "data": inv})
}

func (h *InventoryHandler) AdjustOpeningStock(c *fiber.Ctx) error {
	var req model.AdjustOpeningStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	inv, err := h.service.AdjustOpeningStock(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Opening stock adjusted", "data": inv})
}
