package handler

import (
	"fabrisys-backend/internal/model"
	"fabrisys-backend/internal/repository"
	"fabrisys-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type WarehouseHandler struct {
	service service.WarehouseService
}

func NewWarehouseHandler(s service.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{service: s}
}

func (h *WarehouseHandler) GetWarehouses(c *fiber.Ctx) error {
	filter := repository.WarehouseFilter{
		IncludeInactive: c.QueryBool("include_inactive"),
		Category:        c.Query("category"),
	}
	warehouses, err := h.service.ListWarehouses(filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(warehouses)
}

func (h *WarehouseHandler) GetWarehouse(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	warehouse, err := h.service.GetWarehouse(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(warehouse)
}

func (h *WarehouseHandler) CreateWarehouse(c *fiber.Ctx) error {
	var warehouse model.Warehouse
	if err := c.BodyParser(&warehouse); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.service.CreateWarehouse(c.UserContext(), &warehouse); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Warehouse created", "data": warehouse})
}

func (h *WarehouseHandler) UpdateWarehouse(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var warehouse model.Warehouse
	if err := c.BodyParser(&warehouse); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	updated, err := h.service.UpdateWarehouse(c.UserContext(), id, &warehouse)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Warehouse updated", "data": updated})
}

func (h *WarehouseHandler) SetWarehouseActive(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var body struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.service.SetWarehouseActive(c.UserContext(), id, body.Active); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Warehouse status updated"})
}
