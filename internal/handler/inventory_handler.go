package handler

import (
	"fabrisys-backend/internal/model"
	"fabrisys-backend/internal/repository"
	"fabrisys-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func (h *InventoryHandler) GetItems(c *fiber.Ctx) error {
	filter := repository.ItemFilter{
		Category:     c.Query("category"),
		LowStockOnly: c.QueryBool("low_stock"),
	}
	items, err := h.service.ListItems(uint(c.QueryInt("warehouse_id")), filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.service.GetItem(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(item)
}

func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	items, err := h.service.ListLowStock()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var item model.Item
	if err := c.BodyParser(&item); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.service.CreateItem(c.UserContext(), &item); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Item created", "data": item})
}

func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var item model.Item
	if err := c.BodyParser(&item); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	updated, err := h.service.UpdateItem(c.UserContext(), id, &item)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item updated", "data": updated})
}

func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteItem(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted"})
}

func (h *InventoryHandler) GetVariants(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	variants, err := h.service.ListVariants(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(variants)
}

func (h *InventoryHandler) AddVariant(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var variant model.Variant
	if err := c.BodyParser(&variant); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.service.AddVariant(c.UserContext(), id, &variant); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Stock added", "data": variant})
}

func (h *InventoryHandler) UpdateVariant(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var variant model.Variant
	if err := c.BodyParser(&variant); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	updated, err := h.service.UpdateVariant(c.UserContext(), id, &variant)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Variant updated", "data": updated})
}

func (h *InventoryHandler) DeleteVariant(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteVariant(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Variant deleted"})
}
