package handler

import (
	"fabrisys-backend/internal/model"
	"fabrisys-backend/internal/repository"
	"fabrisys-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type InvoiceHandler struct {
	service service.InvoiceService
}

func NewInvoiceHandler(s service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: s}
}

func (h *InvoiceHandler) GetInvoices(c *fiber.Ctx) error {
	filter := repository.InvoiceFilter{
		Status:     model.InvoiceStatus(c.Query("status")),
		SupplierID: uint(c.QueryInt("supplier_id")),
	}
	invoices, err := h.service.ListInvoices(filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(invoices)
}

func (h *InvoiceHandler) GetInvoice(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	invoice, err := h.service.GetInvoice(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(invoice)
}

func (h *InvoiceHandler) CreateInvoice(c *fiber.Ctx) error {
	var invoice model.Invoice
	if err := c.BodyParser(&invoice); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.service.CreateInvoice(c.UserContext(), &invoice); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Invoice created", "data": invoice})
}

func (h *InvoiceHandler) AddPayment(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var body struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	updated, err := h.service.AddPayment(c.UserContext(), id, body.Amount)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Payment recorded", "data": updated})
}

func (h *InvoiceHandler) CancelInvoice(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.CancelInvoice(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Invoice cancelled"})
}

func (h *InvoiceHandler) DeleteInvoice(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteInvoice(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Invoice deleted"})
}
