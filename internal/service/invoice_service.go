package service

import (
	"context"
	"errors"
	"time"

	"fabrisys-backend/internal/apperr"
	"fabrisys-backend/internal/model"
	"fabrisys-backend/internal/repository"
	"fabrisys-backend/internal/store"
	"fabrisys-backend/pkg/validator"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceService interface {
	CreateInvoice(ctx context.Context, req *model.Invoice) error
	AddPayment(ctx context.Context, invoiceID uint, amount decimal.Decimal) (*model.Invoice, error)
	CancelInvoice(ctx context.Context, invoiceID uint) error
	DeleteInvoice(ctx context.Context, invoiceID uint) error
	GetInvoice(id uint) (*model.Invoice, error)
	ListInvoices(filter repository.InvoiceFilter) ([]model.Invoice, error)
}

type invoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	supplierRepo repository.SupplierRepository
	store        *store.Store
}

func NewInvoiceService(iRepo repository.InvoiceRepository, sRepo repository.SupplierRepository, st *store.Store) InvoiceService {
	return &invoiceService{invoiceRepo: iRepo, supplierRepo: sRepo, store: st}
}

// CreateInvoice enforces the creation contract: a positive amount, a
// due date on credit invoices, and an initial PaidAmount that never
// exceeds Amount. Invoices created as paid start fully settled.
func (s *invoiceService) CreateInvoice(ctx context.Context, req *model.Invoice) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	if !req.Status.Valid() {
		return apperr.Validation("invalid invoice status '%s'", req.Status)
	}
	if !req.Amount.IsPositive() {
		return apperr.Validation("invoice amount must be positive")
	}
	if req.PaidAmount.IsNegative() {
		return apperr.Validation("paid amount must not be negative")
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	switch req.Status {
	case model.InvoiceCredit:
		if req.DueDate == nil {
			return apperr.Validation("due date is required for credit invoices")
		}
		// A credit invoice with nothing left to pay could never be
		// settled through AddPayment; it must be created as paid.
		if req.PaidAmount.GreaterThanOrEqual(req.Amount) {
			return apperr.Validation("paid amount must be below invoice amount for credit invoices")
		}
	case model.InvoicePaid:
		req.PaidAmount = req.Amount
		now := time.Now()
		req.PaidDate = &now
	case model.InvoiceCancelled:
		req.PaidAmount = decimal.Zero
	}

	if _, err := s.supplierRepo.FindByID(req.SupplierID); err != nil {
		return wrapLookup(err, "supplier %d not found", req.SupplierID)
	}

	return s.store.Write(ctx, func(tx *gorm.DB) error {
		if err := s.invoiceRepo.Create(tx, req); err != nil {
			return apperr.Transaction(err)
		}
		return nil
	})
}

// AddPayment accumulates a partial payment. It is the only path that
// can move an invoice to paid after creation: once PaidAmount reaches
// Amount the status flips and PaidDate is stamped.
func (s *invoiceService) AddPayment(ctx context.Context, invoiceID uint, amount decimal.Decimal) (*model.Invoice, error) {
	if !amount.IsPositive() {
		return nil, apperr.Validation("payment amount must be positive")
	}

	var updated *model.Invoice
	err := s.store.Write(ctx, func(tx *gorm.DB) error {
		var invoice model.Invoice
		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			return wrapLookup(err, "invoice %d not found", invoiceID)
		}

		if invoice.Status == model.InvoiceCancelled {
			return apperr.Validation("invoice %s is cancelled", invoice.InvoiceNumber)
		}
		if amount.GreaterThan(invoice.Remaining()) {
			return apperr.Validation("payment exceeds remaining balance of %s", invoice.Remaining().StringFixed(2))
		}

		invoice.PaidAmount = invoice.PaidAmount.Add(amount)
		if invoice.PaidAmount.GreaterThanOrEqual(invoice.Amount) {
			invoice.Status = model.InvoicePaid
			now := time.Now()
			invoice.PaidDate = &now
		}

		if err := s.invoiceRepo.Save(tx, &invoice); err != nil {
			return apperr.Transaction(err)
		}
		updated = &invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CancelInvoice moves an open credit invoice to the cancelled terminal
// state. Paid and cancelled invoices are immutable.
func (s *invoiceService) CancelInvoice(ctx context.Context, invoiceID uint) error {
	return s.store.Write(ctx, func(tx *gorm.DB) error {
		var invoice model.Invoice
		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			return wrapLookup(err, "invoice %d not found", invoiceID)
		}
		if invoice.Status != model.InvoiceCredit {
			return apperr.Validation("only credit invoices can be cancelled")
		}
		invoice.Status = model.InvoiceCancelled
		if err := s.invoiceRepo.Save(tx, &invoice); err != nil {
			return apperr.Transaction(err)
		}
		return nil
	})
}

// DeleteInvoice is unconditional; nothing else references invoices.
func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID uint) error {
	return s.store.Write(ctx, func(tx *gorm.DB) error {
		var invoice model.Invoice
		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			return wrapLookup(err, "invoice %d not found", invoiceID)
		}
		if err := s.invoiceRepo.Delete(tx, invoiceID); err != nil {
			return apperr.Transaction(err)
		}
		return nil
	})
}

func (s *invoiceService) GetInvoice(id uint) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("invoice %d not found", id)
		}
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) ListInvoices(filter repository.InvoiceFilter) ([]model.Invoice, error) {
	return s.invoiceRepo.FindAll(filter)
}
