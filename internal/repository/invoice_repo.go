package repository

import (
	"fabrisys-backend/internal/model"

	"gorm.io/gorm"
)

type InvoiceFilter struct {
	Status     model.InvoiceStatus
	SupplierID uint
}

type InvoiceRepository interface {
	Create(tx *gorm.DB, invoice *model.Invoice) error
	FindAll(filter InvoiceFilter) ([]model.Invoice, error)
	FindByID(id uint) (*model.Invoice, error)
	Save(tx *gorm.DB, invoice *model.Invoice) error
	Delete(tx *gorm.DB, id uint) error
}

type invoiceRepo struct {
	db *gorm.DB
}

func NewInvoiceRepo(db *gorm.DB) InvoiceRepository {
	return &invoiceRepo{db}
}

func (r *invoiceRepo) Create(tx *gorm.DB, invoice *model.Invoice) error {
	return tx.Create(invoice).Error
}

func (r *invoiceRepo) FindAll(filter InvoiceFilter) ([]model.Invoice, error) {
	var invoices []model.Invoice
	q := r.db.Preload("Supplier").Order("date DESC, id DESC")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.SupplierID != 0 {
		q = q.Where("supplier_id = ?", filter.SupplierID)
	}
	err := q.Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepo) FindByID(id uint) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := r.db.Preload("Supplier").First(&invoice, id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepo) Save(tx *gorm.DB, invoice *model.Invoice) error {
	return tx.Save(invoice).Error
}

func (r *invoiceRepo) Delete(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Invoice{}, id).Error
}
