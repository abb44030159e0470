package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	// InvoicePaid and InvoiceCancelled are terminal.
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceCredit    InvoiceStatus = "credit"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoicePaid, InvoiceCredit, InvoiceCancelled:
		return true
	}
	return false
}

// Invoice tracks a supplier invoice and its payment state. Invariant:
// 0 <= PaidAmount <= Amount, and Status is paid exactly when
// PaidAmount reaches Amount.
type Invoice struct {
	BaseModel
	InvoiceNumber string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"invoice_number" validate:"required"`
	SupplierID    uint      `gorm:"index;not null" json:"supplier_id" validate:"required"`
	Supplier      *Supplier `json:"supplier,omitempty"`

	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"paid_amount"`
	PaymentMethod string          `gorm:"type:varchar(50)" json:"payment_method"`
	Status        InvoiceStatus   `gorm:"type:varchar(20);index" json:"status" validate:"required"`

	Date     time.Time  `gorm:"index;not null" json:"date"`
	DueDate  *time.Time `json:"due_date,omitempty"`  // required when created as credit
	PaidDate *time.Time `json:"paid_date,omitempty"` // stamped on full payment

	Notes string `json:"notes,omitempty"`
}

// Remaining returns the open balance.
func (inv *Invoice) Remaining() decimal.Decimal {
	return inv.Amount.Sub(inv.PaidAmount)
}
