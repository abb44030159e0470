package service

import (
	"context"
	"testing"

	"fabrisys-backend/internal/apperr"
	"fabrisys-backend/internal/model"
	"fabrisys-backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditInvoicePartialPaymentsAccumulate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	supplier := env.createSupplier(t, "Cotton Co", model.CategoryFabric)
	invoice := &model.Invoice{
		InvoiceNumber: "INV-001",
		SupplierID:    supplier.ID,
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: "cash",
		Status:        model.InvoiceCredit,
		DueDate:       daysFromNow(30),
	}
	require.NoError(t, env.invoices.CreateInvoice(ctx, invoice))

	updated, err := env.invoices.AddPayment(ctx, invoice.ID, decimal.NewFromInt(400))
	require.NoError(t, err)
	assert.True(t, updated.PaidAmount.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, model.InvoiceCredit, updated.Status)
	assert.Nil(t, updated.PaidDate)

	updated, err = env.invoices.AddPayment(ctx, invoice.ID, decimal.NewFromInt(600))
	require.NoError(t, err)
	assert.True(t, updated.PaidAmount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, model.InvoicePaid, updated.Status)
	assert.NotNil(t, updated.PaidDate)

	// Remaining balance is zero; any further payment must be rejected.
	_, err = env.invoices.AddPayment(ctx, invoice.ID, decimal.NewFromInt(1))
	assert.True(t, apperr.IsValidation(err))
}

// A credit invoice must start with an open balance: if it is already
// settled at creation it belongs under status paid, because AddPayment
// can never move a zero-remaining invoice to paid.
func TestCreditInvoiceRequiresOpenBalance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	supplier := env.createSupplier(t, "Cotton Co", model.CategoryFabric)

	err := env.invoices.CreateInvoice(ctx, &model.Invoice{
		InvoiceNumber: "INV-001",
		SupplierID:    supplier.ID,
		Amount:        decimal.NewFromInt(1000),
		PaidAmount:    decimal.NewFromInt(1000),
		PaymentMethod: "cash",
		Status:        model.InvoiceCredit,
		DueDate:       daysFromNow(30),
	})
	assert.True(t, apperr.IsValidation(err))

	err = env.invoices.CreateInvoice(ctx, &model.Invoice{
		InvoiceNumber: "INV-001",
		SupplierID:    supplier.ID,
		Amount:        decimal.NewFromInt(1000),
		PaidAmount:    decimal.NewFromInt(1200),
		PaymentMethod: "cash",
		Status:        model.InvoiceCredit,
		DueDate:       daysFromNow(30),
	})
	assert.True(t, apperr.IsValidation(err))

	var count int64
	require.NoError(t, env.db.Model(&model.Invoice{}).Count(&count).Error)
	assert.Zero(t, count)

	// A partial initial payment is fine and stays payable.
	invoice := &model.Invoice{
		InvoiceNumber: "INV-001",
		SupplierID:    supplier.ID,
		Amount:        decimal.NewFromInt(1000),
		PaidAmount:    decimal.NewFromInt(400),
		PaymentMethod: "cash",
		Status:        model.InvoiceCredit,
		DueDate:       daysFromNow(30),
	}
	require.NoError(t, env.invoices.CreateInvoice(ctx, invoice))

	updated, err := env.invoices.AddPayment(ctx, invoice.ID, decimal.NewFromInt(600))
	require.NoError(t, err)
	assert.Equal(t, model.InvoicePaid, updated.Status)
	assert.NotNil(t, updated.PaidDate)
}

func TestCreditInvoiceRequiresDueDate(t *testing.T) {
	env := newTestEnv(t)

	supplier := env.createSupplier(t, "Cotton Co", model.CategoryFabric)
	err := env.invoices.CreateInvoice(context.Background(), &model.Invoice{
		InvoiceNumber: "INV-001",
		SupplierID:    supplier.ID,
		Amount:        decimal.NewFromInt(500),
		PaymentMethod: "cash",
		Status:        model.InvoiceCredit,
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestInvoiceCreatedPaidStartsSettled(t *testing.T) {
	env := newTestEnv(t)

	supplier := env.createSupplier(t, "Cotton Co", model.CategoryFabric)
	invoice := &model.Invoice{
		InvoiceNumber: "INV-001",
		SupplierID:    supplier.ID,
		Amount:        decimal.NewFromInt(750),
		PaymentMethod: "transfer",
		Status:        model.InvoicePaid,
	}
	require.NoError(t, env.invoices.CreateInvoice(context.Background(), invoice))

	got, err := env.invoices.GetInvoice(invoice.ID)
	require.NoError(t, err)
	assert.True(t, got.PaidAmount.Equal(got.Amount))
	assert.NotNil(t, got.PaidDate)
	assert.True(t, got.Remaining().IsZero())
}

func TestAddPaymentRejectsNonPositiveAmount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	supplier := env.createSupplier(t, "Cotton Co", model.CategoryFabric)
	invoice := &model.Invoice{
		InvoiceNumber: "INV-001",
		SupplierID:    supplier.ID,
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "cash",
		Status:        model.InvoiceCredit,
		DueDate:       daysFromNow(14),
	}
	require.NoError(t, env.invoices.CreateInvoice(ctx, invoice))

	_, err := env.invoices.AddPayment(ctx, invoice.ID, decimal.Zero)
	assert.True(t, apperr.IsValidation(err))

	_, err = env.invoices.AddPayment(ctx, invoice.ID, decimal.NewFromInt(-5))
	assert.True(t, apperr.IsValidation(err))
}

func TestAddPaymentRejectsOverpayment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	supplier := env.createSupplier(t, "Cotton Co", model.CategoryFabric)
	invoice := &model.Invoice{
		InvoiceNumber: "INV-001",
		SupplierID:    supplier.ID,
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "cash",
		Status:        model.InvoiceCredit,
		DueDate:       daysFromNow(14),
	}
	require.NoError(t, env.invoices.CreateInvoice(ctx, invoice))

	_, err := env.invoices.AddPayment(ctx, invoice.ID, decimal.NewFromInt(101))
	assert.True(t, apperr.IsValidation(err))

	// Rejection left the invoice untouched.
	got, err := env.invoices.GetInvoice(invoice.ID)
	require.NoError(t, err)
	assert.True(t, got.PaidAmount.IsZero())
	assert.Equal(t, model.InvoiceCredit, got.Status)
}

func TestAddPaymentRejectsCancelledInvoice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	supplier := env.createSupplier(t, "Cotton Co", model.CategoryFabric)
	invoice := &model.Invoice{
		InvoiceNumber: "INV-001",
		SupplierID:    supplier.ID,
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "cash",
		Status:        model.InvoiceCredit,
		DueDate:       daysFromNow(14),
	}
	require.NoError(t, env.invoices.CreateInvoice(ctx, invoice))
	require.NoError(t, env.invoices.CancelInvoice(ctx, invoice.ID))

	_, err := env.invoices.AddPayment(ctx, invoice.ID, decimal.NewFromInt(50))
	assert.True(t, apperr.IsValidation(err))
}

func TestCancelOnlyFromCredit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	supplier := env.createSupplier(t, "Cotton Co", model.CategoryFabric)
	invoice := &model.Invoice{
		InvoiceNumber: "INV-001",
		SupplierID:    supplier.ID,
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "cash",
		Status:        model.InvoicePaid,
	}
	require.NoError(t, env.invoices.CreateInvoice(ctx, invoice))

	err := env.invoices.CancelInvoice(ctx, invoice.ID)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateInvoiceUnknownSupplier(t *testing.T) {
	env := newTestEnv(t)

	err := env.invoices.CreateInvoice(context.Background(), &model.Invoice{
		InvoiceNumber: "INV-001",
		SupplierID:    999,
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "cash",
		Status:        model.InvoicePaid,
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestListInvoicesFilterByStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	supplier := env.createSupplier(t, "Cotton Co", model.CategoryFabric)
	require.NoError(t, env.invoices.CreateInvoice(ctx, &model.Invoice{
		InvoiceNumber: "INV-001",
		SupplierID:    supplier.ID,
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "cash",
		Status:        model.InvoicePaid,
	}))
	require.NoError(t, env.invoices.CreateInvoice(ctx, &model.Invoice{
		InvoiceNumber: "INV-002",
		SupplierID:    supplier.ID,
		Amount:        decimal.NewFromInt(200),
		PaymentMethod: "cash",
		Status:        model.InvoiceCredit,
		DueDate:       daysFromNow(30),
	}))

	credit, err := env.invoices.ListInvoices(repository.InvoiceFilter{Status: model.InvoiceCredit})
	require.NoError(t, err)
	require.Len(t, credit, 1)
	assert.Equal(t, "INV-002", credit[0].InvoiceNumber)
	require.NotNil(t, credit[0].Supplier)
	assert.Equal(t, "Cotton Co", credit[0].Supplier.Name)
}

func TestDeleteInvoiceIsUnconditional(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	supplier := env.createSupplier(t, "Cotton Co", model.CategoryFabric)
	invoice := &model.Invoice{
		InvoiceNumber: "INV-001",
		SupplierID:    supplier.ID,
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "cash",
		Status:        model.InvoiceCredit,
		DueDate:       daysFromNow(30),
	}
	require.NoError(t, env.invoices.CreateInvoice(ctx, invoice))
	require.NoError(t, env.invoices.DeleteInvoice(ctx, invoice.ID))

	_, err := env.invoices.GetInvoice(invoice.ID)
	assert.True(t, apperr.IsNotFound(err))

	// The supplier is unaffected.
	_, err = env.suppliers.GetSupplier(supplier.ID)
	assert.NoError(t, err)
}
