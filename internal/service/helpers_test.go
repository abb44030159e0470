package service

import (
	"context"
	"testing"
	"time"

	"fabrisys-backend/internal/livequery"
	"fabrisys-backend/internal/model"
	"fabrisys-backend/internal/repository"
	"fabrisys-backend/internal/store"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db     *gorm.DB
	store  *store.Store
	engine *livequery.Engine

	warehouses WarehouseService
	inventory  InventoryService
	suppliers  SupplierService
	invoices   InvoiceService
	users      UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database shared across
	// all statements.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Warehouse{},
		&model.Item{},
		&model.Variant{},
		&model.Supplier{},
		&model.Invoice{},
		&model.User{},
	))

	engine := livequery.NewEngine(db)
	st, err := store.Open(db, engine)
	require.NoError(t, err)

	warehouseRepo := repository.NewWarehouseRepo(db)
	itemRepo := repository.NewItemRepo(db)
	variantRepo := repository.NewVariantRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	invoiceRepo := repository.NewInvoiceRepo(db)
	userRepo := repository.NewUserRepo(db)

	return &testEnv{
		db:         db,
		store:      st,
		engine:     engine,
		warehouses: NewWarehouseService(warehouseRepo, st),
		inventory:  NewInventoryService(itemRepo, variantRepo, warehouseRepo, st),
		suppliers:  NewSupplierService(supplierRepo, st),
		invoices:   NewInvoiceService(invoiceRepo, supplierRepo, st),
		users:      NewUserService(userRepo, st),
	}
}

func (e *testEnv) createWarehouse(t *testing.T, name, code string, categories ...string) *model.Warehouse {
	t.Helper()
	warehouse := &model.Warehouse{
		Name:       name,
		Code:       code,
		Location:   "Cairo",
		Categories: datatypes.JSONSlice[string](categories),
	}
	require.NoError(t, e.warehouses.CreateWarehouse(context.Background(), warehouse))
	return warehouse
}

func (e *testEnv) createItem(t *testing.T, warehouseID uint, sku, category string, minQuantity int) *model.Item {
	t.Helper()
	item := &model.Item{
		WarehouseID: warehouseID,
		Name:        "Item " + sku,
		SKU:         sku,
		Category:    category,
		MinQuantity: minQuantity,
		Unit:        "meter",
	}
	require.NoError(t, e.inventory.CreateItem(context.Background(), item))
	return item
}

func (e *testEnv) createSupplier(t *testing.T, name string, categories ...string) *model.Supplier {
	t.Helper()
	supplier := &model.Supplier{
		Name:             name,
		Phone:            "0100000000",
		Status:           model.SupplierActive,
		SupplyCategories: datatypes.JSONSlice[string](categories),
	}
	require.NoError(t, e.suppliers.CreateSupplier(context.Background(), supplier))
	return supplier
}

func daysFromNow(n int) *time.Time {
	d := time.Now().AddDate(0, 0, n)
	return &d
}
