package repository

import (
	"fabrisys-backend/internal/model"

	"gorm.io/gorm"
)

type ItemFilter struct {
	Category     string
	LowStockOnly bool
}

type ItemRepository interface {
	Create(tx *gorm.DB, item *model.Item) error
	FindByID(id uint) (*model.Item, error)
	FindBySKU(sku string) (*model.Item, error)
	FindByWarehouse(warehouseID uint, filter ItemFilter) ([]model.Item, error)
	FindLowStock() ([]model.Item, error)
	Save(tx *gorm.DB, item *model.Item) error
	AdjustTotalQuantity(tx *gorm.DB, id uint, delta int) error
	Delete(tx *gorm.DB, id uint) error
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db}
}

func (r *itemRepo) Create(tx *gorm.DB, item *model.Item) error {
	return tx.Create(item).Error
}

func (r *itemRepo) FindByID(id uint) (*model.Item, error) {
	var item model.Item
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) FindBySKU(sku string) (*model.Item, error) {
	var item model.Item
	if err := r.db.First(&item, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) FindByWarehouse(warehouseID uint, filter ItemFilter) ([]model.Item, error) {
	var items []model.Item
	q := r.db.Order("id")
	if warehouseID != 0 {
		q = q.Where("warehouse_id = ?", warehouseID)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.LowStockOnly {
		q = q.Where("total_quantity <= min_quantity")
	}
	err := q.Find(&items).Error
	return items, err
}

func (r *itemRepo) FindLowStock() ([]model.Item, error) {
	var items []model.Item
	err := r.db.Where("total_quantity <= min_quantity").Order("id").Find(&items).Error
	return items, err
}

func (r *itemRepo) Save(tx *gorm.DB, item *model.Item) error {
	return tx.Save(item).Error
}

// AdjustTotalQuantity applies a delta to the derived stock total and
// bumps updated_at. Must run inside the same transaction as the
// variant write that caused the delta.
func (r *itemRepo) AdjustTotalQuantity(tx *gorm.DB, id uint, delta int) error {
	return tx.Model(&model.Item{}).
		Where("id = ?", id).
		Update("total_quantity", gorm.Expr("total_quantity + ?", delta)).Error
}

func (r *itemRepo) Delete(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Item{}, id).Error
}
