package repository

import (
	"fabrisys-backend/internal/model"

	"gorm.io/gorm"
)

type VariantRepository interface {
	Create(tx *gorm.DB, variant *model.Variant) error
	FindByID(id uint) (*model.Variant, error)
	FindByItem(itemID uint) ([]model.Variant, error)
	FindByWarehouse(warehouseID uint) ([]model.Variant, error)
	Save(tx *gorm.DB, variant *model.Variant) error
	Delete(tx *gorm.DB, id uint) error
	DeleteByItem(tx *gorm.DB, itemID uint) error
	UpdateWarehouseByItem(tx *gorm.DB, itemID, warehouseID uint) error
}

type variantRepo struct {
	db *gorm.DB
}

func NewVariantRepo(db *gorm.DB) VariantRepository {
	return &variantRepo{db}
}

func (r *variantRepo) Create(tx *gorm.DB, variant *model.Variant) error {
	return tx.Create(variant).Error
}

func (r *variantRepo) FindByID(id uint) (*model.Variant, error) {
	var variant model.Variant
	if err := r.db.First(&variant, id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *variantRepo) FindByItem(itemID uint) ([]model.Variant, error) {
	var variants []model.Variant
	err := r.db.Where("item_id = ?", itemID).Order("id").Find(&variants).Error
	return variants, err
}

func (r *variantRepo) FindByWarehouse(warehouseID uint) ([]model.Variant, error) {
	var variants []model.Variant
	err := r.db.Where("warehouse_id = ?", warehouseID).Order("id").Find(&variants).Error
	return variants, err
}

func (r *variantRepo) Save(tx *gorm.DB, variant *model.Variant) error {
	return tx.Save(variant).Error
}

func (r *variantRepo) Delete(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Variant{}, id).Error
}

func (r *variantRepo) DeleteByItem(tx *gorm.DB, itemID uint) error {
	return tx.Where("item_id = ?", itemID).Delete(&model.Variant{}).Error
}

// UpdateWarehouseByItem re-homes all of an item's variants. Must run in
// the same transaction as the item's own warehouse change.
func (r *variantRepo) UpdateWarehouseByItem(tx *gorm.DB, itemID, warehouseID uint) error {
	return tx.Model(&model.Variant{}).Where("item_id = ?", itemID).Update("warehouse_id", warehouseID).Error
}
