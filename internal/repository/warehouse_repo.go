package repository

import (
	"fabrisys-backend/internal/model"

	"gorm.io/gorm"
)

type WarehouseFilter struct {
	IncludeInactive bool
	Category        string
}

type WarehouseRepository interface {
	Create(tx *gorm.DB, warehouse *model.Warehouse) error
	FindAll(filter WarehouseFilter) ([]model.Warehouse, error)
	FindByID(id uint) (*model.Warehouse, error)
	FindByCode(code string) (*model.Warehouse, error)
	Save(tx *gorm.DB, warehouse *model.Warehouse) error
	SetActive(tx *gorm.DB, id uint, active bool) error
}

type warehouseRepo struct {
	db *gorm.DB
}

func NewWarehouseRepo(db *gorm.DB) WarehouseRepository {
	return &warehouseRepo{db}
}

func (r *warehouseRepo) Create(tx *gorm.DB, warehouse *model.Warehouse) error {
	return tx.Create(warehouse).Error
}

func (r *warehouseRepo) FindAll(filter WarehouseFilter) ([]model.Warehouse, error) {
	var warehouses []model.Warehouse
	q := r.db.Order("id")
	if !filter.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&warehouses).Error; err != nil {
		return nil, err
	}
	// Category containment lives on a JSON column, filter here.
	if filter.Category != "" {
		filtered := warehouses[:0]
		for _, w := range warehouses {
			if w.SupportsCategory(filter.Category) {
				filtered = append(filtered, w)
			}
		}
		warehouses = filtered
	}
	return warehouses, nil
}

func (r *warehouseRepo) FindByID(id uint) (*model.Warehouse, error) {
	var warehouse model.Warehouse
	if err := r.db.First(&warehouse, id).Error; err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *warehouseRepo) FindByCode(code string) (*model.Warehouse, error) {
	var warehouse model.Warehouse
	if err := r.db.First(&warehouse, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *warehouseRepo) Save(tx *gorm.DB, warehouse *model.Warehouse) error {
	return tx.Save(warehouse).Error
}

func (r *warehouseRepo) SetActive(tx *gorm.DB, id uint, active bool) error {
	return tx.Model(&model.Warehouse{}).Where("id = ?", id).Update("is_active", active).Error
}
