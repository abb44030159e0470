package repository

import (
	"fabrisys-backend/internal/model"

	"gorm.io/gorm"
)

type SupplierFilter struct {
	Status   model.SupplierStatus
	Category string
}

type SupplierRepository interface {
	Create(tx *gorm.DB, supplier *model.Supplier) error
	FindAll(filter SupplierFilter) ([]model.Supplier, error)
	FindByID(id uint) (*model.Supplier, error)
	Save(tx *gorm.DB, supplier *model.Supplier) error
	UpdateStatus(tx *gorm.DB, id uint, status model.SupplierStatus) error
	Delete(tx *gorm.DB, id uint) error
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db}
}

func (r *supplierRepo) Create(tx *gorm.DB, supplier *model.Supplier) error {
	return tx.Create(supplier).Error
}

func (r *supplierRepo) FindAll(filter SupplierFilter) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	q := r.db.Order("id")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if err := q.Find(&suppliers).Error; err != nil {
		return nil, err
	}
	if filter.Category != "" {
		filtered := suppliers[:0]
		for _, s := range suppliers {
			if s.Supplies(filter.Category) {
				filtered = append(filtered, s)
			}
		}
		suppliers = filtered
	}
	return suppliers, nil
}

func (r *supplierRepo) FindByID(id uint) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.First(&supplier, id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepo) Save(tx *gorm.DB, supplier *model.Supplier) error {
	return tx.Save(supplier).Error
}

// UpdateStatus touches only the status column so concurrent edits to
// other fields are never overwritten.
func (r *supplierRepo) UpdateStatus(tx *gorm.DB, id uint, status model.SupplierStatus) error {
	return tx.Model(&model.Supplier{}).Where("id = ?", id).Update("status", status).Error
}

func (r *supplierRepo) Delete(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Supplier{}, id).Error
}
