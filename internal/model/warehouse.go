package model

import "gorm.io/datatypes"

type Warehouse struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Code     string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required"`
	Location string `gorm:"type:varchar(255)" json:"location"`

	// Categories is fixed at creation and constrains which categories
	// the warehouse's items may use.
	Categories datatypes.JSONSlice[string] `json:"categories" validate:"required,min=1"`

	// Soft delete flag. Deactivated warehouses are hidden from default
	// listings but stay addressable by ID.
	IsActive bool `gorm:"default:true;index" json:"is_active"`
}

// SupportsCategory reports whether the warehouse accepts items of the
// given category.
func (w *Warehouse) SupportsCategory(category string) bool {
	for _, c := range w.Categories {
		if c == category {
			return true
		}
	}
	return false
}
