package model

import "gorm.io/datatypes"

type SupplierStatus string

const (
	SupplierActive   SupplierStatus = "active"
	SupplierInactive SupplierStatus = "inactive"
	SupplierBlocked  SupplierStatus = "blocked"
)

func (s SupplierStatus) Valid() bool {
	switch s {
	case SupplierActive, SupplierInactive, SupplierBlocked:
		return true
	}
	return false
}

type Supplier struct {
	BaseModel
	Name          string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	ContactPerson string `gorm:"type:varchar(255)" json:"contact_person,omitempty"`
	Phone         string `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Email         string `gorm:"type:varchar(255)" json:"email,omitempty" validate:"omitempty,email"`
	Address       string `gorm:"type:varchar(255)" json:"address,omitempty"`

	Status           SupplierStatus              `gorm:"type:varchar(20);index;default:'active'" json:"status"`
	SupplyCategories datatypes.JSONSlice[string] `json:"supply_categories" validate:"required,min=1"`

	TaxID            string                      `gorm:"type:varchar(100)" json:"tax_id,omitempty"`
	CommercialRecord string                      `gorm:"type:varchar(100)" json:"commercial_record,omitempty"`
	PaymentMethods   datatypes.JSONSlice[string] `json:"payment_methods,omitempty"`
}

// Supplies reports whether the supplier covers the given category.
func (s *Supplier) Supplies(category string) bool {
	for _, c := range s.SupplyCategories {
		if c == category {
			return true
		}
	}
	return false
}
