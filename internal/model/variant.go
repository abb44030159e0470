package model

// Variant is a concrete stock batch/roll under an Item. WarehouseID is
// denormalized from the parent item for fast cross-item filtering.
type Variant struct {
	BaseModel
	ItemID      uint `gorm:"index;not null" json:"item_id" validate:"required"`
	WarehouseID uint `gorm:"index" json:"warehouse_id"`

	Quantity int     `json:"quantity" validate:"gte=0"`
	Price    float64 `json:"price"`

	CategoryAttrs `gorm:"embedded"`
}
