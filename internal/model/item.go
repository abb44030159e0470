package model

// Known category tags. Adding a category needs no migration: the
// attribute columns are all optional and shared across categories.
const (
	CategoryFabric      = "fabric"
	CategoryAccessories = "accessories"
)

// CategoryAttrs is the flat optional-attribute bag shared by Item and
// Variant. Which fields are meaningful depends on the category tag;
// the store accepts any combination (validation is the caller's
// contract).
type CategoryAttrs struct {
	// Fabric
	FabricType string  `gorm:"type:varchar(100)" json:"fabric_type,omitempty"`
	Color      string  `gorm:"type:varchar(100)" json:"color,omitempty"`
	Width      float64 `json:"width,omitempty"`
	Weight     float64 `json:"weight,omitempty"` // gsm

	// Accessories
	AccessoryType string `gorm:"type:varchar(100)" json:"accessory_type,omitempty"`
	Size          string `gorm:"type:varchar(50)" json:"size,omitempty"`
	Material      string `gorm:"type:varchar(100)" json:"material,omitempty"`
}

type StockStatus string

const (
	StockOK  StockStatus = "in_stock"
	StockLow StockStatus = "low_stock"
	StockOut StockStatus = "out_of_stock"
)

// Item is a parent product. Its TotalQuantity is a maintained cache of
// the sum of its variants' quantities, recomputed transactionally on
// every variant write.
type Item struct {
	BaseModel
	WarehouseID uint   `gorm:"index;not null" json:"warehouse_id" validate:"required"`
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	SKU         string `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Category    string `gorm:"type:varchar(50);index;not null" json:"category" validate:"required"`
	MinQuantity int    `json:"min_quantity" validate:"gte=0"` // reorder threshold
	Unit        string `gorm:"type:varchar(20)" json:"unit"`

	Price  float64 `json:"price,omitempty"`
	Length float64 `json:"length,omitempty"`

	TotalQuantity int `gorm:"default:0" json:"total_quantity"` // derived cache

	CategoryAttrs `gorm:"embedded"`

	Variants []Variant `json:"variants,omitempty"`
}

// IsLowStock is derived at read time, never persisted.
func (i *Item) IsLowStock() bool {
	return i.TotalQuantity <= i.MinQuantity
}

func (i *Item) IsOutOfStock() bool {
	return i.TotalQuantity == 0
}

func (i *Item) StockStatus() StockStatus {
	switch {
	case i.IsOutOfStock():
		return StockOut
	case i.IsLowStock():
		return StockLow
	default:
		return StockOK
	}
}
