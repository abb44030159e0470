package service

import (
	"context"
	"errors"

	"fabrisys-backend/internal/apperr"
	"fabrisys-backend/internal/model"
	"fabrisys-backend/internal/repository"
	"fabrisys-backend/internal/store"
	"fabrisys-backend/pkg/validator"

	"gorm.io/gorm"
)

type InventoryService interface {
	CreateItem(ctx context.Context, req *model.Item) error
	UpdateItem(ctx context.Context, id uint, req *model.Item) (*model.Item, error)
	DeleteItem(ctx context.Context, id uint) error
	GetItem(id uint) (*model.Item, error)
	ListItems(warehouseID uint, filter repository.ItemFilter) ([]model.Item, error)
	ListLowStock() ([]model.Item, error)

	AddVariant(ctx context.Context, itemID uint, req *model.Variant) error
	UpdateVariant(ctx context.Context, id uint, req *model.Variant) (*model.Variant, error)
	DeleteVariant(ctx context.Context, id uint) error
	ListVariants(itemID uint) ([]model.Variant, error)
}

type inventoryService struct {
	itemRepo      repository.ItemRepository
	variantRepo   repository.VariantRepository
	warehouseRepo repository.WarehouseRepository
	store         *store.Store
}

func NewInventoryService(iRepo repository.ItemRepository, vRepo repository.VariantRepository, wRepo repository.WarehouseRepository, st *store.Store) InventoryService {
	return &inventoryService{
		itemRepo:      iRepo,
		variantRepo:   vRepo,
		warehouseRepo: wRepo,
		store:         st,
	}
}

func (s *inventoryService) CreateItem(ctx context.Context, req *model.Item) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	warehouse, err := s.warehouseRepo.FindByID(req.WarehouseID)
	if err != nil {
		return wrapLookup(err, "warehouse %d not found", req.WarehouseID)
	}
	if !warehouse.IsActive {
		return apperr.Constraint("warehouse '%s' is deactivated", warehouse.Name)
	}
	if !warehouse.SupportsCategory(req.Category) {
		return apperr.Constraint("warehouse '%s' does not support category '%s'", warehouse.Name, req.Category)
	}

	existing, _ := s.itemRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != 0 {
		return apperr.Validation("SKU '%s' already exists", req.SKU)
	}

	req.TotalQuantity = 0 // derived, never caller-supplied
	return s.store.Write(ctx, func(tx *gorm.DB) error {
		if err := s.itemRepo.Create(tx, req); err != nil {
			return apperr.Transaction(err)
		}
		return nil
	})
}

func (s *inventoryService) UpdateItem(ctx context.Context, id uint, req *model.Item) (*model.Item, error) {
	var updated *model.Item
	err := s.store.Write(ctx, func(tx *gorm.DB) error {
		var existing model.Item
		if err := tx.First(&existing, id).Error; err != nil {
			return wrapLookup(err, "item %d not found", id)
		}

		category := existing.Category
		if req.Category != "" {
			category = req.Category
		}
		moving := req.WarehouseID != 0 && req.WarehouseID != existing.WarehouseID

		// A move or a category change must be re-checked against the
		// warehouse the item ends up in.
		if moving || category != existing.Category {
			targetID := existing.WarehouseID
			if moving {
				targetID = req.WarehouseID
			}
			warehouse, err := s.warehouseRepo.FindByID(targetID)
			if err != nil {
				return wrapLookup(err, "warehouse %d not found", targetID)
			}
			if moving && !warehouse.IsActive {
				return apperr.Constraint("warehouse '%s' is deactivated", warehouse.Name)
			}
			if !warehouse.SupportsCategory(category) {
				return apperr.Constraint("warehouse '%s' does not support category '%s'", warehouse.Name, category)
			}
		}

		if req.SKU != existing.SKU {
			other, _ := s.itemRepo.FindBySKU(req.SKU)
			if other != nil && other.ID != existing.ID {
				return apperr.Validation("SKU '%s' already exists", req.SKU)
			}
		}

		existing.Category = category
		if moving {
			existing.WarehouseID = req.WarehouseID
			// Variants carry the denormalized warehouse; move them too.
			if err := s.variantRepo.UpdateWarehouseByItem(tx, existing.ID, req.WarehouseID); err != nil {
				return apperr.Transaction(err)
			}
		}

		existing.Name = req.Name
		existing.SKU = req.SKU
		existing.Unit = req.Unit
		existing.MinQuantity = req.MinQuantity
		existing.Price = req.Price
		existing.Length = req.Length
		existing.CategoryAttrs = req.CategoryAttrs

		// TotalQuantity stays derived; caller input is ignored.
		if err := s.itemRepo.Save(tx, &existing); err != nil {
			return apperr.Transaction(err)
		}
		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteItem removes the item and cascade-deletes its variants in the
// same transaction, so no orphaned variants survive.
func (s *inventoryService) DeleteItem(ctx context.Context, id uint) error {
	return s.store.Write(ctx, func(tx *gorm.DB) error {
		var existing model.Item
		if err := tx.First(&existing, id).Error; err != nil {
			return wrapLookup(err, "item %d not found", id)
		}
		if err := s.variantRepo.DeleteByItem(tx, id); err != nil {
			return apperr.Transaction(err)
		}
		if err := s.itemRepo.Delete(tx, id); err != nil {
			return apperr.Transaction(err)
		}
		return nil
	})
}

func (s *inventoryService) GetItem(id uint) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("item %d not found", id)
		}
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) ListItems(warehouseID uint, filter repository.ItemFilter) ([]model.Item, error) {
	return s.itemRepo.FindByWarehouse(warehouseID, filter)
}

func (s *inventoryService) ListLowStock() ([]model.Item, error) {
	return s.itemRepo.FindLowStock()
}

// AddVariant records received stock: within one transaction it inserts
// the variant and increments the parent item's TotalQuantity. If the
// item is missing nothing is written.
func (s *inventoryService) AddVariant(ctx context.Context, itemID uint, req *model.Variant) error {
	req.ItemID = itemID
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	return s.store.Write(ctx, func(tx *gorm.DB) error {
		var item model.Item
		if err := tx.First(&item, itemID).Error; err != nil {
			return wrapLookup(err, "item %d not found", itemID)
		}

		req.WarehouseID = item.WarehouseID
		if err := s.variantRepo.Create(tx, req); err != nil {
			return apperr.Transaction(err)
		}
		if err := s.itemRepo.AdjustTotalQuantity(tx, item.ID, req.Quantity); err != nil {
			return apperr.Transaction(err)
		}
		return nil
	})
}

// UpdateVariant adjusts the parent item's TotalQuantity by the
// quantity delta in the same transaction.
func (s *inventoryService) UpdateVariant(ctx context.Context, id uint, req *model.Variant) (*model.Variant, error) {
	if req.Quantity < 0 {
		return nil, apperr.Validation("quantity must not be negative")
	}

	var updated *model.Variant
	err := s.store.Write(ctx, func(tx *gorm.DB) error {
		var existing model.Variant
		if err := tx.First(&existing, id).Error; err != nil {
			return wrapLookup(err, "variant %d not found", id)
		}

		delta := req.Quantity - existing.Quantity
		existing.Quantity = req.Quantity
		existing.Price = req.Price
		existing.CategoryAttrs = req.CategoryAttrs

		if err := s.variantRepo.Save(tx, &existing); err != nil {
			return apperr.Transaction(err)
		}
		if delta != 0 {
			if err := s.itemRepo.AdjustTotalQuantity(tx, existing.ItemID, delta); err != nil {
				return apperr.Transaction(err)
			}
		}
		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteVariant decrements the parent item's TotalQuantity by the
// deleted quantity in the same transaction.
func (s *inventoryService) DeleteVariant(ctx context.Context, id uint) error {
	return s.store.Write(ctx, func(tx *gorm.DB) error {
		var existing model.Variant
		if err := tx.First(&existing, id).Error; err != nil {
			return wrapLookup(err, "variant %d not found", id)
		}
		if err := s.variantRepo.Delete(tx, id); err != nil {
			return apperr.Transaction(err)
		}
		if existing.Quantity != 0 {
			if err := s.itemRepo.AdjustTotalQuantity(tx, existing.ItemID, -existing.Quantity); err != nil {
				return apperr.Transaction(err)
			}
		}
		return nil
	})
}

func (s *inventoryService) ListVariants(itemID uint) ([]model.Variant, error) {
	return s.variantRepo.FindByItem(itemID)
}
