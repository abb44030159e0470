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

type WarehouseService interface {
	CreateWarehouse(ctx context.Context, req *model.Warehouse) error
	UpdateWarehouse(ctx context.Context, id uint, req *model.Warehouse) (*model.Warehouse, error)
	SetWarehouseActive(ctx context.Context, id uint, active bool) error
	GetWarehouse(id uint) (*model.Warehouse, error)
	ListWarehouses(filter repository.WarehouseFilter) ([]model.Warehouse, error)
}

type warehouseService struct {
	warehouseRepo repository.WarehouseRepository
	store         *store.Store
}

func NewWarehouseService(wRepo repository.WarehouseRepository, st *store.Store) WarehouseService {
	return &warehouseService{warehouseRepo: wRepo, store: st}
}

func (s *warehouseService) CreateWarehouse(ctx context.Context, req *model.Warehouse) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	existing, _ := s.warehouseRepo.FindByCode(req.Code)
	if existing != nil && existing.ID != 0 {
		return apperr.Validation("warehouse code '%s' already exists", req.Code)
	}

	req.IsActive = true
	return s.store.Write(ctx, func(tx *gorm.DB) error {
		if err := s.warehouseRepo.Create(tx, req); err != nil {
			return apperr.Transaction(err)
		}
		return nil
	})
}

// UpdateWarehouse changes name, code and location. The category set is
// fixed at creation and silently left untouched.
func (s *warehouseService) UpdateWarehouse(ctx context.Context, id uint, req *model.Warehouse) (*model.Warehouse, error) {
	var updated *model.Warehouse
	err := s.store.Write(ctx, func(tx *gorm.DB) error {
		var existing model.Warehouse
		if err := tx.First(&existing, id).Error; err != nil {
			return wrapLookup(err, "warehouse %d not found", id)
		}

		if req.Name != "" {
			existing.Name = req.Name
		}
		if req.Code != "" && req.Code != existing.Code {
			other, _ := s.warehouseRepo.FindByCode(req.Code)
			if other != nil && other.ID != existing.ID {
				return apperr.Validation("warehouse code '%s' already exists", req.Code)
			}
			existing.Code = req.Code
		}
		if req.Location != "" {
			existing.Location = req.Location
		}

		if err := s.warehouseRepo.Save(tx, &existing); err != nil {
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

// SetWarehouseActive is the only removal path for warehouses; rows are
// never hard-deleted while items reference them.
func (s *warehouseService) SetWarehouseActive(ctx context.Context, id uint, active bool) error {
	return s.store.Write(ctx, func(tx *gorm.DB) error {
		var existing model.Warehouse
		if err := tx.First(&existing, id).Error; err != nil {
			return wrapLookup(err, "warehouse %d not found", id)
		}
		if err := s.warehouseRepo.SetActive(tx, id, active); err != nil {
			return apperr.Transaction(err)
		}
		return nil
	})
}

func (s *warehouseService) GetWarehouse(id uint) (*model.Warehouse, error) {
	warehouse, err := s.warehouseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("warehouse %d not found", id)
		}
		return nil, err
	}
	return warehouse, nil
}

func (s *warehouseService) ListWarehouses(filter repository.WarehouseFilter) ([]model.Warehouse, error) {
	return s.warehouseRepo.FindAll(filter)
}
