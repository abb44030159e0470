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

type SupplierService interface {
	CreateSupplier(ctx context.Context, req *model.Supplier) error
	UpdateSupplier(ctx context.Context, id uint, req *model.Supplier) (*model.Supplier, error)
	SetSupplierStatus(ctx context.Context, id uint, status model.SupplierStatus) error
	DeleteSupplier(ctx context.Context, id uint) error
	GetSupplier(id uint) (*model.Supplier, error)
	ListSuppliers(filter repository.SupplierFilter) ([]model.Supplier, error)
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
	store        *store.Store
}

func NewSupplierService(sRepo repository.SupplierRepository, st *store.Store) SupplierService {
	return &supplierService{supplierRepo: sRepo, store: st}
}

func (s *supplierService) CreateSupplier(ctx context.Context, req *model.Supplier) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	if req.Status == "" {
		req.Status = model.SupplierActive
	}
	if !req.Status.Valid() {
		return apperr.Validation("invalid supplier status '%s'", req.Status)
	}

	return s.store.Write(ctx, func(tx *gorm.DB) error {
		if err := s.supplierRepo.Create(tx, req); err != nil {
			return apperr.Transaction(err)
		}
		return nil
	})
}

func (s *supplierService) UpdateSupplier(ctx context.Context, id uint, req *model.Supplier) (*model.Supplier, error) {
	var updated *model.Supplier
	err := s.store.Write(ctx, func(tx *gorm.DB) error {
		var existing model.Supplier
		if err := tx.First(&existing, id).Error; err != nil {
			return wrapLookup(err, "supplier %d not found", id)
		}

		existing.Name = req.Name
		existing.ContactPerson = req.ContactPerson
		existing.Phone = req.Phone
		existing.Email = req.Email
		existing.Address = req.Address
		existing.SupplyCategories = req.SupplyCategories
		existing.TaxID = req.TaxID
		existing.CommercialRecord = req.CommercialRecord
		existing.PaymentMethods = req.PaymentMethods
		// Status has its own transition operation.

		if err := s.supplierRepo.Save(tx, &existing); err != nil {
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

// SetSupplierStatus is independent from UpdateSupplier and must not
// overwrite any other field.
func (s *supplierService) SetSupplierStatus(ctx context.Context, id uint, status model.SupplierStatus) error {
	if !status.Valid() {
		return apperr.Validation("invalid supplier status '%s'", status)
	}
	return s.store.Write(ctx, func(tx *gorm.DB) error {
		var existing model.Supplier
		if err := tx.First(&existing, id).Error; err != nil {
			return wrapLookup(err, "supplier %d not found", id)
		}
		if err := s.supplierRepo.UpdateStatus(tx, id, status); err != nil {
			return apperr.Transaction(err)
		}
		return nil
	})
}

func (s *supplierService) DeleteSupplier(ctx context.Context, id uint) error {
	return s.store.Write(ctx, func(tx *gorm.DB) error {
		var existing model.Supplier
		if err := tx.First(&existing, id).Error; err != nil {
			return wrapLookup(err, "supplier %d not found", id)
		}
		if err := s.supplierRepo.Delete(tx, id); err != nil {
			return apperr.Transaction(err)
		}
		return nil
	})
}

func (s *supplierService) GetSupplier(id uint) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("supplier %d not found", id)
		}
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) ListSuppliers(filter repository.SupplierFilter) ([]model.Supplier, error) {
	return s.supplierRepo.FindAll(filter)
}
