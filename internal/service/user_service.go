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

type UserService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*model.User, error)
	UpdateUser(ctx context.Context, id uint, req *UpdateUserRequest) (*model.User, error)
	SetUserStatus(ctx context.Context, id uint, status model.UserStatus) error
	DeleteUser(ctx context.Context, id uint) error
	GetUser(id uint) (*model.User, error)
	ListUsers() ([]model.User, error)
}

type CreateUserRequest struct {
	Username    string         `json:"username" validate:"required,min=3"`
	Password    string         `json:"password" validate:"required,min=6"`
	DisplayName string         `json:"display_name" validate:"required"`
	Role        model.UserRole `json:"role" validate:"required,oneof=admin user"`
	Avatar      string         `json:"avatar"`
}

type UpdateUserRequest struct {
	Password    *string         `json:"password,omitempty" validate:"omitempty,min=6"` // Optional
	DisplayName string          `json:"display_name" validate:"required"`
	Role        *model.UserRole `json:"role,omitempty" validate:"omitempty,oneof=admin user"`
	Avatar      string          `json:"avatar"`
}

type userService struct {
	userRepo repository.UserRepository
	store    *store.Store
}

func NewUserService(uRepo repository.UserRepository, st *store.Store) UserService {
	return &userService{userRepo: uRepo, store: st}
}

func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	existing, _ := s.userRepo.FindByUsername(req.Username)
	if existing != nil && existing.ID != 0 {
		return nil, apperr.Validation("username '%s' already exists", req.Username)
	}

	user := &model.User{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Role:        req.Role,
		Status:      model.UserActive,
		Avatar:      req.Avatar,
	}
	// Credentials are always stored hashed, never as given.
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	err := s.store.Write(ctx, func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return apperr.Transaction(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, req *UpdateUserRequest) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var updated *model.User
	err := s.store.Write(ctx, func(tx *gorm.DB) error {
		var existing model.User
		if err := tx.First(&existing, id).Error; err != nil {
			return wrapLookup(err, "user %d not found", id)
		}

		existing.DisplayName = req.DisplayName
		existing.Avatar = req.Avatar
		if req.Role != nil {
			existing.Role = *req.Role
		}
		if req.Password != nil && *req.Password != "" {
			if err := existing.SetPassword(*req.Password); err != nil {
				return err
			}
		}

		if err := s.userRepo.Save(tx, &existing); err != nil {
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

// SetUserStatus touches only the status column.
func (s *userService) SetUserStatus(ctx context.Context, id uint, status model.UserStatus) error {
	if !status.Valid() {
		return apperr.Validation("invalid user status '%s'", status)
	}
	return s.store.Write(ctx, func(tx *gorm.DB) error {
		var existing model.User
		if err := tx.First(&existing, id).Error; err != nil {
			return wrapLookup(err, "user %d not found", id)
		}
		if err := s.userRepo.UpdateStatus(tx, id, status); err != nil {
			return apperr.Transaction(err)
		}
		return nil
	})
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	return s.store.Write(ctx, func(tx *gorm.DB) error {
		var existing model.User
		if err := tx.First(&existing, id).Error; err != nil {
			return wrapLookup(err, "user %d not found", id)
		}
		if err := s.userRepo.Delete(tx, id); err != nil {
			return apperr.Transaction(err)
		}
		return nil
	})
}

func (s *userService) GetUser(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %d not found", id)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers() ([]model.User, error) {
	return s.userRepo.FindAll()
}
