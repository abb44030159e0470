package repository

import (
	"fabrisys-backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(tx *gorm.DB, user *model.User) error
	FindAll() ([]model.User, error)
	FindByID(id uint) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	Save(tx *gorm.DB, user *model.User) error
	UpdateStatus(tx *gorm.DB, id uint, status model.UserStatus) error
	Delete(tx *gorm.DB, id uint) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) Create(tx *gorm.DB, user *model.User) error {
	return tx.Create(user).Error
}

func (r *userRepo) FindAll() ([]model.User, error) {
	var users []model.User
	err := r.db.Order("id").Find(&users).Error
	return users, err
}

func (r *userRepo) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Save(tx *gorm.DB, user *model.User) error {
	return tx.Save(user).Error
}

func (r *userRepo) UpdateStatus(tx *gorm.DB, id uint, status model.UserStatus) error {
	return tx.Model(&model.User{}).Where("id = ?", id).Update("status", status).Error
}

func (r *userRepo) Delete(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.User{}, id).Error
}
