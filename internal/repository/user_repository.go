package repository

import (
	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	FindByEmail(email string) (*model.User, error)
	FindByID(id uint) (*model.User, error)
	Create(user *model.User) error
	GetAll(tenantID *uint) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	// Tenant is needed at login to put the tenant key into the token
	err := r.db.Preload("Tenant").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, notFound(err, apperr.ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Tenant").First(&user, id).Error
	if err != nil {
		return nil, notFound(err, apperr.ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// GetAll lists users of one tenant, or every user when tenantID is nil.
func (r *userRepository) GetAll(tenantID *uint) ([]model.User, error) {
	var users []model.User
	query := r.db.Preload("Tenant")
	if tenantID != nil {
		query = query.Where("tenant_id = ?", *tenantID)
	}
	err := query.Order("id asc").Find(&users).Error
	return users, err
}
