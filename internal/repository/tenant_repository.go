package repository

import (
	"context"
	"errors"

	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"

	"gorm.io/gorm"
)

// TenantRepository reads and writes the control-plane tenant directory.
// It also serves as the tenancy.Registry for the connection router.
type TenantRepository interface {
	FindByCode(code string) (*model.Tenant, error)
	FindByID(id uint) (*model.Tenant, error)
	GetAll() ([]model.Tenant, error)
	Create(tenant *model.Tenant) error
	Update(tenant *model.Tenant) error
	DatabaseLocation(ctx context.Context, tenantKey string) (string, error)
}

type tenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantRepository{db}
}

func (r *tenantRepository) FindByCode(code string) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.db.Where("code = ?", code).First(&tenant).Error
	if err != nil {
		return nil, notFound(err, apperr.ErrTenantNotFound)
	}
	return &tenant, nil
}

func (r *tenantRepository) FindByID(id uint) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.db.Preload("Users").First(&tenant, id).Error
	if err != nil {
		return nil, notFound(err, apperr.ErrTenantNotFound)
	}
	return &tenant, nil
}

func (r *tenantRepository) GetAll() ([]model.Tenant, error) {
	var tenants []model.Tenant
	err := r.db.Order("name asc").Find(&tenants).Error
	return tenants, err
}

func (r *tenantRepository) Create(tenant *model.Tenant) error {
	return r.db.Create(tenant).Error
}

func (r *tenantRepository) Update(tenant *model.Tenant) error {
	return r.db.Omit("Users").Save(tenant).Error
}

func (r *tenantRepository) DatabaseLocation(ctx context.Context, tenantKey string) (string, error) {
	var tenant model.Tenant
	err := r.db.WithContext(ctx).Select("id", "code", "database_location").Where("code = ?", tenantKey).First(&tenant).Error
	if err != nil {
		return "", notFound(err, apperr.ErrTenantNotFound)
	}
	return tenant.DatabaseLocation, nil
}

// notFound maps gorm's record-not-found onto the given sentinel and leaves other errors alone.
func notFound(err error, sentinel *apperr.Error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
