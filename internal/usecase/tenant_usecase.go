package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"payroll-backend/config"
	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"
	"payroll-backend/internal/repository"
	"payroll-backend/internal/tenancy"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const DefaultCurrency = "XOF"

var (
	tenantCodePattern   = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,62}$`)
	databaseNamePattern = regexp.MustCompile(`^[a-z0-9_]{1,64}$`)
)

type TenantAdminInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=191"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type CreateTenantInput struct {
	Code     string            `json:"code" validate:"required,max=64"`
	Name     string            `json:"name" validate:"required,max=255"`
	Address  string            `json:"address" validate:"max=255"`
	Logo     string            `json:"logo" validate:"omitempty,url"`
	Currency string            `json:"currency" validate:"omitempty,len=3"`
	Admin    *TenantAdminInput `json:"admin" validate:"omitempty"`
}

type UpdateTenantInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Address  string `json:"address" validate:"max=255"`
	Logo     string `json:"logo" validate:"omitempty,url"`
	Currency string `json:"currency" validate:"omitempty,len=3"`
}

// TenantUsecase manages the control-plane tenant directory and provisions tenant databases.
type TenantUsecase struct {
	control     *gorm.DB
	tenants     repository.TenantRepository
	router      *tenancy.Router
	dsnTemplate string
	log         *zap.Logger
}

// NewTenantUsecase accepts a nil router for offline use (the operator CLI).
func NewTenantUsecase(control *gorm.DB, router *tenancy.Router, dsnTemplate string, log *zap.Logger) *TenantUsecase {
	return &TenantUsecase{
		control:     control,
		tenants:     repository.NewTenantRepository(control),
		router:      router,
		dsnTemplate: dsnTemplate,
		log:         log,
	}
}

// Create registers a tenant and, when requested, its first ADMIN in one transaction.
// The tenant database is created later by Provision.
func (u *TenantUsecase) Create(input CreateTenantInput) (*model.Tenant, error) {
	code := strings.ToLower(strings.TrimSpace(input.Code))
	if !tenantCodePattern.MatchString(code) {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, "tenant code %q must be lowercase letters, digits, '-' or '_'", input.Code)
	}
	currency := strings.ToUpper(input.Currency)
	if currency == "" {
		currency = DefaultCurrency
	}

	tenant := &model.Tenant{
		Code:         code,
		Name:         input.Name,
		Address:      input.Address,
		Logo:         input.Logo,
		Currency:     currency,
		DatabaseName: "payroll_" + strings.ReplaceAll(code, "-", "_"),
	}

	err := u.control.Transaction(func(tx *gorm.DB) error {
		tenants := repository.NewTenantRepository(tx)
		if _, err := tenants.FindByCode(code); err == nil {
			return apperr.Wrap(apperr.ErrInvalidInput, "tenant code %q is already taken", code)
		} else if !errors.Is(err, apperr.ErrTenantNotFound) {
			return err
		}
		if err := tenants.Create(tenant); err != nil {
			return err
		}
		if input.Admin == nil {
			return nil
		}

		users := repository.NewUserRepository(tx)
		email := strings.ToLower(strings.TrimSpace(input.Admin.Email))
		if _, err := users.FindByEmail(email); err == nil {
			return apperr.Wrap(apperr.ErrInvalidInput, "email %s is already registered", email)
		} else if !errors.Is(err, apperr.ErrUserNotFound) {
			return err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Admin.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := model.User{
			TenantID: &tenant.ID,
			Name:     input.Admin.Name,
			Email:    email,
			Password: string(hashed),
			Role:     model.RoleAdmin,
		}
		if err := users.Create(&admin); err != nil {
			return err
		}
		tenant.Users = []model.User{admin}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("tenant created", zap.String("tenant", tenant.Code), zap.Bool("with_admin", input.Admin != nil))
	return tenant, nil
}

func (u *TenantUsecase) List(actor Actor) ([]model.Tenant, error) {
	if actor.IsSuperAdmin() {
		return u.tenants.GetAll()
	}
	tenant, err := u.tenants.FindByCode(actor.Tenant)
	if err != nil {
		return nil, err
	}
	return []model.Tenant{*tenant}, nil
}

func (u *TenantUsecase) Get(actor Actor, id uint) (*model.Tenant, error) {
	tenant, err := u.tenants.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.IsSuperAdmin() && tenant.Code != actor.Tenant {
		return nil, apperr.ErrForbidden
	}
	return tenant, nil
}

// FindByCode is used to print the tenant on generated documents.
func (u *TenantUsecase) FindByCode(code string) (*model.Tenant, error) {
	return u.tenants.FindByCode(code)
}

// Update edits administrative metadata only. Code and database location never change here.
func (u *TenantUsecase) Update(actor Actor, id uint, input UpdateTenantInput) (*model.Tenant, error) {
	tenant, err := u.Get(actor, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.RoleSuperAdmin && actor.Role != model.RoleAdmin {
		return nil, apperr.ErrForbidden
	}

	tenant.Name = input.Name
	tenant.Address = input.Address
	tenant.Logo = input.Logo
	if input.Currency != "" {
		tenant.Currency = strings.ToUpper(input.Currency)
	}
	tenant.Users = nil
	if err := u.tenants.Update(tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// Provision creates the tenant database (MySQL/PostgreSQL), migrates the payroll schema
// and records the location. A provisioned tenant cannot be provisioned again.
func (u *TenantUsecase) Provision(ctx context.Context, code string) (*model.Tenant, error) {
	tenant, err := u.tenants.FindByCode(code)
	if err != nil {
		return nil, err
	}
	if tenant.Provisioned() {
		return nil, apperr.ErrTenantProvisioned
	}
	if !databaseNamePattern.MatchString(tenant.DatabaseName) {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, "database name %q", tenant.DatabaseName)
	}

	if err := config.CreateTenantDatabase(u.control.WithContext(ctx), tenant.DatabaseName); err != nil {
		return nil, apperr.Infra(fmt.Errorf("create database %s: %w", tenant.DatabaseName, err))
	}

	location := fmt.Sprintf(u.dsnTemplate, tenant.DatabaseName)
	db, err := config.Open(location)
	if err != nil {
		return nil, apperr.Infra(fmt.Errorf("open tenant database: %w", err))
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := config.MigrateTenant(db.WithContext(ctx)); err != nil {
		return nil, apperr.Infra(fmt.Errorf("migrate tenant database: %w", err))
	}

	tenant.DatabaseLocation = location
	if err := u.tenants.Update(tenant); err != nil {
		return nil, err
	}
	if u.router != nil {
		u.router.Forget(tenant.Code)
	}

	u.log.Info("tenant provisioned", zap.String("tenant", tenant.Code), zap.String("database", tenant.DatabaseName))
	return tenant, nil
}
