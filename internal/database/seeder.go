package database

import (
	"context"
	"errors"
	"fmt"

	"payroll-backend/config"
	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"
	"payroll-backend/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SeedOptions struct {
	SuperAdminEmail    string
	SuperAdminPassword string
	// ProvisionDemo also creates the demo tenant database and a few employees in it.
	ProvisionDemo bool
}

const demoTenant = "demo"

// SeedAll is idempotent: existing rows are kept, passwords of seeded accounts are reset.
func SeedAll(control *gorm.DB, tenants *usecase.TenantUsecase, opts SeedOptions, log *zap.Logger) error {
	// 1. Super admin
	if err := seedUser(control, "Super Admin", opts.SuperAdminEmail, opts.SuperAdminPassword, model.RoleSuperAdmin, nil); err != nil {
		return err
	}
	log.Info("super admin seeded", zap.String("email", opts.SuperAdminEmail))

	// 2. Demo tenant
	tenant, err := tenants.FindByCode(demoTenant)
	if errors.Is(err, apperr.ErrTenantNotFound) {
		tenant, err = tenants.Create(usecase.CreateTenantInput{
			Code:     demoTenant,
			Name:     "Demo Entreprise",
			Address:  "Dakar, Senegal",
			Currency: usecase.DefaultCurrency,
		})
	}
	if err != nil {
		return fmt.Errorf("seed demo tenant: %w", err)
	}

	// 3. Demo admin and cashier
	if err := seedUser(control, "Demo Admin", "admin@demo.local", "admin123", model.RoleAdmin, &tenant.ID); err != nil {
		return err
	}
	if err := seedUser(control, "Demo Cashier", "cashier@demo.local", "cashier123", model.RoleCashier, &tenant.ID); err != nil {
		return err
	}
	log.Info("demo tenant seeded", zap.String("tenant", tenant.Code))

	if !opts.ProvisionDemo {
		return nil
	}

	// 4. Demo database with a few employees
	if !tenant.Provisioned() {
		if tenant, err = tenants.Provision(context.Background(), demoTenant); err != nil {
			return fmt.Errorf("provision demo tenant: %w", err)
		}
	}
	db, err := config.Open(tenant.DatabaseLocation)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	return seedEmployees(db, log)
}

func seedUser(db *gorm.DB, name, email, password string, role model.Role, tenantID *uint) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := model.User{Name: name, Email: email, Password: string(hashedPassword), Role: role, TenantID: tenantID}
	if err := db.Where(model.User{Email: email}).FirstOrCreate(&user).Error; err != nil {
		return fmt.Errorf("seed user %s: %w", email, err)
	}
	// keep the password in sync with the seed even when the user already existed
	return db.Model(&user).Update("password", string(hashedPassword)).Error
}

func seedEmployees(db *gorm.DB, log *zap.Logger) error {
	days := 22
	employees := []model.Employee{
		{Name: "Awa Diop", JobTitle: "Comptable", ContractType: model.ContractFixed, PayRate: decimal.NewFromInt(350000), IsActive: true},
		{Name: "Moussa Ba", JobTitle: "Chauffeur", ContractType: model.ContractDaily, PayRate: decimal.NewFromInt(8000), DaysWorked: &days, IsActive: true},
		{Name: "Fatou Sow", JobTitle: "Consultante", ContractType: model.ContractHonorarium, PayRate: decimal.NewFromInt(200000), IsActive: true},
	}
	for i := range employees {
		e := employees[i]
		if err := db.Where(model.Employee{Name: e.Name}).FirstOrCreate(&e).Error; err != nil {
			return fmt.Errorf("seed employee %s: %w", e.Name, err)
		}
	}
	log.Info("demo employees seeded", zap.Int("count", len(employees)))
	return nil
}
