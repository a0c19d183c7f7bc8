package usecase

import (
	"context"
	"testing"

	"payroll-backend/config"
	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenant_CreateValidatesCode(t *testing.T) {
	f := newControlFixture(t)

	_, err := f.tenants.Create(CreateTenantInput{Code: "Bad Code!", Name: "X"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = f.tenants.Create(CreateTenantInput{Code: "acme", Name: "Again"})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	assert.Equal(t, DefaultCurrency, f.acme.Currency)
	assert.Equal(t, "payroll_acme", f.acme.DatabaseName)
	assert.False(t, f.acme.Provisioned())
}

func TestTenant_ProvisionMigratesOnce(t *testing.T) {
	f := newControlFixture(t)
	ctx := context.Background()

	tenant, err := f.tenants.Provision(ctx, "acme")
	require.NoError(t, err)
	require.True(t, tenant.Provisioned())

	db, err := config.Open(tenant.DatabaseLocation)
	require.NoError(t, err)
	for _, table := range []interface{}{&model.Employee{}, &model.PayCycle{}, &model.Payslip{}, &model.Payment{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}
	sqlDB, _ := db.DB()
	sqlDB.Close()

	_, err = f.tenants.Provision(ctx, "acme")
	assert.ErrorIs(t, err, apperr.ErrTenantProvisioned)

	_, err = f.tenants.Provision(ctx, "ghost")
	assert.ErrorIs(t, err, apperr.ErrTenantNotFound)
}

func TestTenant_ScopedReadsAndUpdate(t *testing.T) {
	f := newControlFixture(t)
	other, err := f.tenants.Create(CreateTenantInput{Code: "globex", Name: "Globex"})
	require.NoError(t, err)

	admin := Actor{Role: model.RoleAdmin, Tenant: "acme"}
	list, err := f.tenants.List(admin)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "acme", list[0].Code)

	_, err = f.tenants.Get(admin, other.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	updated, err := f.tenants.Update(admin, f.acme.ID, UpdateTenantInput{Name: "Acme Senegal", Currency: "eur"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Senegal", updated.Name)
	assert.Equal(t, "EUR", updated.Currency)

	cashier := Actor{Role: model.RoleCashier, Tenant: "acme"}
	_, err = f.tenants.Update(cashier, f.acme.ID, UpdateTenantInput{Name: "Nope"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	all, err := f.tenants.List(Actor{Role: model.RoleSuperAdmin})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
