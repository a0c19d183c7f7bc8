package database

import (
	"path/filepath"
	"testing"

	"payroll-backend/config"
	"payroll-backend/internal/model"
	"payroll-backend/internal/testutil"
	"payroll-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedAll_IdempotentWithDemoDatabase(t *testing.T) {
	control := testutil.ControlDB(t)
	template := "sqlite://" + filepath.Join(t.TempDir(), "%s.db") + "?_busy_timeout=5000"
	tenants := usecase.NewTenantUsecase(control, nil, template, zap.NewNop())
	opts := SeedOptions{SuperAdminEmail: "root@payroll.test", SuperAdminPassword: "rootpass", ProvisionDemo: true}

	require.NoError(t, SeedAll(control, tenants, opts, zap.NewNop()))
	opts.SuperAdminPassword = "rotated"
	require.NoError(t, SeedAll(control, tenants, opts, zap.NewNop()))

	var users []model.User
	require.NoError(t, control.Order("id").Find(&users).Error)
	require.Len(t, users, 3)
	assert.Equal(t, model.RoleSuperAdmin, users[0].Role)
	assert.Nil(t, users[0].TenantID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte("rotated")))

	demo, err := tenants.FindByCode("demo")
	require.NoError(t, err)
	require.True(t, demo.Provisioned())

	db, err := config.Open(demo.DatabaseLocation)
	require.NoError(t, err)
	var count int64
	require.NoError(t, db.Model(&model.Employee{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestSeedAll_WithoutProvisioning(t *testing.T) {
	control := testutil.ControlDB(t)
	tenants := usecase.NewTenantUsecase(control, nil, "", zap.NewNop())

	require.NoError(t, SeedAll(control, tenants, SeedOptions{
		SuperAdminEmail:    "root@payroll.test",
		SuperAdminPassword: "rootpass",
	}, zap.NewNop()))

	demo, err := tenants.FindByCode("demo")
	require.NoError(t, err)
	assert.False(t, demo.Provisioned())
	assert.Equal(t, "payroll_demo", demo.DatabaseName)
}
