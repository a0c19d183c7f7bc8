// Package testutil opens throwaway tenant databases for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"payroll-backend/config"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TenantDB returns a migrated SQLite tenant database living in t.TempDir().
// Write transactions take the database lock up front so concurrent tests serialize
// the same way row locks serialize them on MySQL and PostgreSQL.
func TenantDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "tenant.db") + "?_txlock=immediate&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, config.MigrateTenant(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// ControlDB returns a migrated SQLite control-plane database living in t.TempDir().
func ControlDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.ConnectDB("sqlite://" + filepath.Join(t.TempDir(), "control.db") + "?_busy_timeout=5000")
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
