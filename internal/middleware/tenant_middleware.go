package middleware

import (
	"payroll-backend/internal/apperr"
	"payroll-backend/internal/cache"
	"payroll-backend/internal/model"
	"payroll-backend/internal/tenancy"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TenantHeader lets a SUPER_ADMIN act on a tenant other than the one in its token.
const TenantHeader = "X-Tenant-Code"

// TenantDB resolves the caller's tenant database and stores it as "tenant_db".
// Must run after Auth.
func TenantDB(router *tenancy.Router) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, _ := c.Locals("tenant").(string)
		if role, _ := c.Locals("role").(string); model.Role(role) == model.RoleSuperAdmin {
			if selected := c.Get(TenantHeader); selected != "" {
				key = selected
			}
		}
		if key == "" {
			return fail(c, apperr.Wrap(apperr.ErrInvalidInput, "no tenant selected, send the %s header", TenantHeader))
		}

		db, err := router.Resolve(c.UserContext(), key)
		if err != nil {
			return fail(c, err)
		}
		c.Locals("tenant_db", db)
		c.Locals("tenant_code", key)
		return c.Next()
	}
}

// TenantDBFrom returns the handle stored by TenantDB.
func TenantDBFrom(c *fiber.Ctx) *gorm.DB {
	db, _ := c.Locals("tenant_db").(*gorm.DB)
	return db
}

func TenantCodeFrom(c *fiber.Ctx) string {
	code, _ := c.Locals("tenant_code").(string)
	return code
}

// InvalidateDashboard drops the tenant's cached dashboard after every successful write.
func InvalidateDashboard(dc *cache.DashboardCache, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return err
		}
		if err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			return err
		}
		tenant := TenantCodeFrom(c)
		if invErr := dc.Invalidate(c.UserContext(), tenant); invErr != nil {
			log.Warn("dashboard cache invalidation failed", zap.String("tenant", tenant), zap.Error(invErr))
		}
		return nil
	}
}
