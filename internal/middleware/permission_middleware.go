package middleware

import (
	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"

	"github.com/gofiber/fiber/v2"
)

const (
	ManageTenants   = "manage_tenants"
	ManageUsers     = "manage_users"
	ManageEmployees = "manage_employees"
	ManageCycles    = "manage_cycles"
	RecordPayments  = "record_payments"
	ViewPayroll     = "view_payroll"
)

// capabilities maps each capability to the roles holding it.
var capabilities = map[string][]model.Role{
	ManageTenants:   {model.RoleSuperAdmin},
	ManageUsers:     {model.RoleSuperAdmin, model.RoleAdmin},
	ManageEmployees: {model.RoleSuperAdmin, model.RoleAdmin},
	ManageCycles:    {model.RoleSuperAdmin, model.RoleAdmin},
	RecordPayments:  {model.RoleSuperAdmin, model.RoleAdmin, model.RoleCashier},
	ViewPayroll:     {model.RoleSuperAdmin, model.RoleAdmin, model.RoleCashier},
}

// Can reports whether role holds the capability. Unknown capabilities are denied.
func Can(role model.Role, capability string) bool {
	for _, r := range capabilities[capability] {
		if r == role {
			return true
		}
	}
	return false
}

func Permission(requiredPermission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Role is set by the Auth middleware
		userRole, ok := c.Locals("role").(string)
		if !ok {
			return fail(c, apperr.Wrap(apperr.ErrForbidden, "no role in token"))
		}
		if !Can(model.Role(userRole), requiredPermission) {
			return fail(c, apperr.Wrap(apperr.ErrForbidden, "missing permission %s", requiredPermission))
		}
		return c.Next()
	}
}
