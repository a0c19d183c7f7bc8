package usecase

import "payroll-backend/internal/model"

// Actor is the authenticated caller as read from the access token.
type Actor struct {
	UserID uint       `json:"user_id"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
	Tenant string     `json:"tenant"` // tenant code, empty for SUPER_ADMIN
}

func (a Actor) IsSuperAdmin() bool {
	return a.Role == model.RoleSuperAdmin
}
