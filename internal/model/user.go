package model

import "gorm.io/gorm"

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleCashier    Role = "CASHIER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleCashier:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	TenantID *uint  `json:"tenant_id"` // nil for SUPER_ADMIN
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"uniqueIndex;size:191;not null"`
	Password string `json:"-"`
	Role     Role   `json:"role" gorm:"size:20;not null"`

	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}
