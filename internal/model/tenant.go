package model

import "gorm.io/gorm"

// Tenant lives in the control-plane database. Each tenant owns one isolated payroll database.
type Tenant struct {
	gorm.Model
	Code             string `json:"code" gorm:"uniqueIndex;size:64;not null"` // tenant key carried in tokens
	Name             string `json:"name" gorm:"not null"`
	Address          string `json:"address"`
	Logo             string `json:"logo"`
	Currency         string `json:"currency" gorm:"size:3;not null"`
	DatabaseName     string `json:"database_name" gorm:"size:64"`
	DatabaseLocation string `json:"-"` // empty until provisioned

	Users []User `json:"users,omitempty" gorm:"foreignKey:TenantID"`
}

func (t *Tenant) Provisioned() bool {
	return t.DatabaseLocation != ""
}
