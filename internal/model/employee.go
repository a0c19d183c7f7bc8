package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ContractType string

const (
	ContractFixed      ContractType = "FIXED"
	ContractDaily      ContractType = "DAILY"
	ContractHonorarium ContractType = "HONORARIUM"
)

func (c ContractType) Valid() bool {
	switch c {
	case ContractFixed, ContractDaily, ContractHonorarium:
		return true
	}
	return false
}

type Employee struct {
	gorm.Model
	Name         string          `json:"name" gorm:"not null"`
	JobTitle     string          `json:"job_title"`
	ContractType ContractType    `json:"contract_type" gorm:"size:20;not null"`
	PayRate      decimal.Decimal `json:"pay_rate" gorm:"type:decimal(18,2);not null"`
	DaysWorked   *int            `json:"days_worked"` // DAILY contracts only
	BankDetails  *string         `json:"bank_details"`
	IsActive     bool            `json:"is_active" gorm:"not null;index"`
}
