package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayslipStatus string

const (
	PayslipPending PayslipStatus = "PENDING"
	PayslipPartial PayslipStatus = "PARTIAL"
	PayslipPaid    PayslipStatus = "PAID"
)

// Payslip is one employee's pay for one cycle. Net is fixed at generation time.
type Payslip struct {
	ID         uint            `json:"id" gorm:"primarykey"`
	EmployeeID uint            `json:"employee_id" gorm:"not null;uniqueIndex:idx_payslip_employee_cycle"`
	PayCycleID uint            `json:"pay_cycle_id" gorm:"not null;uniqueIndex:idx_payslip_employee_cycle;index"`
	Gross      decimal.Decimal `json:"gross" gorm:"type:decimal(18,2);not null"`
	Deductions decimal.Decimal `json:"deductions" gorm:"type:decimal(18,2);not null"`
	Net        decimal.Decimal `json:"net" gorm:"type:decimal(18,2);not null"`
	Status     PayslipStatus   `json:"status" gorm:"size:20;not null;index"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	Employee *Employee `json:"employee,omitempty"`
	PayCycle *PayCycle `json:"pay_cycle,omitempty"`
	Payments []Payment `json:"payments,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}
