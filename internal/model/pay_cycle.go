package model

import "time"

type CycleStatus string

const (
	CycleDraft    CycleStatus = "DRAFT"
	CycleApproved CycleStatus = "APPROVED"
	CycleClosed   CycleStatus = "CLOSED"
)

const (
	CycleTypeMonthly = "MONTHLY"
	CycleTypeAdHoc   = "AD_HOC"
)

// PayCycle groups the payslips of one payroll period. Status only moves forward.
type PayCycle struct {
	ID        uint        `json:"id" gorm:"primarykey"`
	Period    time.Time   `json:"period" gorm:"not null;index"`
	Type      string      `json:"type" gorm:"size:30;not null"`
	Status    CycleStatus `json:"status" gorm:"size:20;not null;index"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	Payslips []Payslip `json:"payslips,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}
