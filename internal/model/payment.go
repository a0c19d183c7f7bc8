package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMode string

const (
	PaymentCash         PaymentMode = "CASH"
	PaymentBankTransfer PaymentMode = "BANK_TRANSFER"
	PaymentOrangeMoney  PaymentMode = "ORANGE_MONEY"
	PaymentWave         PaymentMode = "WAVE"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentCash, PaymentBankTransfer, PaymentOrangeMoney, PaymentWave:
		return true
	}
	return false
}

type Payment struct {
	ID        uint            `json:"id" gorm:"primarykey"`
	PayslipID uint            `json:"payslip_id" gorm:"not null;index"`
	Reference string          `json:"reference" gorm:"size:36;uniqueIndex;not null"` // receipt number
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(18,2);not null"`
	Mode      PaymentMode     `json:"mode" gorm:"size:20;not null"`
	Date      time.Time       `json:"date" gorm:"not null"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Payslip *Payslip `json:"payslip,omitempty"`
}
