package payroll

import (
	"payroll-backend/internal/model"

	"github.com/shopspring/decimal"
)

// DeriveStatus is the reconciliation rule: a payslip's status is a function of its
// net amount and the sum of its payments only.
func DeriveStatus(net, paid decimal.Decimal) model.PayslipStatus {
	switch {
	case paid.GreaterThanOrEqual(net):
		return model.PayslipPaid
	case paid.IsPositive():
		return model.PayslipPartial
	default:
		return model.PayslipPending
	}
}

// ClosingStatus is applied when a cycle closes. Unpaid payslips are written off as PAID.
func ClosingStatus(net, paid decimal.Decimal) model.PayslipStatus {
	if paid.IsPositive() && paid.LessThan(net) {
		return model.PayslipPartial
	}
	return model.PayslipPaid
}

func SumPayments(payments []model.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Remaining never goes below zero.
func Remaining(net, paid decimal.Decimal) decimal.Decimal {
	r := net.Sub(paid)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}
