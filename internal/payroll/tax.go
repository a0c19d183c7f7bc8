// Package payroll holds the pure payroll rules: gross/deduction/net computation,
// payslip status derivation and pay-cycle transitions. Nothing here touches a database.
package payroll

import (
	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"

	"github.com/shopspring/decimal"
)

// Bracket is one step of the progressive income-tax table: income above Threshold
// (up to the next bracket's threshold) is taxed at Rate.
type Bracket struct {
	Threshold decimal.Decimal
	Rate      decimal.Decimal
}

var (
	SocialContributionRate    = decimal.RequireFromString("0.055")
	HonorariumWithholdingRate = decimal.RequireFromString("0.10")

	// Annual income-tax table, ordered by threshold.
	IncomeTaxBrackets = []Bracket{
		{Threshold: decimal.NewFromInt(600000), Rate: decimal.RequireFromString("0.15")},
		{Threshold: decimal.NewFromInt(1200000), Rate: decimal.RequireFromString("0.25")},
		{Threshold: decimal.NewFromInt(1800000), Rate: decimal.RequireFromString("0.35")},
		{Threshold: decimal.NewFromInt(2400000), Rate: decimal.RequireFromString("0.40")},
	}

	monthsPerYear = decimal.NewFromInt(12)
)

// MoneyPlaces is the number of decimal places amounts are rounded to.
const MoneyPlaces = 2

type Contract struct {
	Type       model.ContractType
	PayRate    decimal.Decimal
	DaysWorked *int
}

func ContractOf(e *model.Employee) Contract {
	return Contract{Type: e.ContractType, PayRate: e.PayRate, DaysWorked: e.DaysWorked}
}

type Amounts struct {
	Gross      decimal.Decimal
	Deductions decimal.Decimal
	Net        decimal.Decimal
}

// Compute returns gross, deductions and net for one contract. It is deterministic:
// all arithmetic is decimal and every amount is rounded to MoneyPlaces.
func Compute(c Contract) (Amounts, error) {
	var gross, deductions decimal.Decimal

	switch c.Type {
	case model.ContractFixed:
		gross = c.PayRate
		deductions = salaryDeductions(gross)
	case model.ContractDaily:
		days := 0
		if c.DaysWorked != nil && *c.DaysWorked > 0 {
			days = *c.DaysWorked
		}
		gross = c.PayRate.Mul(decimal.NewFromInt(int64(days)))
		deductions = salaryDeductions(gross)
	case model.ContractHonorarium:
		gross = c.PayRate
		deductions = gross.Mul(HonorariumWithholdingRate).Round(MoneyPlaces)
	default:
		return Amounts{}, apperr.Wrap(apperr.ErrInvalidContract, "%q", c.Type)
	}

	gross = gross.Round(MoneyPlaces)
	net := gross.Sub(deductions)
	if net.IsNegative() {
		net = decimal.Zero
	}
	return Amounts{Gross: gross, Deductions: deductions, Net: net}, nil
}

// SocialContribution is the employee share withheld on a monthly salary.
func SocialContribution(monthlyGross decimal.Decimal) decimal.Decimal {
	return monthlyGross.Mul(SocialContributionRate).Round(MoneyPlaces)
}

// MonthlyIncomeTax annualizes the gross, applies the bracket table and prorates back.
func MonthlyIncomeTax(monthlyGross decimal.Decimal) decimal.Decimal {
	annual := monthlyGross.Mul(monthsPerYear)
	return AnnualIncomeTax(annual).Div(monthsPerYear).Round(MoneyPlaces)
}

func AnnualIncomeTax(annual decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	for i, b := range IncomeTaxBrackets {
		if annual.LessThanOrEqual(b.Threshold) {
			break
		}
		upper := annual
		if i+1 < len(IncomeTaxBrackets) && annual.GreaterThan(IncomeTaxBrackets[i+1].Threshold) {
			upper = IncomeTaxBrackets[i+1].Threshold
		}
		tax = tax.Add(upper.Sub(b.Threshold).Mul(b.Rate))
	}
	return tax
}

func salaryDeductions(gross decimal.Decimal) decimal.Decimal {
	return SocialContribution(gross).Add(MonthlyIncomeTax(gross))
}
