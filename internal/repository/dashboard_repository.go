package repository

import (
	"payroll-backend/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardTotals are the headline figures of the tenant dashboard.
type DashboardTotals struct {
	ActiveEmployees int64           `json:"active_employees"`
	PayrollMass     decimal.Decimal `json:"payroll_mass"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	TotalRemaining  decimal.Decimal `json:"total_remaining"`
}

type DashboardRepository interface {
	GetTotals() (*DashboardTotals, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db}
}

func (r *dashboardRepository) GetTotals() (*DashboardTotals, error) {
	totals := &DashboardTotals{}

	// 1. Active employees and the sum of their pay rates
	if err := r.db.Model(&model.Employee{}).Where("is_active = ?", true).Count(&totals.ActiveEmployees).Error; err != nil {
		return nil, err
	}
	mass, err := r.sum(r.db.Model(&model.Employee{}).Where("is_active = ?", true), "pay_rate")
	if err != nil {
		return nil, err
	}
	totals.PayrollMass = mass

	// 2. Everything ever paid out
	paid, err := r.sum(r.db.Model(&model.Payment{}), "amount")
	if err != nil {
		return nil, err
	}
	totals.TotalPaid = paid

	// 3. Net still owed on payslips that are not settled
	remaining, err := r.sum(r.db.Model(&model.Payslip{}).Where("status <> ?", model.PayslipPaid), "net")
	if err != nil {
		return nil, err
	}
	totals.TotalRemaining = remaining

	return totals, nil
}

func (r *dashboardRepository) sum(query *gorm.DB, column string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := query.Select("SUM(" + column + ")").Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal.Round(2), nil
}
