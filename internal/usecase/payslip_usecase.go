package usecase

import (
	"payroll-backend/internal/document"
	"payroll-backend/internal/model"
	"payroll-backend/internal/payroll"
	"payroll-backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PayslipDetail is a payslip with its settlement totals.
type PayslipDetail struct {
	*model.Payslip
	Paid      decimal.Decimal `json:"paid"`
	Remaining decimal.Decimal `json:"remaining"`
}

func NewPayslipDetail(p *model.Payslip) *PayslipDetail {
	paid := payroll.SumPayments(p.Payments)
	return &PayslipDetail{
		Payslip:   p,
		Paid:      paid,
		Remaining: payroll.Remaining(p.Net, paid),
	}
}

type PayslipUsecase struct {
	repo repository.PayslipRepository
}

func NewPayslipUsecase(db *gorm.DB) *PayslipUsecase {
	return &PayslipUsecase{repo: repository.NewPayslipRepository(db)}
}

func (u *PayslipUsecase) List(filter repository.PayslipFilter) ([]model.Payslip, error) {
	return u.repo.GetAll(filter)
}

func (u *PayslipUsecase) Get(id uint) (*PayslipDetail, error) {
	payslip, err := u.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return NewPayslipDetail(payslip), nil
}

// Statement renders the payslip workbook. Payslips of draft cycles are refused.
func (u *PayslipUsecase) Statement(id uint, issuer document.Issuer) ([]byte, error) {
	payslip, err := u.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return document.PayslipStatement(issuer, payslip)
}
