package repository

import (
	"time"

	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"

	"gorm.io/gorm"
)

type PaymentFilter struct {
	PayslipID  uint
	EmployeeID uint
	Mode       model.PaymentMode
	From       *time.Time
	To         *time.Time
	// Settled keeps only payments whose cycle is CLOSED.
	Settled bool
}

type PaymentRepository interface {
	Create(payment *model.Payment) error
	FindByID(id uint) (*model.Payment, error)
	Update(payment *model.Payment) error
	Delete(id uint) error
	GetByPayslipForUpdate(payslipID uint) ([]model.Payment, error)
	GetAll(filter PaymentFilter) ([]model.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db}
}

func (r *paymentRepository) Create(payment *model.Payment) error {
	return r.db.Omit("Payslip").Create(payment).Error
}

func (r *paymentRepository) FindByID(id uint) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.
		Preload("Payslip").
		Preload("Payslip.Employee", unscoped).
		Preload("Payslip.PayCycle").
		First(&payment, id).Error
	if err != nil {
		return nil, notFound(err, apperr.ErrPaymentNotFound)
	}
	return &payment, nil
}

func (r *paymentRepository) Update(payment *model.Payment) error {
	return r.db.Omit("Payslip").Save(payment).Error
}

func (r *paymentRepository) Delete(id uint) error {
	res := r.db.Delete(&model.Payment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrPaymentNotFound
	}
	return nil
}

// GetByPayslipForUpdate reads the latest committed payments of a payslip and locks them.
// It must run inside a transaction.
func (r *paymentRepository) GetByPayslipForUpdate(payslipID uint) ([]model.Payment, error) {
	var payments []model.Payment
	err := forUpdate(r.db).Where("payslip_id = ?", payslipID).Order("id asc").Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) GetAll(filter PaymentFilter) ([]model.Payment, error) {
	var payments []model.Payment
	query := r.db.Model(&model.Payment{}).
		Preload("Payslip").
		Preload("Payslip.Employee", unscoped)

	if filter.PayslipID != 0 {
		query = query.Where("payments.payslip_id = ?", filter.PayslipID)
	}
	if filter.EmployeeID != 0 || filter.Settled {
		query = query.Joins("JOIN payslips ON payslips.id = payments.payslip_id")
	}
	if filter.EmployeeID != 0 {
		query = query.Where("payslips.employee_id = ?", filter.EmployeeID)
	}
	if filter.Settled {
		query = query.
			Joins("JOIN pay_cycles ON pay_cycles.id = payslips.pay_cycle_id").
			Where("pay_cycles.status = ?", model.CycleClosed)
	}
	if filter.Mode != "" {
		query = query.Where("payments.mode = ?", filter.Mode)
	}
	if filter.From != nil {
		query = query.Where("payments.date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("payments.date <= ?", *filter.To)
	}

	err := query.Order("payments.date desc, payments.id desc").Find(&payments).Error
	return payments, err
}
