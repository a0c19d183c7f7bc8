package repository

import (
	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PayslipFilter struct {
	PayCycleID uint
	EmployeeID uint
	Status     model.PayslipStatus
}

type PayslipRepository interface {
	// CreateIfAbsent inserts the payslip unless one already exists for the same
	// (employee, cycle) pair. It reports whether a row was written.
	CreateIfAbsent(payslip *model.Payslip) (bool, error)
	FindByID(id uint) (*model.Payslip, error)
	FindForUpdate(id uint) (*model.Payslip, error)
	GetAll(filter PayslipFilter) ([]model.Payslip, error)
	GetByCycleForUpdate(cycleID uint) ([]model.Payslip, error)
	GetOutstanding(limit int) ([]model.Payslip, error)
	EmployeeIDsInCycle(cycleID uint) ([]uint, error)
	CountByCycle(cycleID uint) (int64, error)
	UpdateStatus(id uint, status model.PayslipStatus) error
	UpdateStatusInCycle(cycleID uint, from, to model.PayslipStatus) error
}

type payslipRepository struct {
	db *gorm.DB
}

func NewPayslipRepository(db *gorm.DB) PayslipRepository {
	return &payslipRepository{db}
}

func (r *payslipRepository) CreateIfAbsent(payslip *model.Payslip) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(payslip)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *payslipRepository) FindByID(id uint) (*model.Payslip, error) {
	var payslip model.Payslip
	err := r.db.
		Preload("Employee", unscoped).
		Preload("PayCycle").
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("date asc, id asc") }).
		First(&payslip, id).Error
	if err != nil {
		return nil, notFound(err, apperr.ErrPayslipNotFound)
	}
	return &payslip, nil
}

// FindForUpdate locks the payslip row and its payments. It must run inside a transaction.
// Payments are read with a locking read so a REPEATABLE READ snapshot taken earlier in the
// transaction cannot hide payments committed meanwhile.
func (r *payslipRepository) FindForUpdate(id uint) (*model.Payslip, error) {
	var payslip model.Payslip
	if err := forUpdate(r.db).First(&payslip, id).Error; err != nil {
		return nil, notFound(err, apperr.ErrPayslipNotFound)
	}
	payments, err := NewPaymentRepository(r.db).GetByPayslipForUpdate(id)
	if err != nil {
		return nil, err
	}
	payslip.Payments = payments
	return &payslip, nil
}

func (r *payslipRepository) GetAll(filter PayslipFilter) ([]model.Payslip, error) {
	var payslips []model.Payslip
	query := r.db.Model(&model.Payslip{}).
		Preload("Employee", unscoped).
		Preload("PayCycle")

	if filter.PayCycleID != 0 {
		query = query.Where("pay_cycle_id = ?", filter.PayCycleID)
	}
	if filter.EmployeeID != 0 {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	err := query.Order("id desc").Find(&payslips).Error
	return payslips, err
}

// GetByCycleForUpdate locks every payslip of the cycle, in id order, then their payments.
// It must run inside a transaction.
func (r *payslipRepository) GetByCycleForUpdate(cycleID uint) ([]model.Payslip, error) {
	var payslips []model.Payslip
	if err := forUpdate(r.db).Where("pay_cycle_id = ?", cycleID).Order("id asc").Find(&payslips).Error; err != nil {
		return nil, err
	}
	if len(payslips) == 0 {
		return payslips, nil
	}

	ids := make([]uint, len(payslips))
	for i, p := range payslips {
		ids[i] = p.ID
	}
	var payments []model.Payment
	if err := forUpdate(r.db).Where("payslip_id IN ?", ids).Order("id asc").Find(&payments).Error; err != nil {
		return nil, err
	}
	byPayslip := make(map[uint][]model.Payment, len(payslips))
	for _, p := range payments {
		byPayslip[p.PayslipID] = append(byPayslip[p.PayslipID], p)
	}
	for i := range payslips {
		payslips[i].Payments = byPayslip[payslips[i].ID]
	}
	return payslips, nil
}

// GetOutstanding returns the oldest payslips that still wait for money.
func (r *payslipRepository) GetOutstanding(limit int) ([]model.Payslip, error) {
	var payslips []model.Payslip
	err := r.db.
		Preload("Employee", unscoped).
		Preload("PayCycle").
		Preload("Payments").
		Where("status IN ?", []model.PayslipStatus{model.PayslipPending, model.PayslipPartial}).
		Order("created_at asc, id asc").
		Limit(limit).
		Find(&payslips).Error
	return payslips, err
}

func (r *payslipRepository) EmployeeIDsInCycle(cycleID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Payslip{}).Where("pay_cycle_id = ?", cycleID).Pluck("employee_id", &ids).Error
	return ids, err
}

func (r *payslipRepository) CountByCycle(cycleID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Payslip{}).Where("pay_cycle_id = ?", cycleID).Count(&count).Error
	return count, err
}

func (r *payslipRepository) UpdateStatus(id uint, status model.PayslipStatus) error {
	return r.db.Model(&model.Payslip{}).Where("id = ?", id).Update("status", status).Error
}

func (r *payslipRepository) UpdateStatusInCycle(cycleID uint, from, to model.PayslipStatus) error {
	return r.db.Model(&model.Payslip{}).
		Where("pay_cycle_id = ? AND status = ?", cycleID, from).
		Update("status", to).Error
}
