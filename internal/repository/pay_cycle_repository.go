package repository

import (
	"time"

	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"

	"gorm.io/gorm"
)

type PayCycleRepository interface {
	Create(cycle *model.PayCycle) error
	FindByID(id uint) (*model.PayCycle, error)
	FindWithPayslips(id uint) (*model.PayCycle, error)
	FindForUpdate(id uint) (*model.PayCycle, error)
	FindByPeriod(cycleType string, from, to time.Time) (*model.PayCycle, error)
	GetAll(status model.CycleStatus) ([]model.PayCycle, error)
	GetClosedSince(since time.Time) ([]model.PayCycle, error)
	Update(cycle *model.PayCycle) error
	UpdateStatus(id uint, status model.CycleStatus) error
	Delete(id uint) error
}

type payCycleRepository struct {
	db *gorm.DB
}

func NewPayCycleRepository(db *gorm.DB) PayCycleRepository {
	return &payCycleRepository{db}
}

func (r *payCycleRepository) Create(cycle *model.PayCycle) error {
	return r.db.Create(cycle).Error
}

func (r *payCycleRepository) FindByID(id uint) (*model.PayCycle, error) {
	var cycle model.PayCycle
	if err := r.db.First(&cycle, id).Error; err != nil {
		return nil, notFound(err, apperr.ErrCycleNotFound)
	}
	return &cycle, nil
}

// FindWithPayslips loads the cycle with every payslip, its employee and its payments.
func (r *payCycleRepository) FindWithPayslips(id uint) (*model.PayCycle, error) {
	var cycle model.PayCycle
	err := r.db.
		Preload("Payslips", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Payslips.Employee", unscoped).
		Preload("Payslips.Payments").
		First(&cycle, id).Error
	if err != nil {
		return nil, notFound(err, apperr.ErrCycleNotFound)
	}
	return &cycle, nil
}

// FindForUpdate must run inside a transaction.
func (r *payCycleRepository) FindForUpdate(id uint) (*model.PayCycle, error) {
	var cycle model.PayCycle
	if err := forUpdate(r.db).First(&cycle, id).Error; err != nil {
		return nil, notFound(err, apperr.ErrCycleNotFound)
	}
	return &cycle, nil
}

// FindByPeriod returns the first cycle of the given type whose period falls in [from, to).
func (r *payCycleRepository) FindByPeriod(cycleType string, from, to time.Time) (*model.PayCycle, error) {
	var cycle model.PayCycle
	err := r.db.
		Where("type = ? AND period >= ? AND period < ?", cycleType, from, to).
		Order("id asc").
		First(&cycle).Error
	if err != nil {
		return nil, notFound(err, apperr.ErrCycleNotFound)
	}
	return &cycle, nil
}

func (r *payCycleRepository) GetAll(status model.CycleStatus) ([]model.PayCycle, error) {
	var cycles []model.PayCycle
	query := r.db.Model(&model.PayCycle{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("period desc, id desc").Find(&cycles).Error
	return cycles, err
}

func (r *payCycleRepository) GetClosedSince(since time.Time) ([]model.PayCycle, error) {
	var cycles []model.PayCycle
	err := r.db.
		Preload("Payslips").
		Where("status = ? AND period >= ?", model.CycleClosed, since).
		Order("period asc, id asc").
		Find(&cycles).Error
	return cycles, err
}

func (r *payCycleRepository) Update(cycle *model.PayCycle) error {
	return r.db.Omit("Payslips").Save(cycle).Error
}

func (r *payCycleRepository) UpdateStatus(id uint, status model.CycleStatus) error {
	return r.db.Model(&model.PayCycle{}).Where("id = ?", id).Update("status", status).Error
}

// Delete removes the cycle and its payslips. Payments go with their payslips.
func (r *payCycleRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var payslipIDs []uint
		if err := tx.Model(&model.Payslip{}).Where("pay_cycle_id = ?", id).Pluck("id", &payslipIDs).Error; err != nil {
			return err
		}
		if len(payslipIDs) > 0 {
			if err := tx.Where("payslip_id IN ?", payslipIDs).Delete(&model.Payment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("pay_cycle_id = ?", id).Delete(&model.Payslip{}).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&model.PayCycle{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrCycleNotFound
		}
		return nil
	})
}
