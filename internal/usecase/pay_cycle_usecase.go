package usecase

import (
	"errors"
	"time"

	"payroll-backend/internal/apperr"
	"payroll-backend/internal/document"
	"payroll-backend/internal/model"
	"payroll-backend/internal/payroll"
	"payroll-backend/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PayCycleInput struct {
	Period time.Time `json:"period" validate:"required"`
	Type   string    `json:"type" validate:"required,max=30"`
}

// PayCycleUsecase drives the DRAFT -> APPROVED -> CLOSED lifecycle and payslip generation.
type PayCycleUsecase struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPayCycleUsecase(db *gorm.DB, log *zap.Logger) *PayCycleUsecase {
	return &PayCycleUsecase{db: db, log: log}
}

func (u *PayCycleUsecase) Create(input PayCycleInput) (*model.PayCycle, error) {
	cycle := &model.PayCycle{
		Period: input.Period.UTC(),
		Type:   input.Type,
		Status: model.CycleDraft,
	}
	if err := repository.NewPayCycleRepository(u.db).Create(cycle); err != nil {
		return nil, err
	}
	return cycle, nil
}

func (u *PayCycleUsecase) List(status model.CycleStatus) ([]model.PayCycle, error) {
	return repository.NewPayCycleRepository(u.db).GetAll(status)
}

func (u *PayCycleUsecase) Get(id uint) (*model.PayCycle, error) {
	return repository.NewPayCycleRepository(u.db).FindWithPayslips(id)
}

// Export renders the cycle workbook. Draft cycles are refused.
func (u *PayCycleUsecase) Export(id uint, issuer document.Issuer) ([]byte, error) {
	cycle, err := u.Get(id)
	if err != nil {
		return nil, err
	}
	return document.CycleExport(issuer, cycle)
}

// Update changes period and type. Only drafts are editable.
func (u *PayCycleUsecase) Update(id uint, input PayCycleInput) (*model.PayCycle, error) {
	var cycle *model.PayCycle
	err := u.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewPayCycleRepository(tx)
		var err error
		if cycle, err = repo.FindForUpdate(id); err != nil {
			return err
		}
		if err := requireDraft(cycle); err != nil {
			return err
		}
		cycle.Period = input.Period.UTC()
		cycle.Type = input.Type
		return repo.Update(cycle)
	})
	if err != nil {
		return nil, err
	}
	return cycle, nil
}

// Delete removes a draft cycle together with its payslips.
func (u *PayCycleUsecase) Delete(id uint) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewPayCycleRepository(tx)
		cycle, err := repo.FindForUpdate(id)
		if err != nil {
			return err
		}
		if err := requireDraft(cycle); err != nil {
			return err
		}
		return repo.Delete(id)
	})
}

// Generate creates the missing payslips of a draft cycle and returns only the new ones.
// Running it again is a no-op for employees that already have a payslip.
func (u *PayCycleUsecase) Generate(id uint) ([]model.Payslip, error) {
	var created []model.Payslip
	err := u.db.Transaction(func(tx *gorm.DB) error {
		cycle, err := repository.NewPayCycleRepository(tx).FindForUpdate(id)
		if err != nil {
			return err
		}
		if err := requireDraft(cycle); err != nil {
			return err
		}
		created, err = u.generate(tx, cycle)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GenerateMonthly finds or creates the MONTHLY cycle of the given month, then generates its payslips.
func (u *PayCycleUsecase) GenerateMonthly(year int, month time.Month) (*model.PayCycle, []model.Payslip, error) {
	if month < time.January || month > time.December {
		return nil, nil, apperr.Wrap(apperr.ErrInvalidInput, "month %d", month)
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var (
		cycle   *model.PayCycle
		created []model.Payslip
	)
	err := u.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewPayCycleRepository(tx)
		found, err := repo.FindByPeriod(model.CycleTypeMonthly, from, to)
		switch {
		case errors.Is(err, apperr.ErrCycleNotFound):
			found = &model.PayCycle{Period: from, Type: model.CycleTypeMonthly, Status: model.CycleDraft}
			if err := repo.Create(found); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if found, err = repo.FindForUpdate(found.ID); err != nil {
				return err
			}
		}
		if found.Status != model.CycleDraft {
			return apperr.Wrap(apperr.ErrCycleNotDraft, "%s cycle of %s is %s", model.CycleTypeMonthly, from.Format("2006-01"), found.Status)
		}
		cycle = found
		created, err = u.generate(tx, found)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return cycle, created, nil
}

func (u *PayCycleUsecase) generate(tx *gorm.DB, cycle *model.PayCycle) ([]model.Payslip, error) {
	payslips := repository.NewPayslipRepository(tx)

	employees, err := repository.NewEmployeeRepository(tx).GetActive()
	if err != nil {
		return nil, err
	}
	existing, err := payslips.EmployeeIDsInCycle(cycle.ID)
	if err != nil {
		return nil, err
	}
	covered := make(map[uint]struct{}, len(existing))
	for _, id := range existing {
		covered[id] = struct{}{}
	}

	created := make([]model.Payslip, 0, len(employees))
	for i := range employees {
		employee := &employees[i]
		if _, ok := covered[employee.ID]; ok {
			continue
		}

		amounts, err := payroll.Compute(payroll.ContractOf(employee))
		if err != nil {
			// one bad contract must not block the rest of the batch
			u.log.Warn("skipping employee during payslip generation",
				zap.Uint("cycle_id", cycle.ID),
				zap.Uint("employee_id", employee.ID),
				zap.Error(err))
			continue
		}

		payslip := model.Payslip{
			EmployeeID: employee.ID,
			PayCycleID: cycle.ID,
			Gross:      amounts.Gross,
			Deductions: amounts.Deductions,
			Net:        amounts.Net,
			Status:     model.PayslipPending,
		}
		ok, err := payslips.CreateIfAbsent(&payslip)
		if err != nil {
			return nil, err
		}
		if ok {
			created = append(created, payslip)
		}
	}

	u.log.Info("payslips generated",
		zap.Uint("cycle_id", cycle.ID),
		zap.Int("created", len(created)),
		zap.Int("already_covered", len(existing)))
	return created, nil
}

// Approve moves a cycle from DRAFT to APPROVED. Payslips still PENDING become PARTIAL.
func (u *PayCycleUsecase) Approve(id uint) (*model.PayCycle, error) {
	err := u.db.Transaction(func(tx *gorm.DB) error {
		cycles := repository.NewPayCycleRepository(tx)
		payslips := repository.NewPayslipRepository(tx)

		cycle, err := cycles.FindForUpdate(id)
		if err != nil {
			return err
		}
		if err := payroll.CheckTransition(cycle.Status, model.CycleApproved); err != nil {
			return err
		}
		count, err := payslips.CountByCycle(id)
		if err != nil {
			return err
		}
		if count == 0 {
			return apperr.ErrNoPayslipsGenerated
		}
		if err := payslips.UpdateStatusInCycle(id, model.PayslipPending, model.PayslipPartial); err != nil {
			return err
		}
		return cycles.UpdateStatus(id, model.CycleApproved)
	})
	if err != nil {
		return nil, err
	}
	return u.Get(id)
}

// Close moves a cycle from APPROVED to CLOSED and settles every payslip:
// partially paid ones stay PARTIAL, everything else is marked PAID.
func (u *PayCycleUsecase) Close(id uint) (*model.PayCycle, error) {
	err := u.db.Transaction(func(tx *gorm.DB) error {
		cycles := repository.NewPayCycleRepository(tx)
		payslips := repository.NewPayslipRepository(tx)

		cycle, err := cycles.FindForUpdate(id)
		if err != nil {
			return err
		}
		if err := payroll.CheckTransition(cycle.Status, model.CycleClosed); err != nil {
			return err
		}
		// payments lock the payslip, not the cycle: take the payslip locks before reading amounts
		list, err := payslips.GetByCycleForUpdate(id)
		if err != nil {
			return err
		}
		for _, p := range list {
			status := payroll.ClosingStatus(p.Net, payroll.SumPayments(p.Payments))
			if status == p.Status {
				continue
			}
			if err := payslips.UpdateStatus(p.ID, status); err != nil {
				return err
			}
		}
		return cycles.UpdateStatus(id, model.CycleClosed)
	})
	if err != nil {
		return nil, err
	}
	return u.Get(id)
}

func requireDraft(cycle *model.PayCycle) error {
	switch cycle.Status {
	case model.CycleDraft:
		return nil
	case model.CycleClosed:
		return apperr.ErrCycleClosed
	default:
		return apperr.Wrap(apperr.ErrCycleNotDraft, "cycle %d is %s", cycle.ID, cycle.Status)
	}
}
