package usecase

import (
	"time"

	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"
	"payroll-backend/internal/payroll"
	"payroll-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentInput struct {
	PayslipID uint              `json:"payslip_id" validate:"required"`
	Amount    decimal.Decimal   `json:"amount"`
	Mode      model.PaymentMode `json:"mode" validate:"required"`
	Date      *time.Time        `json:"date"`
}

// PaymentUsecase applies payments against payslips. Every mutation locks the payslip row,
// checks the ceiling against the committed payments and re-derives the payslip status.
type PaymentUsecase struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

func NewPaymentUsecase(db *gorm.DB, log *zap.Logger) *PaymentUsecase {
	return &PaymentUsecase{db: db, log: log, now: time.Now}
}

func (u *PaymentUsecase) Apply(input PaymentInput) (*model.Payment, error) {
	if err := checkAmount(input.Amount); err != nil {
		return nil, err
	}
	if !input.Mode.Valid() {
		return nil, apperr.Wrap(apperr.ErrInvalidPaymentMode, "%q", input.Mode)
	}

	payment := &model.Payment{
		PayslipID: input.PayslipID,
		Reference: uuid.NewString(),
		Amount:    input.Amount,
		Mode:      input.Mode,
		Date:      u.dateOf(input.Date),
	}
	err := u.db.Transaction(func(tx *gorm.DB) error {
		payslip, err := repository.NewPayslipRepository(tx).FindForUpdate(input.PayslipID)
		if err != nil {
			return err
		}
		if payslip.Status == model.PayslipPaid {
			return apperr.ErrPayslipAlreadyPaid
		}
		remaining := payroll.Remaining(payslip.Net, payroll.SumPayments(payslip.Payments))
		if input.Amount.GreaterThan(remaining) {
			return apperr.Wrap(apperr.ErrAmountExceedsRemaining, "remaining %s", remaining.StringFixed(payroll.MoneyPlaces))
		}
		if err := repository.NewPaymentRepository(tx).Create(payment); err != nil {
			return err
		}
		return reconcile(tx, payslip)
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("payment applied",
		zap.Uint("payslip_id", payment.PayslipID),
		zap.String("reference", payment.Reference),
		zap.String("amount", payment.Amount.StringFixed(payroll.MoneyPlaces)),
		zap.String("mode", string(payment.Mode)))
	return payment, nil
}

// Update rewrites amount, mode and date of a payment. The ceiling is checked
// against the other payments of the same payslip.
func (u *PaymentUsecase) Update(id uint, input PaymentInput) (*model.Payment, error) {
	if err := checkAmount(input.Amount); err != nil {
		return nil, err
	}
	if !input.Mode.Valid() {
		return nil, apperr.Wrap(apperr.ErrInvalidPaymentMode, "%q", input.Mode)
	}

	var payment *model.Payment
	err := u.db.Transaction(func(tx *gorm.DB) error {
		payslip, err := lockPayslipOf(tx, id)
		if err != nil {
			return err
		}
		if payment = lockedPayment(payslip, id); payment == nil {
			return apperr.ErrPaymentNotFound
		}

		others := decimal.Zero
		for _, p := range payslip.Payments {
			if p.ID != id {
				others = others.Add(p.Amount)
			}
		}
		if others.Add(input.Amount).GreaterThan(payslip.Net) {
			remaining := payroll.Remaining(payslip.Net, others)
			return apperr.Wrap(apperr.ErrAmountExceedsRemaining, "remaining %s", remaining.StringFixed(payroll.MoneyPlaces))
		}

		payment.Amount = input.Amount
		payment.Mode = input.Mode
		if input.Date != nil {
			payment.Date = input.Date.UTC()
		}
		if err := repository.NewPaymentRepository(tx).Update(payment); err != nil {
			return err
		}
		return reconcile(tx, payslip)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (u *PaymentUsecase) Delete(id uint) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		payslip, err := lockPayslipOf(tx, id)
		if err != nil {
			return err
		}
		if lockedPayment(payslip, id) == nil {
			return apperr.ErrPaymentNotFound
		}
		if err := repository.NewPaymentRepository(tx).Delete(id); err != nil {
			return err
		}
		return reconcile(tx, payslip)
	})
}

// lockPayslipOf locks the payslip owning a payment together with its payments.
// A payment never moves to another payslip, so the plain lookup of its payslip id is safe.
func lockPayslipOf(tx *gorm.DB, paymentID uint) (*model.Payslip, error) {
	payment, err := repository.NewPaymentRepository(tx).FindByID(paymentID)
	if err != nil {
		return nil, err
	}
	return repository.NewPayslipRepository(tx).FindForUpdate(payment.PayslipID)
}

// lockedPayment returns the payment as read under the payslip lock, nil if it is gone.
func lockedPayment(payslip *model.Payslip, id uint) *model.Payment {
	for i := range payslip.Payments {
		if payslip.Payments[i].ID == id {
			p := payslip.Payments[i]
			return &p
		}
	}
	return nil
}

func (u *PaymentUsecase) Get(id uint) (*model.Payment, error) {
	return repository.NewPaymentRepository(u.db).FindByID(id)
}

func (u *PaymentUsecase) List(filter repository.PaymentFilter) ([]model.Payment, error) {
	return repository.NewPaymentRepository(u.db).GetAll(filter)
}

func (u *PaymentUsecase) ListByEmployee(employeeID uint) ([]model.Payment, error) {
	if _, err := repository.NewEmployeeRepository(u.db).FindByID(employeeID); err != nil {
		return nil, err
	}
	return u.List(repository.PaymentFilter{EmployeeID: employeeID})
}

func (u *PaymentUsecase) dateOf(d *time.Time) time.Time {
	if d == nil {
		return u.now().UTC()
	}
	return d.UTC()
}

// reconcile re-reads the payment set of a locked payslip and stores the derived status.
func reconcile(tx *gorm.DB, payslip *model.Payslip) error {
	payments, err := repository.NewPaymentRepository(tx).GetByPayslipForUpdate(payslip.ID)
	if err != nil {
		return err
	}
	status := payroll.DeriveStatus(payslip.Net, payroll.SumPayments(payments))
	if status == payslip.Status {
		return nil
	}
	if err := repository.NewPayslipRepository(tx).UpdateStatus(payslip.ID, status); err != nil {
		return err
	}
	payslip.Status = status
	return nil
}

func checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperr.ErrNonPositiveAmount
	}
	if !amount.Equal(amount.Round(payroll.MoneyPlaces)) {
		return apperr.Wrap(apperr.ErrInvalidInput, "amount has more than %d decimal places", payroll.MoneyPlaces)
	}
	return nil
}
