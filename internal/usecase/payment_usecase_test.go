package usecase

import (
	"errors"
	"sync"
	"testing"
	"time"

	"payroll-backend/internal/apperr"
	"payroll-backend/internal/document"
	"payroll-backend/internal/model"
	"payroll-backend/internal/repository"
	"payroll-backend/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func documentIssuer() document.Issuer {
	return document.Issuer{Name: "Acme SARL", Address: "Dakar", Currency: "XOF"}
}

// payslipWithNet stores a payslip of the given net in a fresh draft cycle.
func payslipWithNet(t *testing.T, db *gorm.DB, net int64) *model.Payslip {
	t.Helper()
	employee := &model.Employee{Name: "Ibrahima Fall", ContractType: model.ContractFixed, PayRate: decimal.NewFromInt(net), IsActive: true}
	require.NoError(t, repository.NewEmployeeRepository(db).Create(employee))
	cycle := &model.PayCycle{Period: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Type: model.CycleTypeAdHoc, Status: model.CycleDraft}
	require.NoError(t, repository.NewPayCycleRepository(db).Create(cycle))

	payslip := &model.Payslip{
		EmployeeID: employee.ID,
		PayCycleID: cycle.ID,
		Gross:      decimal.NewFromInt(net),
		Deductions: decimal.Zero,
		Net:        decimal.NewFromInt(net),
		Status:     model.PayslipPending,
	}
	ok, err := repository.NewPayslipRepository(db).CreateIfAbsent(payslip)
	require.NoError(t, err)
	require.True(t, ok)
	return payslip
}

func payslipStatus(t *testing.T, db *gorm.DB, id uint) model.PayslipStatus {
	t.Helper()
	p, err := repository.NewPayslipRepository(db).FindByID(id)
	require.NoError(t, err)
	return p.Status
}

func TestPayment_PartialThenPaidThenRejected(t *testing.T) {
	db := testutil.TenantDB(t)
	payslip := payslipWithNet(t, db, 200000)
	uc := NewPaymentUsecase(db, zap.NewNop())

	first, err := uc.Apply(PaymentInput{PayslipID: payslip.ID, Amount: decimal.NewFromInt(80000), Mode: model.PaymentOrangeMoney})
	require.NoError(t, err)
	assert.NotEmpty(t, first.Reference)
	assert.Equal(t, model.PayslipPartial, payslipStatus(t, db, payslip.ID))

	_, err = uc.Apply(PaymentInput{PayslipID: payslip.ID, Amount: decimal.NewFromInt(120000), Mode: model.PaymentBankTransfer})
	require.NoError(t, err)
	assert.Equal(t, model.PayslipPaid, payslipStatus(t, db, payslip.ID))

	_, err = uc.Apply(PaymentInput{PayslipID: payslip.ID, Amount: decimal.NewFromInt(1), Mode: model.PaymentCash})
	assert.ErrorIs(t, err, apperr.ErrPayslipAlreadyPaid)
}

func TestPayment_ValidationOrder(t *testing.T) {
	db := testutil.TenantDB(t)
	payslip := payslipWithNet(t, db, 100000)
	uc := NewPaymentUsecase(db, zap.NewNop())

	_, err := uc.Apply(PaymentInput{PayslipID: payslip.ID, Amount: decimal.Zero, Mode: model.PaymentCash})
	assert.ErrorIs(t, err, apperr.ErrNonPositiveAmount)

	_, err = uc.Apply(PaymentInput{PayslipID: payslip.ID, Amount: decimal.NewFromInt(-5), Mode: model.PaymentCash})
	assert.ErrorIs(t, err, apperr.ErrNonPositiveAmount)

	_, err = uc.Apply(PaymentInput{PayslipID: payslip.ID, Amount: decimal.NewFromInt(5), Mode: "CHEQUE"})
	assert.ErrorIs(t, err, apperr.ErrInvalidPaymentMode)

	_, err = uc.Apply(PaymentInput{PayslipID: 9999, Amount: decimal.NewFromInt(5), Mode: model.PaymentCash})
	assert.ErrorIs(t, err, apperr.ErrPayslipNotFound)

	_, err = uc.Apply(PaymentInput{PayslipID: payslip.ID, Amount: decimal.RequireFromString("10.005"), Mode: model.PaymentCash})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestPayment_CeilingLeavesStateUnchanged(t *testing.T) {
	db := testutil.TenantDB(t)
	payslip := payslipWithNet(t, db, 100000)
	uc := NewPaymentUsecase(db, zap.NewNop())

	_, err := uc.Apply(PaymentInput{PayslipID: payslip.ID, Amount: decimal.NewFromInt(60000), Mode: model.PaymentWave})
	require.NoError(t, err)

	_, err = uc.Apply(PaymentInput{PayslipID: payslip.ID, Amount: decimal.NewFromInt(40001), Mode: model.PaymentWave})
	assert.ErrorIs(t, err, apperr.ErrAmountExceedsRemaining)

	payments, err := uc.List(repository.PaymentFilter{PayslipID: payslip.ID})
	require.NoError(t, err)
	assert.Len(t, payments, 1)
	assert.Equal(t, model.PayslipPartial, payslipStatus(t, db, payslip.ID))
}

func TestPayment_UpdateAndDeleteRecompute(t *testing.T) {
	db := testutil.TenantDB(t)
	payslip := payslipWithNet(t, db, 100000)
	uc := NewPaymentUsecase(db, zap.NewNop())

	a, err := uc.Apply(PaymentInput{PayslipID: payslip.ID, Amount: decimal.NewFromInt(30000), Mode: model.PaymentCash})
	require.NoError(t, err)
	b, err := uc.Apply(PaymentInput{PayslipID: payslip.ID, Amount: decimal.NewFromInt(20000), Mode: model.PaymentCash})
	require.NoError(t, err)

	// raising a to 80000 fills the payslip
	_, err = uc.Update(a.ID, PaymentInput{PayslipID: payslip.ID, Amount: decimal.NewFromInt(80000), Mode: model.PaymentCash})
	require.NoError(t, err)
	assert.Equal(t, model.PayslipPaid, payslipStatus(t, db, payslip.ID))

	// the ceiling counts the other payments only
	_, err = uc.Update(a.ID, PaymentInput{PayslipID: payslip.ID, Amount: decimal.NewFromInt(80001), Mode: model.PaymentCash})
	assert.ErrorIs(t, err, apperr.ErrAmountExceedsRemaining)

	require.NoError(t, uc.Delete(a.ID))
	assert.Equal(t, model.PayslipPartial, payslipStatus(t, db, payslip.ID))

	require.NoError(t, uc.Delete(b.ID))
	assert.Equal(t, model.PayslipPending, payslipStatus(t, db, payslip.ID))

	assert.ErrorIs(t, uc.Delete(b.ID), apperr.ErrPaymentNotFound)
}

func TestPayment_ConcurrentPaymentsNeverExceedNet(t *testing.T) {
	db := testutil.TenantDB(t)
	payslip := payslipWithNet(t, db, 100000)
	uc := NewPaymentUsecase(db, zap.NewNop())

	const workers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
		other     []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Apply(PaymentInput{PayslipID: payslip.ID, Amount: decimal.NewFromInt(20000), Mode: model.PaymentCash})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, apperr.ErrAmountExceedsRemaining), errors.Is(err, apperr.ErrPayslipAlreadyPaid):
				rejected++
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	require.Empty(t, other)
	assert.Equal(t, 5, succeeded)
	assert.Equal(t, workers-5, rejected)

	detail, err := NewPayslipUsecase(db).Get(payslip.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100000).Equal(detail.Paid), detail.Paid.String())
	assert.True(t, detail.Remaining.IsZero())
	assert.Equal(t, model.PayslipPaid, detail.Status)
}

func TestPayment_ListByEmployee(t *testing.T) {
	db := testutil.TenantDB(t)
	payslip := payslipWithNet(t, db, 100000)
	uc := NewPaymentUsecase(db, zap.NewNop())

	_, err := uc.Apply(PaymentInput{PayslipID: payslip.ID, Amount: decimal.NewFromInt(1000), Mode: model.PaymentCash})
	require.NoError(t, err)

	list, err := uc.ListByEmployee(payslip.EmployeeID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.ListByEmployee(4242)
	assert.ErrorIs(t, err, apperr.ErrEmployeeNotFound)
}

func TestPayslip_StatementRefusesDraft(t *testing.T) {
	db := testutil.TenantDB(t)
	payslip := payslipWithNet(t, db, 100000)

	_, err := NewPayslipUsecase(db).Statement(payslip.ID, documentIssuer())
	assert.ErrorIs(t, err, apperr.ErrCycleNotApproved)
}
