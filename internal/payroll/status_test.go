package payroll

import (
	"errors"
	"testing"

	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	net := dec("200000")

	assert.Equal(t, model.PayslipPending, DeriveStatus(net, dec("0")))
	assert.Equal(t, model.PayslipPartial, DeriveStatus(net, dec("80000")))
	assert.Equal(t, model.PayslipPaid, DeriveStatus(net, dec("200000")))
	assert.Equal(t, model.PayslipPaid, DeriveStatus(net, dec("250000")))
}

func TestClosingStatus(t *testing.T) {
	net := dec("200000")

	assert.Equal(t, model.PayslipPaid, ClosingStatus(net, dec("0")))
	assert.Equal(t, model.PayslipPartial, ClosingStatus(net, dec("1")))
	assert.Equal(t, model.PayslipPaid, ClosingStatus(net, dec("200000")))
}

func TestSumAndRemaining(t *testing.T) {
	payments := []model.Payment{{Amount: dec("80000")}, {Amount: dec("20000.50")}}
	paid := SumPayments(payments)

	assertDec(t, "100000.50", paid)
	assertDec(t, "99999.50", Remaining(dec("200000"), paid))
	assertDec(t, "0", Remaining(dec("50000"), paid))
	assertDec(t, "0", SumPayments(nil))
}

func TestCheckTransition(t *testing.T) {
	assert.NoError(t, CheckTransition(model.CycleDraft, model.CycleApproved))
	assert.NoError(t, CheckTransition(model.CycleApproved, model.CycleClosed))

	assert.True(t, errors.Is(CheckTransition(model.CycleDraft, model.CycleClosed), apperr.ErrInvalidTransition))
	assert.True(t, errors.Is(CheckTransition(model.CycleApproved, model.CycleDraft), apperr.ErrInvalidTransition))
	assert.True(t, errors.Is(CheckTransition(model.CycleApproved, model.CycleApproved), apperr.ErrInvalidTransition))
	assert.True(t, errors.Is(CheckTransition(model.CycleClosed, model.CycleApproved), apperr.ErrCycleClosed))
	assert.True(t, errors.Is(CheckTransition(model.CycleClosed, model.CycleDraft), apperr.ErrCycleClosed))
}
