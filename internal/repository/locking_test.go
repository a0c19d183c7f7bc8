package repository

import (
	"testing"

	"payroll-backend/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayslipRepository_FindForUpdateLocksPayments(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPayslipRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `payslips` WHERE `payslips`.`id` = \\? .*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "net", "status"}).AddRow(3, "200000.00", "PARTIAL"))
	mock.ExpectQuery("SELECT \\* FROM `payments` WHERE payslip_id = \\? ORDER BY id asc FOR UPDATE").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "payslip_id", "amount"}).
			AddRow(10, 3, "50000.00").
			AddRow(11, 3, "100000.00"))

	payslip, err := repo.FindForUpdate(3)
	require.NoError(t, err)
	assert.Equal(t, model.PayslipPartial, payslip.Status)
	require.Len(t, payslip.Payments, 2)
	paid := payslip.Payments[0].Amount.Add(payslip.Payments[1].Amount)
	assert.True(t, decimal.NewFromInt(150000).Equal(paid), paid.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_GetByPayslipForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `payments` WHERE payslip_id = \\? ORDER BY id asc FOR UPDATE").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "payslip_id", "amount"}).AddRow(10, 3, "50000.00"))

	payments, err := repo.GetByPayslipForUpdate(3)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, uint(10), payments[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayslipRepository_GetByCycleForUpdateLocksPayslipsThenPayments(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPayslipRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `payslips` WHERE pay_cycle_id = \\? ORDER BY id asc FOR UPDATE").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "pay_cycle_id", "net", "status"}).
			AddRow(1, 5, "200000.00", "PARTIAL").
			AddRow(2, 5, "100000.00", "PARTIAL"))
	mock.ExpectQuery("SELECT \\* FROM `payments` WHERE payslip_id IN \\(\\?,\\?\\) ORDER BY id asc FOR UPDATE").
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "payslip_id", "amount"}).
			AddRow(20, 2, "40000.00").
			AddRow(21, 2, "10000.00"))

	payslips, err := repo.GetByCycleForUpdate(5)
	require.NoError(t, err)
	require.Len(t, payslips, 2)
	assert.Empty(t, payslips[0].Payments)
	assert.Len(t, payslips[1].Payments, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayslipRepository_GetByCycleForUpdateEmptyCycle(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPayslipRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `payslips` WHERE pay_cycle_id = \\? ORDER BY id asc FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	payslips, err := repo.GetByCycleForUpdate(9)
	require.NoError(t, err)
	assert.Empty(t, payslips)
	assert.NoError(t, mock.ExpectationsWereMet())
}
