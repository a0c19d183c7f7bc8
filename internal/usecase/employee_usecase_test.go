package usecase

import (
	"testing"

	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"
	"payroll-backend/internal/repository"
	"payroll-backend/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployee_Validation(t *testing.T) {
	uc := NewEmployeeUsecase(testutil.TenantDB(t))

	cases := []struct {
		name  string
		input EmployeeInput
		err   error
	}{
		{"unknown contract", EmployeeInput{Name: "A", ContractType: "WEEKLY", PayRate: decimal.NewFromInt(1)}, apperr.ErrInvalidContract},
		{"zero rate", EmployeeInput{Name: "A", ContractType: model.ContractFixed, PayRate: decimal.Zero}, apperr.ErrNonPositiveRate},
		{"daily without days", EmployeeInput{Name: "A", ContractType: model.ContractDaily, PayRate: decimal.NewFromInt(1)}, apperr.ErrDaysWorkedRequired},
		{"daily with zero days", EmployeeInput{Name: "A", ContractType: model.ContractDaily, PayRate: decimal.NewFromInt(1), DaysWorked: intPtr(0)}, apperr.ErrDaysWorkedRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(tc.input)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestEmployee_CreateUpdateToggleDelete(t *testing.T) {
	uc := NewEmployeeUsecase(testutil.TenantDB(t))

	e, err := uc.Create(EmployeeInput{Name: "Awa Diop", JobTitle: "Comptable", ContractType: model.ContractFixed, PayRate: decimal.NewFromInt(300000)})
	require.NoError(t, err)
	assert.True(t, e.IsActive, "new employees are active by default")

	e, err = uc.Update(e.ID, EmployeeInput{Name: "Awa Diop", JobTitle: "Chef comptable", ContractType: model.ContractFixed, PayRate: decimal.NewFromInt(350000)})
	require.NoError(t, err)
	assert.Equal(t, "Chef comptable", e.JobTitle)

	e, err = uc.ToggleActive(e.ID)
	require.NoError(t, err)
	assert.False(t, e.IsActive)

	active := true
	list, err := uc.List(repository.EmployeeFilter{Active: &active})
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, uc.Delete(e.ID))
	_, err = uc.Get(e.ID)
	assert.ErrorIs(t, err, apperr.ErrEmployeeNotFound)
	assert.ErrorIs(t, uc.Delete(e.ID), apperr.ErrEmployeeNotFound)
}
