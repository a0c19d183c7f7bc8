package usecase

import (
	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"
	"payroll-backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type EmployeeInput struct {
	Name         string             `json:"name" validate:"required,max=255"`
	JobTitle     string             `json:"job_title" validate:"max=255"`
	ContractType model.ContractType `json:"contract_type" validate:"required"`
	PayRate      decimal.Decimal    `json:"pay_rate"`
	DaysWorked   *int               `json:"days_worked"`
	BankDetails  *string            `json:"bank_details" validate:"omitempty,max=255"`
	IsActive     *bool              `json:"is_active"`
}

type EmployeeUsecase struct {
	repo repository.EmployeeRepository
}

func NewEmployeeUsecase(db *gorm.DB) *EmployeeUsecase {
	return &EmployeeUsecase{repo: repository.NewEmployeeRepository(db)}
}

func (u *EmployeeUsecase) Create(input EmployeeInput) (*model.Employee, error) {
	if err := validateEmployee(input); err != nil {
		return nil, err
	}

	employee := &model.Employee{IsActive: true}
	applyEmployeeInput(employee, input)
	if err := u.repo.Create(employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (u *EmployeeUsecase) Update(id uint, input EmployeeInput) (*model.Employee, error) {
	if err := validateEmployee(input); err != nil {
		return nil, err
	}

	employee, err := u.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	applyEmployeeInput(employee, input)
	if err := u.repo.Update(employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (u *EmployeeUsecase) Get(id uint) (*model.Employee, error) {
	return u.repo.FindByID(id)
}

func (u *EmployeeUsecase) List(filter repository.EmployeeFilter) ([]model.Employee, error) {
	return u.repo.GetAll(filter)
}

func (u *EmployeeUsecase) Delete(id uint) error {
	return u.repo.Delete(id)
}

// ToggleActive flips the active flag. Inactive employees are skipped by payslip generation.
func (u *EmployeeUsecase) ToggleActive(id uint) (*model.Employee, error) {
	employee, err := u.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	employee.IsActive = !employee.IsActive
	if err := u.repo.Update(employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func validateEmployee(input EmployeeInput) error {
	if !input.ContractType.Valid() {
		return apperr.Wrap(apperr.ErrInvalidContract, "%q", input.ContractType)
	}
	if !input.PayRate.IsPositive() {
		return apperr.ErrNonPositiveRate
	}
	if input.ContractType == model.ContractDaily && (input.DaysWorked == nil || *input.DaysWorked <= 0) {
		return apperr.ErrDaysWorkedRequired
	}
	if input.DaysWorked != nil && *input.DaysWorked < 0 {
		return apperr.Wrap(apperr.ErrInvalidInput, "days worked cannot be negative")
	}
	return nil
}

func applyEmployeeInput(e *model.Employee, input EmployeeInput) {
	e.Name = input.Name
	e.JobTitle = input.JobTitle
	e.ContractType = input.ContractType
	e.PayRate = input.PayRate.Round(2)
	e.DaysWorked = input.DaysWorked
	e.BankDetails = input.BankDetails
	if input.IsActive != nil {
		e.IsActive = *input.IsActive
	}
}
