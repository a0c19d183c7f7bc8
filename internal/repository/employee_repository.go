package repository

import (
	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"

	"gorm.io/gorm"
)

type EmployeeFilter struct {
	JobTitle     string
	ContractType model.ContractType
	Active       *bool
}

type EmployeeRepository interface {
	Create(employee *model.Employee) error
	FindByID(id uint) (*model.Employee, error)
	Update(employee *model.Employee) error
	Delete(id uint) error
	GetAll(filter EmployeeFilter) ([]model.Employee, error)
	GetActive() ([]model.Employee, error)
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db}
}

func (r *employeeRepository) Create(employee *model.Employee) error {
	return r.db.Create(employee).Error
}

func (r *employeeRepository) FindByID(id uint) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.First(&employee, id).Error
	if err != nil {
		return nil, notFound(err, apperr.ErrEmployeeNotFound)
	}
	return &employee, nil
}

func (r *employeeRepository) Update(employee *model.Employee) error {
	return r.db.Save(employee).Error
}

// Delete is a soft delete: payslips keep pointing at the row.
func (r *employeeRepository) Delete(id uint) error {
	res := r.db.Delete(&model.Employee{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) GetAll(filter EmployeeFilter) ([]model.Employee, error) {
	var employees []model.Employee
	query := r.db.Model(&model.Employee{})

	if filter.JobTitle != "" {
		query = query.Where("LOWER(job_title) LIKE ?", "%"+lower(filter.JobTitle)+"%")
	}
	if filter.ContractType != "" {
		query = query.Where("contract_type = ?", filter.ContractType)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}

	err := query.Order("name asc").Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) GetActive() ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.Where("is_active = ?", true).Order("id asc").Find(&employees).Error
	return employees, err
}
