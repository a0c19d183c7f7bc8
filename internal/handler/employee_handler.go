package handler

import (
	"payroll-backend/internal/middleware"
	"payroll-backend/internal/model"
	"payroll-backend/internal/repository"
	"payroll-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// EmployeeHandler serves the employees of the tenant resolved by middleware.TenantDB.
type EmployeeHandler struct {
	log *zap.Logger
}

func NewEmployeeHandler(log *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{log: log}
}

func (h *EmployeeHandler) usecase(c *fiber.Ctx) *usecase.EmployeeUsecase {
	return usecase.NewEmployeeUsecase(middleware.TenantDBFrom(c))
}

func (h *EmployeeHandler) GetAll(c *fiber.Ctx) error {
	filter := repository.EmployeeFilter{
		JobTitle:     c.Query("job_title"),
		ContractType: model.ContractType(c.Query("contract_type")),
	}
	if c.Query("active") != "" {
		active := c.QueryBool("active")
		filter.Active = &active
	}

	employees, err := h.usecase(c).List(filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, "employees", employees)
}

func (h *EmployeeHandler) GetDetail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	employee, err := h.usecase(c).Get(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, "employee", employee)
}

func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var input usecase.EmployeeInput
	if err := bind(c, &input); err != nil {
		return respondError(c, h.log, err)
	}
	employee, err := h.usecase(c).Create(input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, "employee created", employee)
}

func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var input usecase.EmployeeInput
	if err := bind(c, &input); err != nil {
		return respondError(c, h.log, err)
	}
	employee, err := h.usecase(c).Update(id, input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, "employee updated", employee)
}

func (h *EmployeeHandler) ToggleActive(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	employee, err := h.usecase(c).ToggleActive(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, "employee status changed", employee)
}

func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.usecase(c).Delete(id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "employee deleted"})
}
