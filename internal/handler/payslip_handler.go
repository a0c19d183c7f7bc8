package handler

import (
	"fmt"

	"payroll-backend/internal/document"
	"payroll-backend/internal/middleware"
	"payroll-backend/internal/model"
	"payroll-backend/internal/repository"
	"payroll-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PayslipHandler is read-only: payslip status only changes through payments and cycle transitions.
type PayslipHandler struct {
	tenants *usecase.TenantUsecase
	log     *zap.Logger
}

func NewPayslipHandler(tenants *usecase.TenantUsecase, log *zap.Logger) *PayslipHandler {
	return &PayslipHandler{tenants: tenants, log: log}
}

func (h *PayslipHandler) usecase(c *fiber.Ctx) *usecase.PayslipUsecase {
	return usecase.NewPayslipUsecase(middleware.TenantDBFrom(c))
}

func (h *PayslipHandler) GetAll(c *fiber.Ctx) error {
	cycleID, err := queryID(c, "pay_cycle_id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	employeeID, err := queryID(c, "employee_id")
	if err != nil {
		return respondError(c, h.log, err)
	}

	payslips, err := h.usecase(c).List(repository.PayslipFilter{
		PayCycleID: cycleID,
		EmployeeID: employeeID,
		Status:     model.PayslipStatus(c.Query("status")),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, "payslips", payslips)
}

func (h *PayslipHandler) GetDetail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	detail, err := h.usecase(c).Get(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, "payslip", detail)
}

func (h *PayslipHandler) Statement(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	issuer, err := issuerOf(c, h.tenants)
	if err != nil {
		return respondError(c, h.log, err)
	}
	data, err := h.usecase(c).Statement(id, issuer)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return sendWorkbook(c, fmt.Sprintf("payslip-%d.xlsx", id), document.ContentType, data)
}
