package handler

import (
	"fmt"
	"time"

	"payroll-backend/internal/document"
	"payroll-backend/internal/middleware"
	"payroll-backend/internal/model"
	"payroll-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type cycleRequest struct {
	Period string `json:"period" validate:"required"`
	Type   string `json:"type" validate:"required,oneof=MONTHLY AD_HOC"`
}

func (r cycleRequest) input() (usecase.PayCycleInput, error) {
	period, err := parseDate(r.Period)
	if err != nil {
		return usecase.PayCycleInput{}, err
	}
	return usecase.PayCycleInput{Period: period, Type: r.Type}, nil
}

type PayCycleHandler struct {
	tenants *usecase.TenantUsecase
	log     *zap.Logger
}

func NewPayCycleHandler(tenants *usecase.TenantUsecase, log *zap.Logger) *PayCycleHandler {
	return &PayCycleHandler{tenants: tenants, log: log}
}

func (h *PayCycleHandler) usecase(c *fiber.Ctx) *usecase.PayCycleUsecase {
	return usecase.NewPayCycleUsecase(middleware.TenantDBFrom(c), h.log.With(zap.String("tenant", middleware.TenantCodeFrom(c))))
}

func (h *PayCycleHandler) GetAll(c *fiber.Ctx) error {
	cycles, err := h.usecase(c).List(model.CycleStatus(c.Query("status")))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, "pay cycles", cycles)
}

func (h *PayCycleHandler) GetDetail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	cycle, err := h.usecase(c).Get(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, "pay cycle", cycle)
}

func (h *PayCycleHandler) Create(c *fiber.Ctx) error {
	var req cycleRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	input, err := req.input()
	if err != nil {
		return respondError(c, h.log, err)
	}
	cycle, err := h.usecase(c).Create(input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, "pay cycle created", cycle)
}

func (h *PayCycleHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req cycleRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	input, err := req.input()
	if err != nil {
		return respondError(c, h.log, err)
	}
	cycle, err := h.usecase(c).Update(id, input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, "pay cycle updated", cycle)
}

func (h *PayCycleHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.usecase(c).Delete(id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "pay cycle deleted"})
}

func (h *PayCycleHandler) Generate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	created, err := h.usecase(c).Generate(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%d payslips generated", len(created)),
		"data":    created,
	})
}

func (h *PayCycleHandler) GenerateMonthly(c *fiber.Ctx) error {
	var input struct {
		Year  int `json:"year" validate:"required,min=2000,max=2100"`
		Month int `json:"month" validate:"required,min=1,max=12"`
	}
	if err := bind(c, &input); err != nil {
		return respondError(c, h.log, err)
	}
	cycle, created, err := h.usecase(c).GenerateMonthly(input.Year, time.Month(input.Month))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message":  fmt.Sprintf("%d payslips generated", len(created)),
		"data":     cycle,
		"payslips": created,
	})
}

func (h *PayCycleHandler) Approve(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	cycle, err := h.usecase(c).Approve(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, "pay cycle approved", cycle)
}

func (h *PayCycleHandler) Close(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	cycle, err := h.usecase(c).Close(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, "pay cycle closed", cycle)
}

func (h *PayCycleHandler) Export(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	issuer, err := issuerOf(c, h.tenants)
	if err != nil {
		return respondError(c, h.log, err)
	}
	data, err := h.usecase(c).Export(id, issuer)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return sendWorkbook(c, fmt.Sprintf("pay-cycle-%d.xlsx", id), document.ContentType, data)
}

func issuerOf(c *fiber.Ctx, tenants *usecase.TenantUsecase) (document.Issuer, error) {
	tenant, err := tenants.FindByCode(middleware.TenantCodeFrom(c))
	if err != nil {
		return document.Issuer{}, err
	}
	return document.Issuer{Name: tenant.Name, Address: tenant.Address, Currency: tenant.Currency}, nil
}
