package handler

import (
	"time"

	"payroll-backend/internal/middleware"
	"payroll-backend/internal/model"
	"payroll-backend/internal/repository"
	"payroll-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type paymentRequest struct {
	PayslipID uint              `json:"payslip_id"`
	Amount    decimal.Decimal   `json:"amount"`
	Mode      model.PaymentMode `json:"mode" validate:"required"`
	Date      string            `json:"date"`
}

func (r paymentRequest) input() (usecase.PaymentInput, error) {
	input := usecase.PaymentInput{PayslipID: r.PayslipID, Amount: r.Amount, Mode: r.Mode}
	if r.Date != "" {
		date, err := parseDate(r.Date)
		if err != nil {
			return input, err
		}
		input.Date = &date
	}
	return input, nil
}

type PaymentHandler struct {
	log *zap.Logger
}

func NewPaymentHandler(log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{log: log}
}

func (h *PaymentHandler) usecase(c *fiber.Ctx) *usecase.PaymentUsecase {
	return usecase.NewPaymentUsecase(middleware.TenantDBFrom(c), h.log.With(zap.String("tenant", middleware.TenantCodeFrom(c))))
}

func (h *PaymentHandler) GetAll(c *fiber.Ctx) error {
	payslipID, err := queryID(c, "payslip_id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	employeeID, err := queryID(c, "employee_id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	filter := repository.PaymentFilter{
		PayslipID:  payslipID,
		EmployeeID: employeeID,
		Mode:       model.PaymentMode(c.Query("mode")),
		Settled:    c.QueryBool("settled"),
	}
	if from := c.Query("from"); from != "" {
		t, err := parseDate(from)
		if err != nil {
			return respondError(c, h.log, err)
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := parseDate(to)
		if err != nil {
			return respondError(c, h.log, err)
		}
		// whole day inclusive
		t = t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &t
	}

	payments, err := h.usecase(c).List(filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, "payments", payments)
}

func (h *PaymentHandler) GetByEmployee(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	payments, err := h.usecase(c).ListByEmployee(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, "payments", payments)
}

func (h *PaymentHandler) GetDetail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	payment, err := h.usecase(c).Get(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, "payment", payment)
}

func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var req paymentRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	input, err := req.input()
	if err != nil {
		return respondError(c, h.log, err)
	}
	payment, err := h.usecase(c).Apply(input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, "payment recorded", payment)
}

func (h *PaymentHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req paymentRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	input, err := req.input()
	if err != nil {
		return respondError(c, h.log, err)
	}
	payment, err := h.usecase(c).Update(id, input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, "payment updated", payment)
}

func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.usecase(c).Delete(id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "payment deleted"})
}
