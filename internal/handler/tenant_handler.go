package handler

import (
	"payroll-backend/internal/middleware"
	"payroll-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TenantHandler struct {
	tenants *usecase.TenantUsecase
	log     *zap.Logger
}

func NewTenantHandler(tenants *usecase.TenantUsecase, log *zap.Logger) *TenantHandler {
	return &TenantHandler{tenants: tenants, log: log}
}

func (h *TenantHandler) Create(c *fiber.Ctx) error {
	var input usecase.CreateTenantInput
	if err := bind(c, &input); err != nil {
		return respondError(c, h.log, err)
	}
	tenant, err := h.tenants.Create(input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, "tenant created", tenant)
}

func (h *TenantHandler) GetAll(c *fiber.Ctx) error {
	tenants, err := h.tenants.List(middleware.ActorFrom(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, "tenants", tenants)
}

func (h *TenantHandler) GetDetail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	tenant, err := h.tenants.Get(middleware.ActorFrom(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, "tenant", tenant)
}

func (h *TenantHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	var input usecase.UpdateTenantInput
	if err := bind(c, &input); err != nil {
		return respondError(c, h.log, err)
	}
	tenant, err := h.tenants.Update(middleware.ActorFrom(c), id, input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, "tenant updated", tenant)
}

func (h *TenantHandler) Provision(c *fiber.Ctx) error {
	tenant, err := h.tenants.Provision(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, "tenant provisioned", tenant)
}
