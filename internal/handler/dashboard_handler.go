package handler

import (
	"payroll-backend/internal/cache"
	"payroll-backend/internal/middleware"
	"payroll-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	cache *cache.DashboardCache
	log   *zap.Logger
}

func NewDashboardHandler(c *cache.DashboardCache, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{cache: c, log: log}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	uc := usecase.NewDashboardUsecase(middleware.TenantDBFrom(c), h.cache, middleware.TenantCodeFrom(c), h.log)
	stats, err := uc.Get(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, "dashboard", stats)
}
