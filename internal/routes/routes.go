package routes

import (
	"payroll-backend/config"
	"payroll-backend/internal/cache"
	"payroll-backend/internal/middleware"
	"payroll-backend/internal/repository"
	"payroll-backend/internal/tenancy"
	"payroll-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps is everything the route groups need, built once in main.
type Deps struct {
	Config  *config.Config
	Control *gorm.DB
	Router  *tenancy.Router
	Cache   *cache.DashboardCache
	Log     *zap.Logger

	Users   *usecase.UserUsecase
	Tenants *usecase.TenantUsecase
}

func NewDeps(cfg *config.Config, control *gorm.DB, router *tenancy.Router, dc *cache.DashboardCache, log *zap.Logger) *Deps {
	users := usecase.NewUserUsecase(
		repository.NewUserRepository(control),
		repository.NewTenantRepository(control),
		cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, log,
	)
	return &Deps{
		Config:  cfg,
		Control: control,
		Router:  router,
		Cache:   dc,
		Log:     log,
		Users:   users,
		Tenants: usecase.NewTenantUsecase(control, router, cfg.TenantDSNTemplate, log),
	}
}

func Setup(app *fiber.App, d *Deps) {
	SetupAuthRoutes(app, d)
	SetupUserRoutes(app, d)
	SetupTenantRoutes(app, d)
	SetupEmployeeRoutes(app, d)
	SetupPayCycleRoutes(app, d)
	SetupPayslipRoutes(app, d)
	SetupPaymentRoutes(app, d)
	SetupDashboardRoutes(app, d)
}

// tenantGroup is an authenticated group bound to the caller's tenant database.
// Writes under it drop the tenant's cached dashboard.
func tenantGroup(app *fiber.App, prefix string, d *Deps) fiber.Router {
	return app.Group(prefix,
		middleware.Auth(d.Config.JWTSecret),
		middleware.TenantDB(d.Router),
		middleware.InvalidateDashboard(d.Cache, d.Log),
	)
}
