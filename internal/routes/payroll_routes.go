package routes

import (
	"payroll-backend/internal/handler"
	"payroll-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupEmployeeRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewEmployeeHandler(d.Log)

	api := tenantGroup(app, "/api/employees", d)
	api.Get("/", middleware.Permission(middleware.ViewPayroll), hdl.GetAll)
	api.Get("/:id", middleware.Permission(middleware.ViewPayroll), hdl.GetDetail)

	manage := middleware.Permission(middleware.ManageEmployees)
	api.Post("/", manage, hdl.Create)
	api.Put("/:id", manage, hdl.Update)
	api.Patch("/:id/toggle-active", manage, hdl.ToggleActive)
	api.Delete("/:id", manage, hdl.Delete)
}

func SetupPayCycleRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewPayCycleHandler(d.Tenants, d.Log)

	api := tenantGroup(app, "/api/pay-cycles", d)
	view := middleware.Permission(middleware.ViewPayroll)
	api.Get("/", view, hdl.GetAll)
	api.Get("/:id", view, hdl.GetDetail)
	api.Get("/:id/export", view, hdl.Export)

	manage := middleware.Permission(middleware.ManageCycles)
	api.Post("/", manage, hdl.Create)
	api.Post("/generate-monthly", manage, hdl.GenerateMonthly)
	api.Put("/:id", manage, hdl.Update)
	api.Delete("/:id", manage, hdl.Delete)
	api.Post("/:id/generate", manage, hdl.Generate)
	api.Post("/:id/approve", manage, hdl.Approve)
	api.Post("/:id/close", manage, hdl.Close)
}

func SetupPayslipRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewPayslipHandler(d.Tenants, d.Log)

	api := tenantGroup(app, "/api/payslips", d)
	view := middleware.Permission(middleware.ViewPayroll)
	api.Get("/", view, hdl.GetAll)
	api.Get("/:id", view, hdl.GetDetail)
	api.Get("/:id/statement", view, hdl.Statement)
}

func SetupPaymentRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewPaymentHandler(d.Log)

	api := tenantGroup(app, "/api/payments", d)
	view := middleware.Permission(middleware.ViewPayroll)
	api.Get("/", view, hdl.GetAll)
	api.Get("/employee/:id", view, hdl.GetByEmployee)
	api.Get("/:id", view, hdl.GetDetail)

	record := middleware.Permission(middleware.RecordPayments)
	api.Post("/", record, hdl.Create)
	api.Put("/:id", record, hdl.Update)
	api.Delete("/:id", record, hdl.Delete)
}

func SetupDashboardRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewDashboardHandler(d.Cache, d.Log)

	api := tenantGroup(app, "/api/dashboard", d)
	api.Get("/", middleware.Permission(middleware.ViewPayroll), hdl.GetStats)
}
