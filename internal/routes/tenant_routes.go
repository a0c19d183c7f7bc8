package routes

import (
	"payroll-backend/internal/handler"
	"payroll-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupTenantRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewTenantHandler(d.Tenants, d.Log)

	api := app.Group("/api/tenants", middleware.Auth(d.Config.JWTSecret))
	api.Get("/", hdl.GetAll)
	api.Get("/:id", hdl.GetDetail)
	api.Put("/:id", middleware.Permission(middleware.ManageUsers), hdl.Update)

	admin := api.Group("", middleware.Permission(middleware.ManageTenants))
	admin.Post("/", hdl.Create)
	admin.Post("/:code/provision", hdl.Provision)
}
