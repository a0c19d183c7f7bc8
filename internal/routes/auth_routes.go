package routes

import (
	"payroll-backend/internal/delivery/http"
	"payroll-backend/internal/handler"
	"payroll-backend/internal/middleware"
	"payroll-backend/internal/model"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewAuthHandler(d.Users, d.Log)
	limiter := middleware.NewRateLimiter(d.Config.LoginRatePerMinute)

	app.Post("/api/login", limiter.Handler(), hdl.Login)
	app.Post("/api/refresh-token", limiter.Handler(), hdl.RefreshToken)
}

func SetupUserRoutes(app *fiber.App, d *Deps) {
	hdl := http.NewUserHandler(d.Users, d.Log)

	api := app.Group("/api/users", middleware.Auth(d.Config.JWTSecret))
	api.Get("/me", hdl.Me)

	admin := api.Group("", middleware.Role(model.RoleSuperAdmin, model.RoleAdmin), middleware.Permission(middleware.ManageUsers))
	admin.Get("/", hdl.GetAll)
	admin.Post("/", hdl.Register)
}
