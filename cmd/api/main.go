package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"payroll-backend/config"
	"payroll-backend/internal/cache"
	"payroll-backend/internal/logger"
	"payroll-backend/internal/repository"
	"payroll-backend/internal/routes"
	"payroll-backend/internal/tenancy"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	cfg := config.Load()
	zlog, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, "payroll-api")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	control, err := config.ConnectDB(cfg.ControlDSN)
	if err != nil {
		zlog.Fatal("control database", zap.Error(err))
	}
	zlog.Info("control database connected")

	router, err := tenancy.NewRouter(repository.NewTenantRepository(control), config.Open, cfg.TenantCacheSize, zlog)
	if err != nil {
		zlog.Fatal("tenant router", zap.Error(err))
	}
	defer router.Close()

	dashboards := cache.NewDashboardCache(config.ConnectRedis(cfg, zlog), cfg.DashboardCacheTTL, zlog)

	app := fiber.New(fiber.Config{AppName: "payroll-api"})

	// Global middleware
	app.Use(cors.New())
	app.Use(fiberlogger.New())

	routes.Setup(app, routes.NewDeps(cfg, control, router, dashboards, zlog))

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		zlog.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			zlog.Error("shutdown", zap.Error(err))
		}
	}()

	zlog.Info("server listening", zap.String("port", cfg.AppPort))
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		zlog.Error("listen", zap.Error(err))
	}
}
