package main

import (
	"context"
	"fmt"
	"os"

	"payroll-backend/config"
	"payroll-backend/internal/database"
	"payroll-backend/internal/logger"
	"payroll-backend/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// .env is optional, the process environment wins
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "payroll-seeder",
		Short: "Operator tooling for the payroll control plane",
	}
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(provisionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type env struct {
	cfg     *config.Config
	log     *zap.Logger
	control *gorm.DB
}

func setup() (*env, error) {
	cfg := config.Load()
	log, err := logger.NewLogger(cfg.LogLevel, "console", "payroll-seeder")
	if err != nil {
		return nil, err
	}
	control, err := config.ConnectDB(cfg.ControlDSN)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, control: control}, nil
}

func seedCmd() *cobra.Command {
	var provision bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the super admin and the demo tenant with its admin and cashier",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.log.Sync()

			tenants := usecase.NewTenantUsecase(e.control, nil, e.cfg.TenantDSNTemplate, e.log)
			return database.SeedAll(e.control, tenants, database.SeedOptions{
				SuperAdminEmail:    config.GetEnv("SEED_SUPERADMIN_EMAIL", "superadmin@payroll.local"),
				SuperAdminPassword: config.GetEnv("SEED_SUPERADMIN_PASSWORD", "admin123"),
				ProvisionDemo:      provision,
			}, e.log)
		},
	}
	cmd.Flags().BoolVar(&provision, "provision-demo", config.GetEnvAsBool("SEED_PROVISION_DEMO", false), "also provision the demo tenant database")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the control-plane schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			// ConnectDB migrates tenants and users
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.log.Sync()

			e.log.Info("control plane migrated")
			return nil
		},
	}
}

func provisionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "provision <tenant-code>",
		Short: "Create and migrate the database of a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.log.Sync()

			tenants := usecase.NewTenantUsecase(e.control, nil, e.cfg.TenantDSNTemplate, e.log)
			tenant, err := tenants.Provision(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("tenant %s provisioned in database %s\n", tenant.Code, tenant.DatabaseName)
			return nil
		},
	}
}
