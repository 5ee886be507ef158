package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/akeren/referrly/config"
	"github.com/akeren/referrly/internal/log"
	"github.com/akeren/referrly/internal/models"
	"github.com/akeren/referrly/pkg/migrations"
	"github.com/akeren/referrly/pkg/utils"
)

func main() {
	// stdout carries command output
	logger := log.NewLoggerWithJSONOutputTo(os.Stderr)

	config.InitializeEnvFile(logger) // Load envs early for CLI consistency

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "migrate":
		if err := runMigrations(logger); err != nil {
			logger.Error("Database migration failed", "error", err.Error())
			os.Exit(1)
		}

		logger.Info("Database migrations completed")
		return

	case "subscribe":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: cli subscribe <email>")
			os.Exit(1)
		}

		service, cleanup, err := newWaitlistService(logger)
		if err != nil {
			logger.Error("Failed to set up waitlist store", "error", err.Error())
			os.Exit(1)
		}

		code := runSubscribe(context.Background(), logger, service, args[1], os.Stdout)
		cleanup()
		os.Exit(code)

	case "export":
		service, cleanup, err := newWaitlistService(logger)
		if err != nil {
			logger.Error("Failed to set up waitlist store", "error", err.Error())
			os.Exit(1)
		}

		err = runExport(context.Background(), service, os.Stdout)
		cleanup()
		if err != nil {
			logger.Error("Waitlist export failed", "error", err.Error())
			os.Exit(1)
		}
		return

	case "help", "-h", "--help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: cli <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate            Run database migrations and exit")
	fmt.Println("  subscribe <email>  Add an email to the waitlist and print the outcome")
	fmt.Println("  export             Print every subscribed email, one per line")
}

func runMigrations(logger *log.Logger) error {
	dbCfg := config.NewDBConfigFromEnv()
	db, err := config.NewDatabase(logger, dbCfg)
	if err != nil {
		return fmt.Errorf("connect for migration: %w", err)
	}
	defer config.CloseDatabase(db, logger)

	// SQL migrations target Postgres; local SQLite databases are built from the models.
	if dbCfg.Driver == config.DatabaseDriverSQLite {
		return config.AutoMigrate(logger, db, models.ModelRegistry...)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get SQL DB instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	return migrations.Up(ctx, sqlDB, migrations.Config{
		Dir:    utils.GetEnvTrimmedOrDefault("MIGRATIONS_DIR", migrations.DefaultDir),
		Logger: logger,
	})
}
