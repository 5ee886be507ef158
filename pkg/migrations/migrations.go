package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	DefaultDir   = "migrations"
	DefaultTable = "schema_migrations"
)

type migrator interface {
	Up() error
	Close() (sourceErr error, databaseErr error)
}

type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Config struct {
	Dir             string
	MigrationsTable string
	Logger          Logger
}

func (cfg Config) withDefaults() Config {
	if strings.TrimSpace(cfg.Dir) == "" {
		cfg.Dir = DefaultDir
	}
	if strings.TrimSpace(cfg.MigrationsTable) == "" {
		cfg.MigrationsTable = DefaultTable
	}
	return cfg
}

func (cfg Config) info(msg string, args ...any) {
	if cfg.Logger != nil {
		cfg.Logger.Info(msg, args...)
	}
}

func (cfg Config) warn(msg string, args ...any) {
	if cfg.Logger != nil {
		cfg.Logger.Warn(msg, args...)
	}
}

type runner struct {
	newDriver   func(db *sql.DB, cfg Config) (database.Driver, error)
	newMigrator func(sourceURL string, driver database.Driver) (migrator, error)
}

var postgresRunner = runner{
	newDriver: func(db *sql.DB, cfg Config) (database.Driver, error) {
		return postgres.WithInstance(db, &postgres.Config{MigrationsTable: cfg.MigrationsTable})
	},
	newMigrator: func(sourceURL string, driver database.Driver) (migrator, error) {
		return migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	},
}

// Up applies every pending *.up.sql file in cfg.Dir to a Postgres database.
func Up(ctx context.Context, db *sql.DB, cfg Config) error {
	return postgresRunner.up(ctx, db, cfg)
}

func (r runner) up(ctx context.Context, db *sql.DB, cfg Config) error {
	if db == nil {
		return fmt.Errorf("migrations: db is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg = cfg.withDefaults()

	absDir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return fmt.Errorf("migrations: resolve dir: %w", err)
	}
	if err := ensureUpMigrations(absDir); err != nil {
		return err
	}

	driver, err := r.newDriver(db, cfg)
	if err != nil {
		return fmt.Errorf("migrations: postgres driver: %w", err)
	}

	m, err := r.newMigrator(sourceURL(absDir), driver)
	if err != nil {
		return fmt.Errorf("migrations: init: %w", err)
	}

	var closeOnce sync.Once
	closeMigrator := func() {
		closeOnce.Do(func() {
			srcErr, dbErr := m.Close()
			if srcErr != nil {
				cfg.warn("Migrations source close error", "error", srcErr)
			}
			if dbErr != nil {
				cfg.warn("Migrations db close error", "error", dbErr)
			}
		})
	}
	defer closeMigrator()

	cfg.info("Running SQL migrations", "dir", absDir, "table", cfg.MigrationsTable)

	errCh := make(chan error, 1)
	go func() {
		errCh <- m.Up()
	}()

	select {
	case <-ctx.Done():
		// migrate has no context support; closing is the only way to interrupt it.
		closeMigrator()
		return ctx.Err()
	case err := <-errCh:
		switch {
		case errors.Is(err, migrate.ErrNoChange):
			cfg.info("No migrations to apply")
			return nil
		case err != nil:
			return fmt.Errorf("migrations: up: %w", err)
		}
	}

	cfg.info("Migrations applied successfully")
	return nil
}

// sourceURL builds a file:// URL with forward slashes and escaping.
func sourceURL(absDir string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(absDir)}).String()
}

func ensureUpMigrations(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("migrations: scan dir: %w", err)
	}
	if len(matches) == 0 {
		if _, statErr := os.Stat(dir); statErr != nil {
			return fmt.Errorf("migrations: dir %s: %w", dir, statErr)
		}
		return fmt.Errorf("migrations: no *.up.sql files in %s", dir)
	}
	return nil
}
