package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/akeren/referrly/internal/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DatabaseDriverPostgres = "postgres"
	DatabaseDriverSQLite   = "sqlite"
)

type DBConfig struct {
	Driver          string // postgres (default) or sqlite
	SQLitePath      string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	SSLMode         string // Default: "require" for prod safety
}

// NewDBConfigFromEnv returns pool defaults plus the driver named by APP_DATABASE_DRIVER.
func NewDBConfigFromEnv() *DBConfig {
	return &DBConfig{
		Driver:          strings.ToLower(sanitizeEnv(GetValueFromEnvironmentVariable("APP_DATABASE_DRIVER", DatabaseDriverPostgres))),
		SQLitePath:      sanitizeEnv(GetValueFromEnvironmentVariable("SQLITE_PATH", "referrly.db")),
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: time.Minute,
		SSLMode:         "require",
	}
}

func NewDatabase(logger *log.Logger, cfg *DBConfig) (*gorm.DB, error) {
	if cfg == nil {
		cfg = NewDBConfigFromEnv()
	}

	dialector, err := openDialector(logger, cfg)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger(),
	})
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		logger.Error("Failed to get database instance", "error", err)
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.Driver == DatabaseDriverSQLite {
		// SQLite allows one writer; a single connection also keeps ":memory:" one database.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		logger.Error("Database ping failed", "error", err)
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Database connection established successfully", "driver", cfg.Driver)
	return gdb, nil
}

func openDialector(logger *log.Logger, cfg *DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", DatabaseDriverPostgres:
		cfg.Driver = DatabaseDriverPostgres
		dsn, err := postgresDSN(logger, cfg.SSLMode)
		if err != nil {
			return nil, err
		}
		return postgres.Open(dsn), nil
	case DatabaseDriverSQLite:
		logger.Info("Using SQLite database", "path", cfg.SQLitePath)
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported APP_DATABASE_DRIVER %q (allowed: postgres, sqlite)", cfg.Driver)
	}
}

func gormLogger() gormlogger.Interface {
	if strings.EqualFold(strings.TrimSpace(GetValueFromEnvironmentVariable("LOG_LEVEL", "")), "debug") {
		return gormlogger.Default.LogMode(gormlogger.Info)
	}
	return gormlogger.Default.LogMode(gormlogger.Warn)
}

// postgresDSN prefers APP_DATABASE_URL and otherwise assembles a DSN from POSTGRES_*.
func postgresDSN(logger *log.Logger, defaultSSLMode string) (string, error) {
	if url := sanitizeEnv(GetValueFromEnvironmentVariable("APP_DATABASE_URL", "")); url != "" {
		logger.Info("Using APP_DATABASE_URL for database connection")
		return url, nil
	}

	params := getDatabaseEnvParams()
	if params.SSLMode == "" {
		params.SSLMode = defaultSSLMode
	}

	if missing := params.missing(); len(missing) > 0 {
		logger.Error("Missing required database environment variables", "missing_vars", strings.Join(missing, ", "))
		return "", fmt.Errorf("missing required database env vars: %s", strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(params.Port)
	if err != nil {
		logger.Error("Invalid POSTGRES_PORT", "error", err)
		return "", fmt.Errorf("invalid POSTGRES_PORT %q: %w", params.Port, err)
	}

	logger.Info("Connecting to database",
		"host", params.Host,
		"port", port,
		"user", params.User,
		"dbname", params.DBName,
		"sslmode", params.SSLMode,
	)

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		params.Host, port, params.User, params.Password, params.DBName, params.SSLMode,
	), nil
}

type databaseEnvParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func getDatabaseEnvParams() databaseEnvParams {
	return databaseEnvParams{
		Host:     sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_HOST", "")),
		Port:     sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_PORT", "5432")),
		User:     sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_USER", "")),
		Password: sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_PASSWORD", "")),
		DBName:   sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_DB_NAME", "")),
		SSLMode:  sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_SSLMODE", "")),
	}
}

func (p databaseEnvParams) missing() []string {
	var missing []string
	for name, value := range map[string]string{
		"POSTGRES_HOST":    p.Host,
		"POSTGRES_PORT":    p.Port,
		"POSTGRES_USER":    p.User,
		"POSTGRES_DB_NAME": p.DBName,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// sanitizeEnv strips whitespace and one pair of matching surrounding quotes.
func sanitizeEnv(v string) string {
	s := strings.TrimSpace(v)

	if len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		s = s[1 : len(s)-1]
	}

	return s
}

func AutoMigrate(logger *log.Logger, db *gorm.DB, models ...any) error {
	if db == nil {
		logger.Error("Cannot migrate: db is empty")
		return fmt.Errorf("cannot migrate: db is empty")
	}

	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Database migration failed", "error", err)
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	logger.Info("Database migration completed successfully")

	return nil
}

func CloseDatabase(db *gorm.DB, logger *log.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get SQL DB instance", "error", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
		return
	}

	logger.Info("Database closed successfully")
}
