package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/akeren/referrly/internal/log"
	"github.com/joho/godotenv"
)

const (
	AppEnvKey = "APP_ENV"

	// EnvFilesKey lists dotenv files to load, comma separated. Earlier files win.
	EnvFilesKey = "ENV_FILES"
)

var autoMigrateEnvs = []string{"", "dev", "development", "local", "test", "testing"}

// InitializeEnvFile loads dotenv files into the process environment. Variables
// already set are never overridden. SKIP_DOTENV=true turns it off.
func InitializeEnvFile(logger *log.Logger) {
	if strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_DOTENV")), "true") {
		logger.Info("Skipping .env load", "reason", "SKIP_DOTENV=true")
		return
	}

	files := envFiles()
	loaded := make([]string, 0, len(files))

	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("Env file not present", "file", file)
				continue
			}
			logger.Warn("Failed to load env file", "file", file, "error", err)
			continue
		}
		loaded = append(loaded, file)
	}

	if len(loaded) == 0 {
		logger.Info("No env file loaded; using process environment only")
		return
	}
	logger.Info("Environment loaded", "files", loaded)
}

func envFiles() []string {
	files := splitCSV(os.Getenv(EnvFilesKey))
	if len(files) == 0 {
		return []string{".env"}
	}
	return files
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetValueFromEnvironmentVariable returns the raw value of key, or defaultValue
// when key is unset. A key set to "" stays "".
func GetValueFromEnvironmentVariable(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetAppEnv() string {
	return strings.ToLower(strings.TrimSpace(os.Getenv(AppEnvKey)))
}

func IsProduction() bool {
	switch GetAppEnv() {
	case "prod", "production":
		return true
	}
	return false
}

// ValidateAutoMigrateAllowed keeps --auto-migrate out of shared environments.
func ValidateAutoMigrateAllowed(appEnv string) error {
	env := strings.ToLower(strings.TrimSpace(appEnv))
	for _, allowed := range autoMigrateEnvs {
		if env == allowed {
			return nil
		}
	}
	return fmt.Errorf("--auto-migrate is not allowed when %s=%q (allowed: %s)", AppEnvKey, env, strings.Join(autoMigrateEnvs[1:], ", "))
}
