package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from a .env file without overriding ones that
// are already set. ENV_PATH, when present, takes precedence over defaultPath.
// A missing file is an error only when APP_ENV is empty or "local".
func LoadDotEnv(defaultPath string) error {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		slog.Debug("ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		envPath = defaultPath
	}

	err := godotenv.Load(envPath)
	if err != nil {
		appEnv := os.Getenv("APP_ENV")
		if appEnv == "local" || appEnv == "" {
			return err
		}
		slog.Debug("Skipping .env ...", "env", appEnv)
	}

	return nil
}
