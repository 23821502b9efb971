package config

import (
	"os"
	"path/filepath"

	"fjacquet/asset-tracker/internal/logging"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file in the current
// directory or its parent, if one exists. Variables already set in the
// environment win over the file. It returns the file loaded, or "".
func LoadEnv(logger logging.Logger) string {
	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			if logger != nil {
				logger.WithError(err).Warn("Error loading .env file",
					logging.Field{Key: logging.FieldFile, Value: envFile})
			}
			return ""
		}
		if logger != nil {
			logger.Debug("Loaded environment variables",
				logging.Field{Key: logging.FieldFile, Value: envFile})
		}
		return envFile
	}
	return ""
}
