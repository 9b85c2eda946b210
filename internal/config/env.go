package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const dotEnvFile = ".env"

// loadDotEnv merges path into the process environment. Variables that are
// already set win. A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// parseEnv overlays Config with CELLAR_* variables and ANTHROPIC_API_KEY.
// Values that fail to parse are ignored.
func parseEnv(cfg *Config) {
	if err := loadDotEnv(dotEnvFile); err != nil {
		panic(err)
	}

	cfg.DataDir = getenv("CELLAR_DATA_DIR", cfg.DataDir)
	cfg.DBDriver = getenv("CELLAR_DB_DRIVER", cfg.DBDriver)
	cfg.DBDSN = getenv("CELLAR_DB_DSN", cfg.DBDSN)

	cfg.ImageBackend = getenv("CELLAR_IMAGE_BACKEND", cfg.ImageBackend)
	cfg.S3.Region = getenv("CELLAR_S3_REGION", cfg.S3.Region)
	cfg.S3.Endpoint = getenv("CELLAR_S3_ENDPOINT", cfg.S3.Endpoint)
	cfg.S3.AccessKey = getenv("CELLAR_S3_ACCESS_KEY", cfg.S3.AccessKey)
	cfg.S3.SecretKey = getenv("CELLAR_S3_SECRET_KEY", cfg.S3.SecretKey)
	cfg.S3.Bucket = getenv("CELLAR_S3_BUCKET", cfg.S3.Bucket)
	cfg.S3.UsePathStyle = getenvBool("CELLAR_S3_PATH_STYLE", cfg.S3.UsePathStyle)

	cfg.LogFormat = getenv("CELLAR_LOG_FORMAT", cfg.LogFormat)
	cfg.LogLevel = getenv("CELLAR_LOG_LEVEL", cfg.LogLevel)

	cfg.APIKey = getenv("ANTHROPIC_API_KEY", cfg.APIKey)
	cfg.Model = getenv("CELLAR_MODEL", cfg.Model)
	cfg.LLMBaseURL = getenv("CELLAR_LLM_BASE_URL", cfg.LLMBaseURL)

	cfg.BusyTimeout = getenvDuration("CELLAR_DB_BUSY_TIMEOUT", cfg.BusyTimeout)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
