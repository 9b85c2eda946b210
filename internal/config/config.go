package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/winecellar/internal/imagestore"
	"github.com/dmitrijs2005/winecellar/internal/llm"
	"github.com/dmitrijs2005/winecellar/internal/logging"
)

const (
	ImageBackendFS = "fs"
	ImageBackendS3 = "s3"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds runtime settings for the cellar CLI.
type Config struct {
	DataDir  string
	DBDriver string
	DBDSN    string

	ImageBackend string
	S3           imagestore.S3Config

	LogFormat string
	LogLevel  string

	// APIKey and Model are fallbacks; values saved through the settings
	// command take precedence.
	APIKey     string
	Model      string
	LLMBaseURL string

	// BusyTimeout is how long SQLite waits on a locked database.
	BusyTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = defaultDataDir()
	c.DBDriver = DriverSQLite
	c.DBDSN = ""
	c.ImageBackend = ImageBackendFS
	c.S3 = imagestore.S3Config{Region: "us-east-1"}
	c.LogFormat = string(logging.FormatText)
	c.LogLevel = "warn"
	c.APIKey = ""
	c.Model = llm.DefaultModel
	c.LLMBaseURL = llm.DefaultBaseURL
	c.BusyTimeout = 5 * time.Second
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".winecellar"
	}
	return filepath.Join(home, ".winecellar")
}

// DatabaseDSN returns the configured DSN, or the SQLite file inside the
// data directory when none is set.
func (c *Config) DatabaseDSN() string {
	if c.DBDSN != "" || c.DBDriver != DriverSQLite {
		return c.DBDSN
	}
	dsn := filepath.Join(c.DataDir, "cellar.db")
	if c.BusyTimeout > 0 {
		dsn += fmt.Sprintf("?_pragma=busy_timeout(%d)", c.BusyTimeout.Milliseconds())
	}
	return dsn
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	var errs []error
	switch c.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DBDSN == "" {
			errs = append(errs, errors.New("postgres requires a dsn"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown db driver %q", c.DBDriver))
	}

	switch c.ImageBackend {
	case ImageBackendFS:
	case ImageBackendS3:
		if c.S3.Bucket == "" {
			errs = append(errs, errors.New("s3 image backend requires a bucket"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown image backend %q", c.ImageBackend))
	}

	switch logging.Format(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON, logging.FormatZap:
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}

	if c.Model != "" && !llm.IsSupportedModel(c.Model) {
		errs = append(errs, fmt.Errorf("%w: %s", llm.ErrUnsupportedModel, c.Model))
	}
	return errors.Join(errs...)
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// environment, the config file and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
