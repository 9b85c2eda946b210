package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/winecellar/internal/llm"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, DriverSQLite, c.DBDriver)
	assert.Equal(t, ImageBackendFS, c.ImageBackend)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, llm.DefaultModel, c.Model)
	assert.Equal(t, llm.DefaultBaseURL, c.LLMBaseURL)
	assert.Equal(t, 5*time.Second, c.BusyTimeout)
	assert.NotEmpty(t, c.DataDir)
	require.NoError(t, c.Validate())
}

func TestDatabaseDSN(t *testing.T) {
	c := Config{DataDir: "/data", DBDriver: DriverSQLite}
	assert.Equal(t, filepath.Join("/data", "cellar.db"), c.DatabaseDSN())

	c.BusyTimeout = 2 * time.Second
	assert.Equal(t, filepath.Join("/data", "cellar.db")+"?_pragma=busy_timeout(2000)", c.DatabaseDSN())

	c.DBDSN = "file:custom.db"
	assert.Equal(t, "file:custom.db", c.DatabaseDSN())

	c = Config{DataDir: "/data", DBDriver: DriverPostgres}
	assert.Empty(t, c.DatabaseDSN())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, `unknown db driver "mysql"`},
		{"postgres without dsn", func(c *Config) { c.DBDriver = DriverPostgres }, "postgres requires a dsn"},
		{"s3 without bucket", func(c *Config) { c.ImageBackend = ImageBackendS3 }, "requires a bucket"},
		{"unknown backend", func(c *Config) { c.ImageBackend = "ftp" }, `unknown image backend "ftp"`},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }, `unknown log format "xml"`},
		{"unsupported model", func(c *Config) { c.Model = "gpt-4" }, "gpt-4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("several problems reported together", func(t *testing.T) {
		var c Config
		c.LoadDefaults()
		c.DBDriver = "mysql"
		c.LogFormat = "xml"
		err := c.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mysql")
		assert.Contains(t, err.Error(), "xml")
	})
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Setenv("CELLAR_DATA_DIR", "/from/env")
	t.Setenv("CELLAR_LOG_LEVEL", "debug")
	t.Setenv("ANTHROPIC_API_KEY", "sk-env")

	path := filepath.Join(t.TempDir(), "cellar.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /from/file\nlog_format: json\n"), 0o600))

	os.Args = []string{"cellar", "-c", path, "-log-format", "zap"}
	cfg := LoadConfig()

	assert.Equal(t, "/from/file", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "sk-env", cfg.APIKey)
	assert.Equal(t, "zap", cfg.LogFormat)
}
