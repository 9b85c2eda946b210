package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/winecellar/internal/flagx"
	"github.com/dmitrijs2005/winecellar/internal/timex"
)

// FileS3 is the s3 block of the config file.
type FileS3 struct {
	Region       string `json:"region" yaml:"region"`
	Endpoint     string `json:"endpoint" yaml:"endpoint"`
	AccessKey    string `json:"access_key" yaml:"access_key"`
	SecretKey    string `json:"secret_key" yaml:"secret_key"`
	Bucket       string `json:"bucket" yaml:"bucket"`
	UsePathStyle *bool  `json:"use_path_style" yaml:"use_path_style"`
}

// FileConfig is a DTO used exclusively for config file unmarshalling.
// Empty fields leave the current value alone.
type FileConfig struct {
	DataDir      string         `json:"data_dir" yaml:"data_dir"`
	DBDriver     string         `json:"db_driver" yaml:"db_driver"`
	DBDSN        string         `json:"db_dsn" yaml:"db_dsn"`
	ImageBackend string         `json:"image_backend" yaml:"image_backend"`
	S3           FileS3         `json:"s3" yaml:"s3"`
	LogFormat    string         `json:"log_format" yaml:"log_format"`
	LogLevel     string         `json:"log_level" yaml:"log_level"`
	APIKey       string         `json:"anthropic_api_key" yaml:"anthropic_api_key"`
	Model        string         `json:"anthropic_model" yaml:"anthropic_model"`
	LLMBaseURL   string         `json:"llm_base_url" yaml:"llm_base_url"`
	BusyTimeout  timex.Duration `json:"db_busy_timeout" yaml:"db_busy_timeout"`
}

// parseFile overlays Config with values from the file named by -c/-config.
// It panics on read or unmarshal errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.DBDriver, fc.DBDriver)
	setString(&cfg.DBDSN, fc.DBDSN)
	setString(&cfg.ImageBackend, fc.ImageBackend)

	setString(&cfg.S3.Region, fc.S3.Region)
	setString(&cfg.S3.Endpoint, fc.S3.Endpoint)
	setString(&cfg.S3.AccessKey, fc.S3.AccessKey)
	setString(&cfg.S3.SecretKey, fc.S3.SecretKey)
	setString(&cfg.S3.Bucket, fc.S3.Bucket)
	if fc.S3.UsePathStyle != nil {
		cfg.S3.UsePathStyle = *fc.S3.UsePathStyle
	}

	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.APIKey, fc.APIKey)
	setString(&cfg.Model, fc.Model)
	setString(&cfg.LLMBaseURL, fc.LLMBaseURL)

	if fc.BusyTimeout.Duration > 0 {
		cfg.BusyTimeout = fc.BusyTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
