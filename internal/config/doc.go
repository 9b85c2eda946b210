// Package config loads runtime configuration for the cellar CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, then the process environment
//     (CELLAR_* variables and ANTHROPIC_API_KEY).
//  3. Optional JSON or YAML file selected with -c or -config. The format
//     follows the extension (.yaml/.yml is YAML, anything else JSON).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-d string        data directory (database file and wine_images/)
//	-db string       database driver: sqlite or postgres
//	-dsn string      database DSN (defaults to <data dir>/cellar.db for sqlite)
//	-images string   image backend: fs or s3
//	-log-level       debug, info, warn or error
//	-log-format      text, json or zap
//	-model string    default Anthropic model
//
// # File schema
//
//	{
//	  "data_dir": "/home/me/.winecellar",
//	  "db_driver": "sqlite",
//	  "image_backend": "s3",
//	  "s3": {"region": "auto", "endpoint": "https://...", "bucket": "cellar", "use_path_style": true},
//	  "log_format": "json",
//	  "anthropic_model": "claude-sonnet-4-20250514",
//	  "db_busy_timeout": "5s"
//	}
//
// A malformed config file panics, matching the flag parser.
package config
