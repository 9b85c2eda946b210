package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/winecellar/internal/flagx"
)

var knownFlags = []string{"-d", "-db", "-dsn", "-images", "-log-level", "-log-format", "-model"}

// parseFlags populates selected Config fields from command-line flags.
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, so -c/-config never reach this flag set.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.DBDriver, "db", cfg.DBDriver, "database driver (sqlite or postgres)")
	fs.StringVar(&cfg.DBDSN, "dsn", cfg.DBDSN, "database DSN")
	fs.StringVar(&cfg.ImageBackend, "images", cfg.ImageBackend, "image backend (fs or s3)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text, json or zap)")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "default Anthropic model")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
