package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/winecellar/internal/config"
	"github.com/dmitrijs2005/winecellar/internal/imagestore"
	"github.com/dmitrijs2005/winecellar/internal/llm"
	"github.com/dmitrijs2005/winecellar/internal/logging"
	"github.com/dmitrijs2005/winecellar/internal/repositories/settings"
	"github.com/dmitrijs2005/winecellar/internal/services"
	"github.com/dmitrijs2005/winecellar/internal/sommelier"
	"github.com/dmitrijs2005/winecellar/internal/storage"
	"github.com/dmitrijs2005/winecellar/internal/vision"
)

type App struct {
	config   *config.Config
	storage  *storage.Storage
	cellar   services.CellarService
	settings *settings.Store
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp wires storage, the image store and the model clients from c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := logging.New(logging.Format(c.LogFormat), c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	if c.DBDriver == config.DriverSQLite {
		if err := os.MkdirAll(c.DataDir, 0o750); err != nil {
			return nil, fmt.Errorf("error creating data dir: %w", err)
		}
	}

	st, err := storage.Open(ctx, c.DBDriver, c.DatabaseDSN(), log)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	images, err := newImageStore(ctx, c)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	prefs := settings.NewStore(st.Settings, llm.StaticCredentials{APIKey: c.APIKey, Model: c.Model})
	client := llm.NewClient(prefs, llm.WithBaseURL(c.LLMBaseURL), llm.WithLogger(log))

	cellar := services.NewCellarService(
		st.Wines,
		images,
		sommelier.NewService(client, log),
		vision.NewService(client, log),
		log,
	)

	return &App{
		config:   c,
		storage:  st,
		cellar:   cellar,
		settings: prefs,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

func newImageStore(ctx context.Context, c *config.Config) (imagestore.Store, error) {
	switch c.ImageBackend {
	case config.ImageBackendS3:
		return imagestore.NewS3Store(ctx, c.S3)
	case config.ImageBackendFS:
		return imagestore.NewFSStore(c.DataDir)
	default:
		return nil, fmt.Errorf("unknown image backend %q", c.ImageBackend)
	}
}

// Run starts the shell and closes the database when it returns.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.log.Error(ctx, "error closing storage", "error", err)
		}
	}()

	fmt.Fprintln(a.out, "Wine cellar (type 'help' for commands)")
	runREPL(ctx, a, a.reader)
}

func (a *App) Close() error {
	var errs []error
	if a.storage != nil {
		errs = append(errs, a.storage.Close())
	}
	if z, ok := a.log.(*logging.ZapLogger); ok {
		// stderr sync fails on some terminals; nothing to do about it
		_ = z.Sync()
	}
	return errors.Join(errs...)
}
