// Package storage opens the cellar database, applies the embedded migrations
// and builds the repositories on top of it.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/winecellar/internal/logging"
	"github.com/dmitrijs2005/winecellar/internal/migrations"
	"github.com/dmitrijs2005/winecellar/internal/repositories/settings"
	"github.com/dmitrijs2005/winecellar/internal/repositories/wines"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Storage bundles the connection and the repositories built on it.
type Storage struct {
	DB       *sql.DB
	Driver   string
	Wines    wines.Repository
	Settings settings.Repository
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

// gooseDialect maps a driver name to the goose dialect and the database/sql
// driver registered for it.
func gooseDialect(driver string) (dialect, sqlDriver string, err error) {
	switch driver {
	case DriverSQLite:
		return "sqlite3", "sqlite", nil
	case DriverPostgres:
		return "pgx", "pgx", nil
	default:
		return "", "", fmt.Errorf("unsupported db driver %q", driver)
	}
}

// RunMigrations applies every pending migration for driver. Running it
// twice is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	dialect, _, err := gooseDialect(driver)
	if err != nil {
		return err
	}
	fsys, err := migrations.ForDialect(driver)
	if err != nil {
		return err
	}

	goose.SetBaseFS(fsys)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Open connects to dsn with driver ("sqlite" or "postgres"), migrates the
// schema and returns the repositories.
func Open(ctx context.Context, driver, dsn string, log logging.Logger) (*Storage, error) {
	if log == nil {
		log = logging.Nop()
	}
	_, sqlDriver, err := gooseDialect(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if driver == DriverSQLite {
		// one writer; also keeps ":memory:" databases on a single connection
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := RunMigrations(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	s := &Storage{DB: db, Driver: driver}
	switch driver {
	case DriverSQLite:
		s.Wines = wines.NewSQLiteRepository(db, log)
		s.Settings = settings.NewSQLiteRepository(db)
	case DriverPostgres:
		s.Wines = wines.NewPostgresRepository(db, log)
		s.Settings = settings.NewPostgresRepository(db)
	}

	log.Debug(ctx, "storage opened", "driver", driver)
	return s, nil
}
