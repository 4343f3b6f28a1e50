package sqlite

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"rms/internal/config"
	"rms/internal/domain"
)

// Engine owns the database file and its bootstrap.
// Each operation opens and closes its own Connection.
type Engine struct {
	cfg    config.DatabaseConfig
	base   *zap.SugaredLogger
	logger *zap.SugaredLogger
}

// NewEngine creates an Engine for the configured database file
func NewEngine(cfg config.DatabaseConfig, logger *zap.SugaredLogger) *Engine {
	return &Engine{
		cfg:    cfg,
		base:   logger,
		logger: logger.With(zap.String("database", cfg.Path)),
	}
}

// Path returns the database file
func (e *Engine) Path() string {
	return e.cfg.Path
}

// Connect creates the database file if needed and opens a Connection to it.
// The caller must close the Connection.
func (e *Engine) Connect(ctx context.Context) (*Connection, error) {
	if err := e.Create(); err != nil {
		return nil, err
	}

	return Open(ctx, e.cfg.Path, e.cfg.BusyTimeout, e.base)
}

// Create creates an empty database file and its directory unless they exist
func (e *Engine) Create() error {
	if dir := filepath.Dir(e.cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.NewConnectionError("create "+e.cfg.Path, err)
		}
	}

	f, err := os.OpenFile(e.cfg.Path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return domain.NewConnectionError("create "+e.cfg.Path, err)
	}

	return errors.Wrap(f.Close(), "can't close database file")
}

// Remove deletes the database file and its journal files.
// A missing file is not an error.
func (e *Engine) Remove() error {
	for _, suffix := range []string{"", "-journal", "-wal", "-shm"} {
		err := os.Remove(e.cfg.Path + suffix)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return errors.Wrapf(err, "can't remove %s", e.cfg.Path+suffix)
		}
	}

	e.logger.Info("Removed database")

	return nil
}

// CreateTables runs a DDL script. It uses schemaPath if given, the
// configured schema script otherwise and falls back to DefaultSchema.
func (e *Engine) CreateTables(ctx context.Context, schemaPath string) error {
	script, source, err := e.script(schemaPath, e.cfg.Schema, DefaultSchema())
	if err != nil {
		return err
	}

	if err := e.runScript(ctx, "create tables", script); err != nil {
		return err
	}

	e.logger.Infow("Created tables", "source", source)

	return nil
}

// Populate runs a data script with foreign keys enabled. It uses dataPath if
// given, the configured data script otherwise and falls back to the seed
// data embedded in the binary.
func (e *Engine) Populate(ctx context.Context, dataPath string) error {
	script, source, err := e.script(dataPath, e.cfg.Data, defaultData)
	if err != nil {
		return err
	}

	if err := e.runScript(ctx, "populate tables", script); err != nil {
		return err
	}

	e.logger.Infow("Populated tables", "source", source)

	return nil
}

// Clear deletes every row and keeps the schema
func (e *Engine) Clear(ctx context.Context) error {
	c, err := e.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	tx, err := c.conn.BeginTxx(ctx, nil)
	if err != nil {
		return c.fail("clear tables", err)
	}

	for _, name := range clearOrder {
		if _, err := tx.ExecContext(ctx, `DELETE FROM "`+name+`"`); err != nil {
			_ = tx.Rollback()
			return c.fail("clear table "+name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return c.fail("clear tables", err)
	}

	e.logger.Info("Cleared tables")

	return nil
}

// CreateUserTable creates the user table
func (e *Engine) CreateUserTable(ctx context.Context) bool {
	return e.createTable(ctx, "user")
}

// CreateRestaurantTable creates the restaurant table
func (e *Engine) CreateRestaurantTable(ctx context.Context) bool {
	return e.createTable(ctx, "restaurant")
}

// CreateRestaurantUserTable creates the staffing table.
// The user and restaurant tables must exist.
func (e *Engine) CreateRestaurantUserTable(ctx context.Context) bool {
	return e.createTable(ctx, "restaurantUser")
}

// CreateVendorTable creates the vendor table
func (e *Engine) CreateVendorTable(ctx context.Context) bool {
	return e.createTable(ctx, "vendor")
}

// CreateItemTable creates the item table
func (e *Engine) CreateItemTable(ctx context.Context) bool {
	return e.createTable(ctx, "item")
}

// CreateStockTable creates the stock table
func (e *Engine) CreateStockTable(ctx context.Context) bool {
	return e.createTable(ctx, "stock")
}

// CreateTablesProgrammatically creates every table with the per-table
// routines and reports whether all of them succeeded.
func (e *Engine) CreateTablesProgrammatically(ctx context.Context) bool {
	creators := []func(context.Context) bool{
		e.CreateUserTable,
		e.CreateRestaurantTable,
		e.CreateRestaurantUserTable,
		e.CreateVendorTable,
		e.CreateItemTable,
		e.CreateStockTable,
	}

	ok := true
	for _, create := range creators {
		if !create(ctx) {
			ok = false
		}
	}

	return ok
}

// createTable creates one table in its own session.
// An existing table is reported as failure.
func (e *Engine) createTable(ctx context.Context, name string) bool {
	c, err := e.Connect(ctx)
	if err != nil {
		e.logger.Warnw("Can't create table", "table", name, zap.Error(err))
		return false
	}
	defer func() { _ = c.Close() }()

	if _, _, err := c.exec(ctx, "create table "+name, lookupTable(name).createStmt(false)); err != nil {
		e.logger.Warnw("Can't create table", "table", name, zap.Error(err))
		return false
	}

	e.logger.Debugw("Created table", "table", name)

	return true
}

func (e *Engine) runScript(ctx context.Context, op, script string) error {
	c, err := e.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	if _, _, err := c.exec(ctx, op, script); err != nil {
		return err
	}

	return c.Close()
}

// script reads the first non-empty path or returns fallback.
// It also returns a description of where the script came from.
func (e *Engine) script(path, configured, fallback string) (string, string, error) {
	if path == "" {
		path = configured
	}
	if path == "" {
		return fallback, "embedded", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", errors.Wrapf(err, "can't read script %s", path)
	}

	return string(data), path, nil
}
