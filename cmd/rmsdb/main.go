// Command rmsdb manages the RMS SQLite database: it creates and removes the
// database file, loads the schema and seed data, purges rows and exports
// the tables as JSON or YAML.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"rms/internal/config"
	"rms/internal/logging"
	"rms/internal/repository/sqlite"
)

// Flags defines the global CLI flags.
type Flags struct {
	// Config is the path to the config file. Without it the usual locations are searched.
	Config string `short:"c" long:"config" description:"path to config file"`
	// Database overrides database.path of the config.
	Database string `short:"d" long:"database" description:"path to the SQLite database file"`
	// LogLevel overrides logging.level of the config.
	LogLevel string `short:"l" long:"log-level" description:"logging level (debug, info, warn, error)"`
}

// app is the state shared by all commands
type app struct {
	flags  Flags
	cfg    *config.Config
	logger *zap.SugaredLogger
	engine *sqlite.Engine
	out    io.Writer
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], os.Stdout))
}

// run parses args, executes the selected command and returns the exit code
func run(ctx context.Context, args []string, out io.Writer) int {
	a := &app{out: out}
	defer func() {
		if a.logger != nil {
			_ = a.logger.Sync()
		}
	}()

	parser := newParser(ctx, a)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) {
			if flagsErr.Type == flags.ErrHelp {
				_, _ = fmt.Fprintln(out, err)
				return 0
			}
			_, _ = fmt.Fprintln(os.Stderr, err)
			return 2
		}

		if a.logger != nil {
			a.logger.Errorf("%+v", err)
		} else {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}

		return 1
	}

	return 0
}

// setup loads the configuration and builds the logger and the engine.
// It runs once before the selected command.
func (a *app) setup() error {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if a.flags.Config != "" {
		cfg, path, err = config.LoadFromPath(a.flags.Config)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return err
	}

	if a.flags.Database != "" {
		cfg.Database.Path = a.flags.Database
	}
	if a.flags.LogLevel != "" {
		cfg.Logging.Level = a.flags.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid flags")
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	if path == "" {
		path = "(defaults)"
	}
	logger.Debugw("Loaded configuration", "file", path, "summary", cfg.Summary())

	a.cfg = cfg
	a.logger = logger
	a.engine = sqlite.NewEngine(cfg.Database, logger)

	return nil
}
