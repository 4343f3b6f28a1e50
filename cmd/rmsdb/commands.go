package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"rms/internal/codec"
	"rms/internal/config"
	"rms/internal/domain"
)

func newParser(ctx context.Context, a *app) *flags.Parser {
	parser := flags.NewParser(&a.flags, flags.HelpFlag|flags.PassDoubleDash)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if cmd == nil {
			return nil
		}
		if err := a.setup(); err != nil {
			return err
		}
		return cmd.Execute(args)
	}

	commands := []struct {
		name, short, long string
		data              any
	}{
		{"create", "Create the database file", "Creates an empty database file and its directory.", &createCommand{app: a}},
		{"remove", "Remove the database file", "Removes the database file. A missing file is not an error.", &removeCommand{app: a}},
		{"init", "Create the tables", "Creates all tables from a schema script or table by table.", &initCommand{ctx: ctx, app: a}},
		{"populate", "Load seed data", "Runs a data script with foreign keys enabled.", &populateCommand{ctx: ctx, app: a}},
		{"clear", "Delete all rows", "Deletes every row and keeps the schema.", &clearCommand{ctx: ctx, app: a}},
		{"status", "Show database status", "Shows the foreign key status and the row count of every table.", &statusCommand{ctx: ctx, app: a}},
		{"export", "Export all tables", "Writes the list view of every table as JSON or YAML.", &exportCommand{ctx: ctx, app: a}},
		{"check", "Validate an export file", "Reads an export back, prints its row counts and optionally compares it with the database.", &checkCommand{ctx: ctx, app: a}},
		{"config", "Show or write the configuration", "Prints the effective configuration or writes it to a file.", &configCommand{app: a}},
	}

	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			// Only reachable with malformed command definitions.
			panic(err)
		}
	}

	return parser
}

type createCommand struct {
	app *app
}

func (c *createCommand) Execute([]string) error {
	if err := c.app.engine.Create(); err != nil {
		return err
	}

	c.app.logger.Infow("Created database", "path", c.app.engine.Path())

	return nil
}

type removeCommand struct {
	app *app
}

func (c *removeCommand) Execute([]string) error {
	return c.app.engine.Remove()
}

type initCommand struct {
	ctx context.Context
	app *app

	Schema       string `short:"s" long:"schema" description:"path to a schema script, defaults to database.schema or the embedded schema"`
	Programmatic bool   `short:"p" long:"programmatic" description:"create the tables one by one instead of running a script"`
	Populate     bool   `long:"populate" description:"load the seed data afterwards"`
}

func (c *initCommand) Execute([]string) error {
	if c.Programmatic {
		if c.Schema != "" {
			return errors.New("--schema and --programmatic are mutually exclusive")
		}
		if !c.app.engine.CreateTablesProgrammatically(c.ctx) {
			return errors.New("can't create all tables")
		}
	} else if err := c.app.engine.CreateTables(c.ctx, c.Schema); err != nil {
		return err
	}

	if c.Populate {
		return c.app.engine.Populate(c.ctx, "")
	}

	return nil
}

type populateCommand struct {
	ctx context.Context
	app *app

	Data string `long:"data" description:"path to a data script, defaults to database.data or the embedded seed data"`
}

func (c *populateCommand) Execute([]string) error {
	return c.app.engine.Populate(c.ctx, c.Data)
}

type clearCommand struct {
	ctx context.Context
	app *app
}

func (c *clearCommand) Execute([]string) error {
	return c.app.engine.Clear(c.ctx)
}

type statusCommand struct {
	ctx context.Context
	app *app
}

func (c *statusCommand) Execute([]string) error {
	conn, err := c.app.engine.Connect(c.ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	fk, err := conn.ForeignKeysEnabled(c.ctx)
	if err != nil {
		return err
	}

	snapshot, err := conn.Snapshot(c.ctx)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "database: %s\nforeign keys: %t\n", conn.Path(), fk)
	writeCounts(&b, snapshot)

	_, err = fmt.Fprint(c.app.out, b.String())

	return err
}

// writeCounts prints "<table>: <rows>" lines sorted by table name
func writeCounts(w io.Writer, snapshot *domain.Snapshot) {
	counts := snapshot.Counts()
	tables := make([]string, 0, len(counts))
	for t := range counts {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	for _, t := range tables {
		_, _ = fmt.Fprintf(w, "%s: %d\n", t, counts[t])
	}
}

type exportCommand struct {
	ctx context.Context
	app *app

	Format string `short:"f" long:"format" default:"json" choice:"json" choice:"yaml" description:"output format"`
	Output string `short:"o" long:"output" description:"write to this file instead of stdout"`
}

func (c *exportCommand) Execute([]string) error {
	exporter, err := codec.ForFormat(c.Format)
	if err != nil {
		return err
	}

	conn, err := c.app.engine.Connect(c.ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	snapshot, err := conn.Snapshot(c.ctx)
	if err != nil {
		return err
	}

	if c.Output == "" {
		return exporter.Export(snapshot, c.app.out)
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return errors.Wrap(err, "can't create export file")
	}

	if err := exporter.Export(snapshot, f); err != nil {
		_ = f.Close()
		return err
	}

	c.app.logger.Infow("Exported tables", "format", exporter.Format(), "file", c.Output)

	return errors.Wrap(f.Close(), "can't close export file")
}

type checkCommand struct {
	ctx context.Context
	app *app

	Format  string `short:"f" long:"format" choice:"json" choice:"yaml" description:"input format, derived from the file extension if not set"`
	Compare bool   `long:"compare" description:"fail if the export differs from the database"`

	Args struct {
		File string `positional-arg-name:"FILE"`
	} `positional-args:"yes" required:"yes"`
}

func (c *checkCommand) Execute([]string) error {
	format := c.Format
	if format == "" {
		switch strings.ToLower(filepath.Ext(c.Args.File)) {
		case ".json":
			format = "json"
		case ".yaml", ".yml":
			format = "yaml"
		default:
			return errors.Errorf("can't derive format of %s, use --format", c.Args.File)
		}
	}

	importer, err := codec.ForFormat(format)
	if err != nil {
		return err
	}

	f, err := os.Open(c.Args.File)
	if err != nil {
		return errors.Wrap(err, "can't open export file")
	}
	defer func() { _ = f.Close() }()

	exported, err := importer.Parse(f)
	if err != nil {
		return errors.Wrapf(err, "invalid export %s", c.Args.File)
	}

	writeCounts(c.app.out, exported)

	if !c.Compare {
		return nil
	}

	conn, err := c.app.engine.Connect(c.ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	current, err := conn.Snapshot(c.ctx)
	if err != nil {
		return err
	}

	if diff := cmp.Diff(current, exported); diff != "" {
		_, _ = fmt.Fprintf(c.app.out, "differences (-database +export):\n%s", diff)
		return errors.Errorf("export %s differs from the database", c.Args.File)
	}

	_, err = fmt.Fprintln(c.app.out, "export matches the database")

	return err
}

type configCommand struct {
	app *app

	Write string `short:"w" long:"write" optional:"true" optional-value:"-" description:"write the effective configuration to this file (default location if no value)"`
}

func (c *configCommand) Execute([]string) error {
	switch c.Write {
	case "":
		_, err := fmt.Fprintln(c.app.out, c.app.cfg.Summary())
		return err
	case "-":
		c.Write = config.DefaultConfigPath()
	}

	if err := c.app.cfg.Save(c.Write); err != nil {
		return err
	}

	c.app.logger.Infow("Wrote configuration", "file", c.Write)

	return nil
}
