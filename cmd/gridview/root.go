package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/datagrid"
	"github.com/iw2rmb/datagrid/grid"
	"github.com/iw2rmb/datagrid/internal/logger"
	"github.com/iw2rmb/datagrid/source"
)

var errNoInput = errors.New("nothing to show: pass a file, --sqlite with --query, or --generate")

type options struct {
	sqlite   string
	query    string
	table    string
	generate int
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "gridview [file]",
		Short: "Browse and edit tabular data in the terminal",
		Long: `gridview shows a CSV, JSON or TOML file, or the result of a SQLite query,
in an editable data grid. With --table, edits are written back to SQLite.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       datagrid.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), opts, args)
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf("gridview %s (%s)\n", datagrid.VersionTag(), datagrid.UserAgent()))

	f := cmd.Flags()
	f.StringVar(&opts.sqlite, "sqlite", "", "SQLite database file")
	f.StringVar(&opts.query, "query", "", "query to run against --sqlite")
	f.StringVar(&opts.table, "table", "", "table that edits are written back to (requires _rowid_ as the first selected column)")
	f.IntVar(&opts.generate, "generate", 0, "synthesize N rows instead of loading data")
	cmd.MarkFlagsRequiredTogether("sqlite", "query")
	return cmd
}

func run(ctx context.Context, out io.Writer, opts options, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	log := logger.Discard()
	if cfg.Log.File != "" {
		l, closer, err := logger.OpenFile(cfg.Log.File)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer closer.Close()
		log = l
	}

	data, db, err := loadData(ctx, opts, args)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}
	log.Info("data loaded", "rows", data.Len(), "columns", len(data.Columns))

	m, err := newModel(data, cfg, log, writeBack(db, opts.table, data, log))
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	checked := m.grid.CheckedRows()
	m.grid.Destroy()
	if len(checked) > 0 {
		fmt.Fprintln(out, "checked rows:", checked)
	}
	return nil
}

// loadData resolves the input. The returned database is non-nil only for
// SQLite input and must be closed by the caller.
func loadData(ctx context.Context, opts options, args []string) (source.Data, *source.SQLite, error) {
	switch {
	case opts.generate > 0:
		return source.Generate(opts.generate), nil, nil
	case opts.sqlite != "":
		db, err := source.OpenSQLite(opts.sqlite)
		if err != nil {
			return source.Data{}, nil, err
		}
		d, err := db.Query(ctx, opts.query)
		if err != nil {
			_ = db.Close()
			return source.Data{}, nil, err
		}
		return d, db, nil
	case len(args) == 1:
		d, err := source.Load(ctx, args[0])
		return d, nil, err
	}
	return source.Data{}, nil, errNoInput
}

// writeBack returns the editor factory storing edits into table, or nil
// when edits stay in memory.
func writeBack(db *source.SQLite, table string, data source.Data, log *slog.Logger) func(*grid.Grid) grid.EditorFactory {
	if db == nil || table == "" {
		return nil
	}
	write := db.Writer(table)
	return func(g *grid.Grid) grid.EditorFactory {
		return sqliteEditors(g, data, write, log)
	}
}

