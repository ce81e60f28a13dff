package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/iw2rmb/datagrid/grid"
	"github.com/iw2rmb/datagrid/source"
)

const writeTimeout = 5 * time.Second

// sqliteEditor is the built-in text editor whose commits are also written to
// the database.
type sqliteEditor struct {
	*grid.TextEditor
	write func(v any) error
}

func (e *sqliteEditor) SetValue(v any) grid.Completion {
	e.TextEditor.SetValue(v)
	return func() error { return e.write(v) }
}

// sqliteEditors writes edits of rows that carry a row id. Other cells get the
// in-memory editor.
func sqliteEditors(g *grid.Grid, data source.Data, write source.WriteFunc, log *slog.Logger) grid.EditorFactory {
	return func(colIndex, rowIndex int, _ any, width int) grid.Editor {
		col, ok := g.Column(colIndex)
		if !ok || col.IsStandard() {
			return nil
		}
		id, ok := data.RowID(rowIndex)
		if !ok {
			return nil
		}
		return &sqliteEditor{
			TextEditor: grid.NewTextEditor(width),
			write: func(v any) error {
				ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
				defer cancel()
				if err := write(ctx, id, col.Label, v); err != nil {
					log.Warn("write back failed", "rowid", id, "column", col.Label, "err", err)
					return err
				}
				log.Debug("written back", "rowid", id, "column", col.Label)
				return nil
			},
		}
	}
}
