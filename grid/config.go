package grid

import (
	"io"
	"log/slog"
	"time"

	"github.com/iw2rmb/datagrid/table"
)

const (
	DefaultPageSize            = 1000
	DefaultDoubleClickInterval = 400 * time.Millisecond

	defaultRowsInBlock     = 50
	defaultBlocksInCluster = 4
)

// Config configures a Grid.
type Config struct {
	// Initial data. Both accept the loose forms table.Init accepts.
	Columns any
	Rows    any

	// Editing builds cell editors. Nil uses TextEditor everywhere.
	Editing EditorFactory

	SerialColumn   bool
	CheckboxColumn bool

	// DisableWindowing materializes every row at once. Only sensible for
	// small data sets.
	DisableWindowing bool
	// PageSize is the number of rows materialized per load step.
	PageSize int

	// TakeAvailableSpace spreads spare terminal width over resizable columns.
	TakeAvailableSpace bool

	// EnableLogs turns on the per-instance logger writing to LogOutput
	// (stderr when nil). Logger, when set, is used as is.
	EnableLogs bool
	LogOutput  io.Writer
	Logger     *slog.Logger

	Clipboard Clipboard

	// DoubleClickInterval bounds two presses on one cell that start editing.
	DoubleClickInterval time.Duration
	// Now is the clock used for double-click detection.
	Now func() time.Time

	// Nil KeyMap and Style select the defaults.
	KeyMap *KeyMap
	Style  *Style

	Events Events
}

// Events are host callbacks. All run on the Bubble Tea event loop.
type Events struct {
	// OnSort replaces the in-memory sort. The grid still cycles and renders
	// the sort indicator.
	OnSort func(colIndex int, order table.SortOrder)
	// OnEditError reports an asynchronous write failure after the cell was
	// rolled back.
	OnEditError func(at table.Coord, err error)
	OnCheck     func(rowIndex int, checked bool)
	// OnWindowChange fires after every manager resynchronized to w.
	OnWindowChange func(w Window)
}

func (c Config) withDefaults() Config {
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.DoubleClickInterval <= 0 {
		c.DoubleClickInterval = DefaultDoubleClickInterval
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Clipboard == nil {
		c.Clipboard = SystemClipboard{}
	}
	if c.KeyMap == nil {
		km := DefaultKeyMap()
		c.KeyMap = &km
	}
	if c.Style == nil {
		st := DefaultStyle()
		c.Style = &st
	}
	return c
}

func (c Config) tableOptions() table.Options {
	return table.Options{SerialColumn: c.SerialColumn, CheckboxColumn: c.CheckboxColumn}
}
