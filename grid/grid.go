package grid

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/iw2rmb/datagrid/input"
	"github.com/iw2rmb/datagrid/internal/logger"
	"github.com/iw2rmb/datagrid/style"
	"github.com/iw2rmb/datagrid/table"
)

// Grid is the top-level component. It is used through a pointer; Update
// mutates it in place and returns only a command.
type Grid struct {
	id  string
	cfg Config
	log *slog.Logger

	mux    *input.Mux
	router *input.Router

	data    *table.Table
	rules   *style.Registry
	surface *surface

	layout *ColumnLayout
	rows   *RowManager
	window *Virtualizer
	cells  *CellInteraction

	width, height int
	xOffset       int

	// initCmd continues the first page chain.
	initCmd   tea.Cmd
	destroyed bool
}

// New builds a grid mounted on mux and renders the first page of cfg's data.
func New(mux *input.Mux, cfg Config) (*Grid, error) {
	if mux == nil {
		return nil, ErrNoMount
	}
	cfg = cfg.withDefaults()

	log := cfg.Logger
	if log == nil {
		log = logger.New(cfg.EnableLogs, cfg.LogOutput)
	}
	id := uuid.NewString()
	log = log.With("grid", id[:8])

	g := &Grid{
		id:    id,
		cfg:   cfg,
		log:   log,
		mux:   mux,
		data:  table.New(cfg.tableOptions()),
		rules: style.NewRegistry(),
	}
	if cfg.Columns != nil || cfg.Rows != nil {
		if err := g.data.Init(cfg.Columns, cfg.Rows); err != nil {
			return nil, fmt.Errorf("grid: init data: %w", err)
		}
	}

	g.surface = newSurface(g.data)
	g.window = newVirtualizer(g.data, log, !cfg.DisableWindowing, cfg.PageSize)
	// The surface must be rebuilt before any other listener reads it.
	g.window.Subscribe(g.surface.rebuild)

	g.layout = newColumnLayout(g.data, g.rules, log, cfg.TakeAvailableSpace)
	g.layout.onSort = cfg.Events.OnSort
	g.layout.rerender = g.window.Invalidate

	g.rows = newRowManager(g.data, g.window, g.surface, g.rules, cfg.Style, log)
	g.rows.onCheck = cfg.Events.OnCheck

	g.cells = newCellInteraction(g.data, g.window, g.surface, g.layout, cfg, log)

	if fn := cfg.Events.OnWindowChange; fn != nil {
		g.window.Subscribe(fn)
	}

	g.router = g.newRouter()
	if err := mux.Register(g.router); err != nil {
		return nil, fmt.Errorf("grid: mount: %w", err)
	}

	g.initCmd = g.render()
	return g, nil
}

// render performs a full render of the current data.
func (g *Grid) render() tea.Cmd {
	g.xOffset = 0
	cmd := g.window.Start()
	g.layout.Measure()
	g.layout.SetContainer(g.width)
	return cmd
}

// ID identifies the grid on its mount.
func (g *Grid) ID() string { return g.id }

// Init returns the command that continues loading rows.
func (g *Grid) Init() tea.Cmd {
	cmd := g.initCmd
	g.initCmd = nil
	return cmd
}

// Refresh rebuilds columns and rows from scratch. On a malformed argument
// nothing changes.
func (g *Grid) Refresh(columns, rows any) (tea.Cmd, error) {
	if g.destroyed {
		return nil, ErrDestroyed
	}
	if err := g.data.Init(columns, rows); err != nil {
		return nil, fmt.Errorf("grid: refresh: %w", err)
	}
	g.cells.Reset()
	g.rows.Reset()
	g.log.Info("refresh", "rows", g.data.RowCount(), "columns", g.data.ColumnCount(false))
	return g.render(), nil
}

// AppendRows adds rows after the existing ones. They are materialized by the
// page chain.
func (g *Grid) AppendRows(rows any) (tea.Cmd, error) {
	if g.destroyed {
		return nil, ErrDestroyed
	}
	before := g.data.RowCount()
	if err := g.data.AppendRows(rows); err != nil {
		return nil, fmt.Errorf("grid: append rows: %w", err)
	}
	g.log.Debug("rows appended", "rows", g.data.RowCount()-before)
	return g.window.Extend(), nil
}

// Destroy unmounts the grid. Pending page steps and edit results become
// no-ops.
func (g *Grid) Destroy() {
	if g.destroyed {
		return
	}
	g.destroyed = true
	g.window.Stop()
	g.cells.Reset()
	g.mux.Unregister(g.id)
	g.rules.Clear()
	g.log.Debug("destroyed")
}

func (g *Grid) Destroyed() bool { return g.destroyed }

func (g *Grid) Column(colIndex int) (table.Column, bool) { return g.data.Column(colIndex) }

func (g *Grid) Cell(colIndex, rowIndex int) (table.Cell, bool) {
	return g.data.Cell(colIndex, rowIndex)
}

func (g *Grid) Row(rowIndex int) (table.Row, bool) { return g.data.Row(rowIndex) }

func (g *Grid) RowCount() int { return g.data.RowCount() }

// ColumnCount counts columns, optionally without the standard ones.
func (g *Grid) ColumnCount(skipStandard bool) int { return g.data.ColumnCount(skipStandard) }

// CheckedRows returns the checked rowIndex values in ascending order.
func (g *Grid) CheckedRows() []int { return g.rows.CheckedRows() }

// SortRows sets colIndex to order in one step. Asking for the current order
// is a no-op. Non-sortable columns are inert.
func (g *Grid) SortRows(colIndex int, order table.SortOrder) bool {
	if g.layout.SortOrder(colIndex) == order {
		col, ok := g.data.Column(colIndex)
		return ok && col.Sortable
	}
	return g.layout.SetSort(colIndex, order)
}

// ScrollToLastColumn scrolls horizontally so the last column is visible.
func (g *Grid) ScrollToLastColumn() {
	g.xOffset = max(g.layout.TotalWidth()-g.width, 0)
}

func (g *Grid) Layout() *ColumnLayout { return g.layout }
func (g *Grid) RowManager() *RowManager { return g.rows }
func (g *Grid) Virtualizer() *Virtualizer { return g.window }
func (g *Grid) Interaction() *CellInteraction { return g.cells }
func (g *Grid) Rules() *style.Registry { return g.rules }
func (g *Grid) Table() *table.Table { return g.data }
func (g *Grid) Router() *input.Router { return g.router }

// SetSize sets the outer size in terminal cells, header line included.
func (g *Grid) SetSize(width, height int) {
	g.width = max(width, 0)
	g.height = max(height, 0)
	g.window.SetHeight(max(g.height-1, 0))
	g.layout.SetContainer(g.width)
	g.clampXOffset()
}

func (g *Grid) Size() (int, int) { return g.width, g.height }

// XOffset is the horizontal scroll in terminal cells.
func (g *Grid) XOffset() int { return g.xOffset }

func (g *Grid) clampXOffset() {
	g.xOffset = min(max(g.xOffset, 0), max(g.layout.TotalWidth()-g.width, 0))
}

// followFocus scrolls horizontally until the focused column is visible.
func (g *Grid) followFocus() {
	if g.width <= 0 {
		return
	}
	at, ok := g.cells.Focus()
	if _, cur, sel := g.cells.Selection(); sel {
		at, ok = cur, true
	}
	if !ok {
		return
	}
	start := g.layout.ColumnStart(at.ColIndex)
	end := start + g.layout.Width(at.ColIndex)
	switch {
	case start < g.xOffset:
		g.xOffset = start
	case end > g.xOffset+g.width:
		g.xOffset = end - g.width
	}
	g.clampXOffset()
}
