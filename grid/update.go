package grid

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/datagrid/input"
)

// Update handles one message. Keys are acted on only while the grid's router
// holds focus on the mount.
func (g *Grid) Update(msg tea.Msg) tea.Cmd {
	if g.destroyed {
		return nil
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		g.SetSize(msg.Width, msg.Height)
		return nil
	case pageMsg:
		return g.window.handlePage(msg)
	case editResultMsg:
		g.cells.handleEditResult(msg)
		return nil
	case tea.KeyMsg:
		if g.mux.Focused() != g.id {
			return nil
		}
		cmd, _ := g.mux.Dispatch(msg)
		return cmd
	case tea.MouseMsg:
		return g.updateMouse(msg)
	default:
		return g.cells.UpdateEditor(msg)
	}
}

func (g *Grid) newRouter() *input.Router {
	km := g.cfg.KeyMap
	r := input.NewRouter(g.id)

	// While editing every key belongs to the editor except commit and cancel.
	r.Intercept(func(msg tea.KeyMsg) (tea.Cmd, bool) {
		if g.cells.State() != StateEditing {
			return nil, false
		}
		switch {
		case key.Matches(msg, km.Commit):
			return g.cells.Commit(), true
		case key.Matches(msg, km.Cancel):
			g.cells.Cancel()
			return nil, true
		}
		return g.cells.UpdateEditor(msg), true
	})

	nav := func(fn func(Direction) bool, d Direction) input.Handler {
		return func(tea.KeyMsg) tea.Cmd {
			fn(d)
			g.followFocus()
			return nil
		}
	}
	r.Bind(km.Up, nav(g.cells.Move, DirUp))
	r.Bind(km.Down, nav(g.cells.Move, DirDown))
	r.Bind(km.Left, nav(g.cells.Move, DirLeft))
	r.Bind(km.Right, nav(g.cells.Move, DirRight))
	r.Bind(km.ShiftUp, nav(g.cells.Extend, DirUp))
	r.Bind(km.ShiftDown, nav(g.cells.Extend, DirDown))
	r.Bind(km.ShiftLeft, nav(g.cells.Extend, DirLeft))
	r.Bind(km.ShiftRight, nav(g.cells.Extend, DirRight))
	r.Bind(km.JumpUp, nav(g.cells.Jump, DirUp))
	r.Bind(km.JumpDown, nav(g.cells.Jump, DirDown))
	r.Bind(km.JumpLeft, nav(g.cells.Jump, DirLeft))
	r.Bind(km.JumpRight, nav(g.cells.Jump, DirRight))

	r.Bind(km.Activate, func(tea.KeyMsg) tea.Cmd {
		g.cells.BeginEdit()
		return nil
	})
	r.Bind(km.Cancel, func(tea.KeyMsg) tea.Cmd {
		if _, cur, ok := g.cells.Selection(); ok {
			g.cells.FocusCell(cur)
		}
		return nil
	})
	r.Bind(km.Copy, func(tea.KeyMsg) tea.Cmd {
		g.cells.Copy()
		return nil
	})
	r.Bind(km.ToggleCheck, func(tea.KeyMsg) tea.Cmd {
		if at, ok := g.cells.Focus(); ok {
			g.rows.ToggleRow(at.RowIndex)
		}
		return nil
	})
	r.Bind(km.ToggleAll, func(tea.KeyMsg) tea.Cmd {
		g.rows.ToggleAll()
		return nil
	})
	r.Bind(km.Sort, func(tea.KeyMsg) tea.Cmd {
		if at, ok := g.cells.Focus(); ok {
			g.layout.CycleSort(at.ColIndex)
		}
		return nil
	})

	r.Bind(km.PageUp, func(tea.KeyMsg) tea.Cmd {
		g.window.ScrollBy(-max(g.window.Height(), 1))
		return nil
	})
	r.Bind(km.PageDown, func(tea.KeyMsg) tea.Cmd {
		g.window.ScrollBy(max(g.window.Height(), 1))
		return nil
	})
	r.Bind(km.ScrollColsLeft, func(tea.KeyMsg) tea.Cmd {
		g.scrollColumns(-1)
		return nil
	})
	r.Bind(km.ScrollColsRight, func(tea.KeyMsg) tea.Cmd {
		g.scrollColumns(1)
		return nil
	})
	r.Bind(km.ScrollToLastColumn, func(tea.KeyMsg) tea.Cmd {
		g.ScrollToLastColumn()
		return nil
	})
	r.Bind(km.ScrollToFirst, func(tea.KeyMsg) tea.Cmd {
		g.xOffset = 0
		g.window.ScrollTo(0)
		return nil
	})
	return r
}

// scrollColumns moves the horizontal offset to the start of the column n
// columns away from the first visible one.
func (g *Grid) scrollColumns(n int) {
	cols := g.data.Columns(false)
	if len(cols) == 0 {
		return
	}
	first := 0
	for i, col := range cols {
		if g.layout.ColumnStart(col.ColIndex) <= g.xOffset {
			first = i
		}
	}
	i := min(max(first+n, 0), len(cols)-1)
	g.xOffset = g.layout.ColumnStart(cols[i].ColIndex)
	g.clampXOffset()
}
