package grid

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/datagrid/table"
)

const wheelStep = 3

func (g *Grid) updateMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button { //nolint:exhaustive
	case tea.MouseButtonWheelUp:
		g.window.ScrollBy(-wheelStep)
		return nil
	case tea.MouseButtonWheelDown:
		g.window.ScrollBy(wheelStep)
		return nil
	case tea.MouseButtonWheelLeft:
		g.xOffset -= wheelStep
		g.clampXOffset()
		return nil
	case tea.MouseButtonWheelRight:
		g.xOffset += wheelStep
		g.clampXOffset()
		return nil
	}

	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		g.mux.Focus(g.id)
		h := g.hitTest(msg.X, msg.Y)
		switch h.area {
		case hitHeader:
			g.pressHeader(h)
		case hitBody:
			g.pressBody(h)
		}

	case tea.MouseActionMotion:
		if _, ok := g.layout.Resizing(); ok {
			g.layout.DragResize(msg.X + g.xOffset)
			return nil
		}
		if h := g.hitTest(msg.X, msg.Y); h.area == hitBody {
			g.cells.Drag(h.coord())
		}

	case tea.MouseActionRelease:
		if _, ok := g.layout.EndResize(); ok {
			g.clampXOffset()
		}
		g.cells.Release()
	}
	return nil
}

func (g *Grid) pressHeader(h hit) {
	col, ok := g.data.Column(h.colIndex)
	if !ok {
		return
	}
	if col.Standard == table.StandardCheckbox {
		g.rows.ToggleAll()
		return
	}
	if h.boundary && g.layout.BeginResize(h.colIndex, h.x) {
		return
	}
	g.layout.CycleSort(h.colIndex)
}

func (g *Grid) pressBody(h hit) {
	col, ok := g.data.Column(h.colIndex)
	if !ok {
		return
	}
	if col.Standard == table.StandardCheckbox {
		g.rows.ToggleRow(h.rowIndex)
		return
	}
	g.cells.Press(h.coord())
	g.followFocus()
}
