package grid

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/iw2rmb/datagrid/internal/textwidth"
	"github.com/iw2rmb/datagrid/style"
	"github.com/iw2rmb/datagrid/table"
)

const (
	checkedMark   = "[x]"
	uncheckedMark = "[ ]"
	separator     = "│"
)

// View renders the header and the visible body lines, cropped to the grid
// width at the horizontal offset.
func (g *Grid) View() string {
	if g.destroyed {
		return ""
	}
	cols := g.data.Columns(false)
	if len(cols) == 0 {
		return ""
	}

	focus, hasFocus := g.cells.Focus()
	lines := []string{g.renderHeader(cols, focus, hasFocus)}

	w := g.window.Window()
	start, end := max(g.window.Offset(), w.Start), w.End
	if h := g.window.Height(); h > 0 {
		end = min(end, start+h)
	}
	for pos := start; pos < end; pos++ {
		r := g.surface.at(pos)
		if r == nil {
			break
		}
		lines = append(lines, g.renderRow(cols, r, focus, hasFocus))
	}

	if g.width > 0 {
		for i, l := range lines {
			lines[i] = ansi.Cut(l, g.xOffset, g.xOffset+g.width)
		}
	}
	return strings.Join(lines, "\n")
}

func (g *Grid) renderHeader(cols []table.Column, focus table.Coord, hasFocus bool) string {
	st := g.cfg.Style
	sep := st.Separator.Render(separator)

	var sb strings.Builder
	for i, col := range cols {
		if i > 0 {
			sb.WriteString(sep)
		}
		ci := col.ColIndex
		w := g.layout.HeaderWidth(ci)

		base := st.Header
		if hasFocus && focus.ColIndex == ci {
			base = st.HeaderActive
		}
		cellSt := g.rules.Compose(base, style.HeaderWidthKey(ci), style.ColumnAlignKey(ci))
		if col.IsStandard() {
			cellSt = cellSt.Align(lipgloss.Center)
		}

		text := col.Label
		switch {
		case col.Standard == table.StandardCheckbox:
			text = uncheckedMark
			if g.rows.AllChecked() {
				text = checkedMark
			}
		case col.Sortable:
			text = textwidth.Truncate(textwidth.SingleLine(text), max(w-sortSlot, 0))
			text += " " + sortIndicator(g.layout.SortOrder(ci))
		}
		sb.WriteString(cellSt.Render(textwidth.Truncate(textwidth.SingleLine(text), w)))
	}
	return sb.String()
}

func (g *Grid) renderRow(cols []table.Column, r *surfaceRow, focus table.Coord, hasFocus bool) string {
	st := g.cfg.Style
	sep := st.Separator.Render(separator)
	rowKeys := []string{
		style.BodyHighlightAllKey,
		style.RowUnhighlightKey(r.index),
		style.RowHighlightKey(r.index),
	}

	var sb strings.Builder
	for i, col := range cols {
		if i > 0 {
			sb.WriteString(sep)
		}
		ci := col.ColIndex
		w := g.layout.Width(ci)

		keys := append([]string{style.ColumnWidthKey(ci), style.ColumnAlignKey(ci)}, rowKeys...)
		cellSt := g.rules.Compose(st.Cell, keys...)

		var text string
		switch {
		case r.editCol == ci:
			cellSt = layer(cellSt, st.Editing)
			text = g.editorView(w)
			sb.WriteString(cellSt.Render(text))
			continue
		case col.Standard == table.StandardCheckbox:
			text = uncheckedMark
			if r.checked {
				text = checkedMark
			}
		case ci < len(r.text):
			text = r.text[ci]
		}

		if col.Standard == table.StandardSerial {
			cellSt = cellSt.Align(lipgloss.Center)
			if hasFocus && focus.RowIndex == r.index {
				cellSt = layer(cellSt, st.HeaderActive)
			}
		}
		if r.selected(ci) {
			cellSt = layer(cellSt, st.Selected)
		}
		if r.focusCol == ci {
			cellSt = layer(cellSt, st.Focused)
		}
		sb.WriteString(cellSt.Render(textwidth.Truncate(textwidth.SingleLine(text), w)))
	}
	return sb.String()
}

func (g *Grid) editorView(w int) string {
	_, ed, ok := g.cells.Editing()
	if !ok {
		return ""
	}
	return ansi.Truncate(ed.View(), w, "")
}

// layer puts top over base; values set on top win.
func layer(base, top lipgloss.Style) lipgloss.Style {
	return top.Inherit(base)
}
