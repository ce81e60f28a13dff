package grid

import (
	"log/slog"
	"slices"

	"github.com/iw2rmb/datagrid/style"
)

type rowData interface {
	RowCount() int
	Indexes() []int
	IndexAt(pos int) (int, bool)
	Position(rowIndex int) (int, bool)
}

type windowSource interface {
	Window() Window
	Subscribe(fn func(Window))
}

type rowSurface interface {
	markChecked(rowIndex int, on bool) bool
}

// RowManager holds the checked state of rows by rowIndex. Highlight rules
// exist only for rows in the materialized window and are reapplied whenever
// the window changes.
type RowManager struct {
	data    rowData
	window  windowSource
	surface rowSurface
	rules   *style.Registry
	st      *Style
	log     *slog.Logger

	onCheck func(rowIndex int, checked bool)

	checked map[int]bool
	// all is set while the whole body is highlighted by one rule.
	all bool
	// ruled are the rows currently carrying a per-row rule.
	ruled map[int]struct{}
}

func newRowManager(data rowData, window windowSource, surface rowSurface, rules *style.Registry, st *Style, log *slog.Logger) *RowManager {
	m := &RowManager{
		data:    data,
		window:  window,
		surface: surface,
		rules:   rules,
		st:      st,
		log:     log,
		checked: make(map[int]bool),
		ruled:   make(map[int]struct{}),
	}
	window.Subscribe(m.resync)
	return m
}

// CheckRow sets the checked state of rowIndex.
func (m *RowManager) CheckRow(rowIndex int, on bool) {
	if _, ok := m.data.Position(rowIndex); !ok {
		return
	}
	if on {
		m.checked[rowIndex] = true
	} else {
		delete(m.checked, rowIndex)
	}
	if pos, _ := m.data.Position(rowIndex); m.window.Window().Contains(pos) {
		m.apply(rowIndex)
	}
	if m.onCheck != nil {
		m.onCheck(rowIndex, on)
	}
}

// ToggleRow flips the checked state of rowIndex.
func (m *RowManager) ToggleRow(rowIndex int) {
	m.CheckRow(rowIndex, !m.checked[rowIndex])
}

// CheckAll checks every known row, or clears the map.
func (m *RowManager) CheckAll(on bool) {
	if on {
		for _, i := range m.data.Indexes() {
			m.checked[i] = true
		}
	} else {
		clear(m.checked)
	}
	m.highlightAll(on)
	m.resync(m.window.Window())
	m.log.Debug("check all", "checked", on, "count", len(m.checked))
}

// ToggleAll checks every row unless every row already is.
func (m *RowManager) ToggleAll() {
	m.CheckAll(!m.AllChecked())
}

// highlightAll swaps per-row highlight rules for a single body rule.
func (m *RowManager) highlightAll(on bool) {
	m.all = on
	if on {
		m.rules.Set(style.BodyHighlightAllKey, m.st.Checked)
		return
	}
	m.rules.Remove(style.BodyHighlightAllKey)
}

func (m *RowManager) IsChecked(rowIndex int) bool { return m.checked[rowIndex] }

func (m *RowManager) CheckedCount() int { return len(m.checked) }

func (m *RowManager) AllChecked() bool {
	n := m.data.RowCount()
	return n > 0 && len(m.checked) == n
}

// CheckedRows returns the checked rowIndex values in ascending order.
func (m *RowManager) CheckedRows() []int {
	out := make([]int, 0, len(m.checked))
	for i := range m.checked {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Reset forgets every checked row and drops the rules.
func (m *RowManager) Reset() {
	clear(m.checked)
	m.dropRules()
	m.highlightAll(false)
}

func (m *RowManager) resync(w Window) {
	m.dropRules()
	for pos := w.Start; pos < w.End; pos++ {
		if i, ok := m.data.IndexAt(pos); ok {
			m.apply(i)
		}
	}
}

func (m *RowManager) apply(rowIndex int) {
	on := m.checked[rowIndex]
	m.surface.markChecked(rowIndex, on)

	hl, unhl := style.RowHighlightKey(rowIndex), style.RowUnhighlightKey(rowIndex)
	switch {
	case m.all && !on:
		m.rules.Remove(hl)
		m.rules.Set(unhl, m.st.Unchecked)
	case !m.all && on:
		m.rules.Remove(unhl)
		m.rules.Set(hl, m.st.Checked)
	default:
		m.rules.Remove(hl)
		m.rules.Remove(unhl)
		delete(m.ruled, rowIndex)
		return
	}
	m.ruled[rowIndex] = struct{}{}
}

func (m *RowManager) dropRules() {
	for i := range m.ruled {
		m.rules.Remove(style.RowHighlightKey(i))
		m.rules.Remove(style.RowUnhighlightKey(i))
	}
	clear(m.ruled)
}
