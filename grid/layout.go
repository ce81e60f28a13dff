package grid

import (
	"log/slog"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/datagrid/internal/textwidth"
	"github.com/iw2rmb/datagrid/style"
	"github.com/iw2rmb/datagrid/table"
)

const (
	// sortSlot is the header space reserved for the sort indicator.
	sortSlot = 2
	// distributeMargin is kept off every column that receives spare width.
	distributeMargin = 1
	separatorWidth   = 1
	checkboxWidth    = 3
)

type layoutData interface {
	Columns(skipStandard bool) []table.Column
	Column(colIndex int) (table.Column, bool)
	RowAt(pos int) (table.Row, bool)
	SortRows(colIndex int, order table.SortOrder) error
}

type resizeState struct {
	colIndex   int
	startWidth int
	startX     int
	live       int
}

// ColumnLayout owns column widths, alignment rules and the header gestures.
type ColumnLayout struct {
	data  layoutData
	rules *style.Registry
	log   *slog.Logger

	fill bool
	// onSort replaces the in-memory sort when set.
	onSort func(colIndex int, order table.SortOrder)
	// rerender asks for the body to be rebuilt after a sort.
	rerender func()

	// minWidth is captured from the first render of each column and kept
	// for the lifetime of the instance.
	minWidth map[int]int
	width    map[int]int
	orders   map[int]table.SortOrder

	resize *resizeState

	container   int
	distributed bool
}

func newColumnLayout(data layoutData, rules *style.Registry, log *slog.Logger, fill bool) *ColumnLayout {
	return &ColumnLayout{
		data:     data,
		rules:    rules,
		log:      log,
		fill:     fill,
		minWidth: make(map[int]int),
		width:    make(map[int]int),
		orders:   make(map[int]table.SortOrder),
	}
}

// Measure runs the width algorithm for a full render: minimum widths are
// captured for columns seen for the first time, natural widths come from the
// first displayed row, and alignment rules are set.
func (l *ColumnLayout) Measure() {
	l.resize = nil
	l.orders = make(map[int]table.SortOrder)
	clear(l.width)

	first, hasFirst := l.data.RowAt(0)
	for _, col := range l.data.Columns(false) {
		i := col.ColIndex
		if _, ok := l.minWidth[i]; !ok {
			l.minWidth[i] = headerWidth(col)
		}
		minW := max(l.minWidth[i], col.MinWidth)

		w := col.Width
		if w <= 0 && hasFirst {
			if c, ok := first.Cell(i); ok {
				w = cellWidth(col, c)
			}
		}
		l.width[i] = max(w, minW)

		l.setWidthRules(i, l.width[i])
		l.setAlignRule(col)
	}

	l.distributed = false
	l.distribute()
}

func headerWidth(col table.Column) int {
	if col.Standard == table.StandardCheckbox {
		return checkboxWidth
	}
	w := textwidth.Width(col.Label)
	if col.Sortable {
		w += sortSlot
	}
	return max(w, 1)
}

func cellWidth(col table.Column, c table.Cell) int {
	if col.Standard == table.StandardCheckbox {
		return checkboxWidth
	}
	return textwidth.Width(textwidth.SingleLine(c.Text()))
}

func (l *ColumnLayout) setWidthRules(colIndex, w int) {
	l.rules.Set(style.HeaderWidthKey(colIndex), lipgloss.NewStyle().Width(w))
	l.rules.Set(style.ColumnWidthKey(colIndex), lipgloss.NewStyle().Width(w))
}

func (l *ColumnLayout) setAlignRule(col table.Column) {
	key := style.ColumnAlignKey(col.ColIndex)
	switch col.Align {
	case table.AlignLeft:
		l.rules.Set(key, lipgloss.NewStyle().Align(lipgloss.Left))
	case table.AlignCenter:
		l.rules.Set(key, lipgloss.NewStyle().Align(lipgloss.Center))
	case table.AlignRight:
		l.rules.Set(key, lipgloss.NewStyle().Align(lipgloss.Right))
	default:
		l.rules.Remove(key)
	}
}

// SetContainer records the available width. The first time it is known after
// a full render, spare width is distributed.
func (l *ColumnLayout) SetContainer(w int) {
	l.container = max(w, 0)
	l.distribute()
}

func (l *ColumnLayout) distribute() {
	if !l.fill || l.distributed || l.container <= 0 || len(l.width) == 0 {
		return
	}
	l.distributed = true

	total := l.TotalWidth()
	if total >= l.container {
		return
	}
	var resizable []int
	for _, col := range l.data.Columns(false) {
		if col.Resizable {
			resizable = append(resizable, col.ColIndex)
		}
	}
	if len(resizable) == 0 {
		return
	}
	delta := (l.container-total)/len(resizable) - distributeMargin
	if delta <= 0 {
		return
	}
	for _, i := range resizable {
		l.width[i] += delta
		l.setWidthRules(i, l.width[i])
	}
	l.log.Debug("distributed width", "delta", delta, "columns", len(resizable))
}

// Width is the committed width of colIndex.
func (l *ColumnLayout) Width(colIndex int) int { return l.width[colIndex] }

// HeaderWidth is the width the header cell shows, which differs from Width
// during a resize.
func (l *ColumnLayout) HeaderWidth(colIndex int) int {
	if l.resize != nil && l.resize.colIndex == colIndex {
		return l.resize.live
	}
	return l.width[colIndex]
}

func (l *ColumnLayout) MinWidth(colIndex int) int {
	col, _ := l.data.Column(colIndex)
	return max(l.minWidth[colIndex], col.MinWidth)
}

// TotalWidth is the rendered width of a body line.
func (l *ColumnLayout) TotalWidth() int {
	n := len(l.width)
	if n == 0 {
		return 0
	}
	total := separatorWidth * (n - 1)
	for _, w := range l.width {
		total += w
	}
	return total
}

// ColumnStart is the x offset of colIndex within a body line.
func (l *ColumnLayout) ColumnStart(colIndex int) int {
	x := 0
	for _, col := range l.data.Columns(false) {
		if col.ColIndex == colIndex {
			return x
		}
		x += l.width[col.ColIndex] + separatorWidth
	}
	return x
}

// BeginResize starts a resize of colIndex at pointer x. It is a no-op while
// another column is being resized and for non-resizable columns.
func (l *ColumnLayout) BeginResize(colIndex, x int) bool {
	if l.resize != nil && l.resize.colIndex != colIndex {
		return false
	}
	col, ok := l.data.Column(colIndex)
	if !ok || !col.Resizable {
		return false
	}
	if l.resize != nil {
		return true
	}
	w := l.width[colIndex]
	l.resize = &resizeState{colIndex: colIndex, startWidth: w, startX: x, live: w}
	return true
}

// DragResize moves the live header width to follow pointer x. Candidates
// below the minimum width are rejected.
func (l *ColumnLayout) DragResize(x int) bool {
	if l.resize == nil {
		return false
	}
	candidate := l.resize.startWidth + (x - l.resize.startX)
	if candidate < l.MinWidth(l.resize.colIndex) {
		return false
	}
	l.resize.live = candidate
	l.rules.Set(style.HeaderWidthKey(l.resize.colIndex), lipgloss.NewStyle().Width(candidate))
	return true
}

// EndResize commits the live width to header and body rules.
func (l *ColumnLayout) EndResize() (int, bool) {
	if l.resize == nil {
		return 0, false
	}
	rs := l.resize
	l.resize = nil
	w := max(rs.live, l.MinWidth(rs.colIndex))
	l.width[rs.colIndex] = w
	l.setWidthRules(rs.colIndex, w)
	l.log.Debug("column resized", "col", rs.colIndex, "width", w, "total", l.TotalWidth())
	return w, true
}

// Resizing returns the column being resized.
func (l *ColumnLayout) Resizing() (int, bool) {
	if l.resize == nil {
		return 0, false
	}
	return l.resize.colIndex, true
}

// ResizeColumn runs a complete resize gesture to width w and returns the
// committed width. Widths below the minimum clamp to it.
func (l *ColumnLayout) ResizeColumn(colIndex, w int) (int, bool) {
	if !l.BeginResize(colIndex, 0) {
		return 0, false
	}
	l.DragResize(max(w, l.MinWidth(colIndex)) - l.resize.startWidth)
	return l.EndResize()
}

func (l *ColumnLayout) SortOrder(colIndex int) table.SortOrder { return l.orders[colIndex] }

// CycleSort advances the sort indicator of colIndex through none, asc and
// desc, and applies it with SetSort.
func (l *ColumnLayout) CycleSort(colIndex int) (table.SortOrder, bool) {
	order := l.orders[colIndex].Next()
	return order, l.SetSort(colIndex, order)
}

// SetSort sets the sort indicator of colIndex to order and resets every other
// column. The rows are then sorted once, by the host callback or in memory.
func (l *ColumnLayout) SetSort(colIndex int, order table.SortOrder) bool {
	col, ok := l.data.Column(colIndex)
	if !ok || !col.Sortable {
		return false
	}
	l.orders = map[int]table.SortOrder{colIndex: order}

	l.log.Debug("sort", "col", colIndex, "order", order.String())
	if l.onSort != nil {
		l.onSort(colIndex, order)
		return true
	}
	if err := l.data.SortRows(colIndex, order); err != nil {
		l.log.Warn("sort failed", "col", colIndex, "err", err)
		return false
	}
	if l.rerender != nil {
		l.rerender()
	}
	return true
}

func sortIndicator(o table.SortOrder) string {
	switch o {
	case table.SortAsc:
		return "▲"
	case table.SortDesc:
		return "▼"
	default:
		return " "
	}
}
