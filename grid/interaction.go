package grid

import (
	"log/slog"
	"reflect"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/datagrid/table"
)

// State is the cell interaction state.
type State uint8

const (
	StateIdle State = iota
	StateFocused
	StateEditing
	StateSelecting
)

func (s State) String() string {
	switch s {
	case StateFocused:
		return "focused"
	case StateEditing:
		return "editing"
	case StateSelecting:
		return "selecting"
	default:
		return "idle"
	}
}

// Direction is a navigation direction.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

type cellData interface {
	Column(colIndex int) (table.Column, bool)
	Cell(colIndex, rowIndex int) (table.Cell, bool)
	Position(rowIndex int) (int, bool)
	IndexAt(pos int) (int, bool)
	RowCount() int
	LastColumn() int
	SetContent(colIndex, rowIndex int, v any) (any, error)
}

type scroller interface {
	Window() Window
	ScrollTo(pos int)
	Subscribe(fn func(Window))
}

type cellSurface interface {
	forEach(fn func(*surfaceRow))
	refreshCell(at table.Coord)
}

type columnWidths interface {
	Width(colIndex int) int
}

type editSession struct {
	at     table.Coord
	editor Editor
}

// editResultMsg carries the outcome of an asynchronous edit write.
type editResultMsg struct {
	epoch  uint64
	at     table.Coord
	before any
	after  any
	err    error
}

// CellInteraction is the focus, selection and editing state machine. All of
// its state is held as coordinates; rendered rows only receive flags.
type CellInteraction struct {
	data    cellData
	scroll  scroller
	surface cellSurface
	widths  columnWidths
	clip    Clipboard
	factory EditorFactory
	log     *slog.Logger

	onEditError func(at table.Coord, err error)

	doubleClick time.Duration
	now         func() time.Time

	state  State
	focus  table.Coord
	anchor table.Coord
	cursor table.Coord
	// pending is a focus target waiting for its row to be materialized.
	pending *table.Coord
	edit    *editSession

	dragging   bool
	dragAnchor table.Coord
	lastPress  table.Coord
	lastAt     time.Time

	// epoch invalidates edit results across a refresh.
	epoch uint64
}

func newCellInteraction(data cellData, scroll scroller, surface cellSurface, widths columnWidths, cfg Config, log *slog.Logger) *CellInteraction {
	ci := &CellInteraction{
		data:        data,
		scroll:      scroll,
		surface:     surface,
		widths:      widths,
		clip:        cfg.Clipboard,
		factory:     cfg.Editing,
		log:         log,
		onEditError: cfg.Events.OnEditError,
		doubleClick: cfg.DoubleClickInterval,
		now:         cfg.Now,
	}
	scroll.Subscribe(ci.resync)
	return ci
}

func (ci *CellInteraction) State() State { return ci.state }

// Focus returns the focused cell. It is also the selection anchor while
// selecting and the edited cell while editing.
func (ci *CellInteraction) Focus() (table.Coord, bool) {
	return ci.focus, ci.state != StateIdle
}

// Pending returns a focus target still waiting to be materialized.
func (ci *CellInteraction) Pending() (table.Coord, bool) {
	if ci.pending == nil {
		return table.Coord{}, false
	}
	return *ci.pending, true
}

// Selection returns the anchor and cursor of the active selection.
func (ci *CellInteraction) Selection() (anchor, cursor table.Coord, ok bool) {
	if ci.state != StateSelecting {
		return table.Coord{}, table.Coord{}, false
	}
	return ci.anchor, ci.cursor, true
}

// Editing returns the cell being edited and its editor.
func (ci *CellInteraction) Editing() (table.Coord, Editor, bool) {
	if ci.edit == nil {
		return table.Coord{}, nil, false
	}
	return ci.edit.at, ci.edit.editor, true
}

// Reset returns to idle and drops results of edits still in flight.
func (ci *CellInteraction) Reset() {
	ci.epoch++
	ci.state = StateIdle
	ci.focus = table.Coord{}
	ci.pending = nil
	ci.edit = nil
	ci.dragging = false
	ci.lastAt = time.Time{}
}

func (ci *CellInteraction) focusable(c table.Coord) bool {
	col, ok := ci.data.Column(c.ColIndex)
	if !ok || !col.Focusable {
		return false
	}
	_, ok = ci.data.Position(c.RowIndex)
	return ok
}

func (ci *CellInteraction) isDataColumn(colIndex int) bool {
	col, ok := ci.data.Column(colIndex)
	return ok && !col.IsStandard()
}

// FocusCell moves focus to c. Focusing a non-focusable cell is a no-op. When
// the row is not materialized the move completes once it is.
func (ci *CellInteraction) FocusCell(c table.Coord) bool {
	if !ci.focusable(c) {
		return false
	}
	if ci.edit != nil && ci.edit.at != c {
		ci.Cancel()
	}
	if ci.state == StateSelecting {
		ci.state = StateFocused
	}
	ci.pending = &c
	pos, _ := ci.data.Position(c.RowIndex)
	ci.scroll.ScrollTo(pos)
	ci.resolvePending()
	return true
}

func (ci *CellInteraction) resolvePending() {
	if ci.pending == nil {
		return
	}
	pos, ok := ci.data.Position(ci.pending.RowIndex)
	if !ok {
		ci.pending = nil
		return
	}
	if !ci.scroll.Window().Contains(pos) {
		return
	}
	ci.focus = *ci.pending
	ci.pending = nil
	if ci.state != StateEditing {
		ci.state = StateFocused
	}
	ci.applyFlags()
}

// Move moves focus one cell in d, clamped at the data region.
func (ci *CellInteraction) Move(d Direction) bool {
	if ci.state == StateEditing {
		return false
	}
	from, ok := ci.navOrigin()
	if !ok {
		return ci.focusFirst()
	}
	to, ok := ci.step(from, d, false)
	if !ok {
		return false
	}
	return ci.FocusCell(to)
}

// Jump moves focus to the first or last row or column in d.
func (ci *CellInteraction) Jump(d Direction) bool {
	if ci.state == StateEditing {
		return false
	}
	from, ok := ci.navOrigin()
	if !ok {
		return ci.focusFirst()
	}
	to, ok := ci.step(from, d, true)
	if !ok || to == from {
		return false
	}
	return ci.FocusCell(to)
}

func (ci *CellInteraction) navOrigin() (table.Coord, bool) {
	if ci.pending != nil {
		return *ci.pending, true
	}
	if ci.state == StateIdle {
		return table.Coord{}, false
	}
	return ci.focus, true
}

func (ci *CellInteraction) focusFirst() bool {
	idx, ok := ci.data.IndexAt(0)
	if !ok {
		return false
	}
	col, ok := ci.nextFocusable(-1, 1)
	if !ok {
		return false
	}
	return ci.FocusCell(table.Coord{RowIndex: idx, ColIndex: col})
}

// step resolves the neighbor of from in d. jump goes to the edge instead.
// Only focusable columns are visited.
func (ci *CellInteraction) step(from table.Coord, d Direction, jump bool) (table.Coord, bool) {
	to := from
	switch d {
	case DirLeft, DirRight:
		dir := 1
		if d == DirLeft {
			dir = -1
		}
		col, ok := ci.nextFocusable(from.ColIndex, dir)
		if !ok {
			return from, false
		}
		if jump {
			for {
				next, ok := ci.nextFocusable(col, dir)
				if !ok {
					break
				}
				col = next
			}
		}
		to.ColIndex = col
	case DirUp, DirDown:
		pos, ok := ci.data.Position(from.RowIndex)
		if !ok {
			return from, false
		}
		switch {
		case jump && d == DirUp:
			pos = 0
		case jump:
			pos = ci.data.RowCount() - 1
		case d == DirUp:
			pos--
		default:
			pos++
		}
		idx, ok := ci.data.IndexAt(pos)
		if !ok {
			return from, false
		}
		to.RowIndex = idx
	}
	return to, true
}

func (ci *CellInteraction) nextFocusable(colIndex, dir int) (int, bool) {
	for c := colIndex + dir; c >= 0 && c <= ci.data.LastColumn(); c += dir {
		if col, ok := ci.data.Column(c); ok && col.Focusable {
			return c, true
		}
	}
	return colIndex, false
}

// Select sets the selection rectangle between anchor and cursor. Either end
// in a standard column rejects the selection.
func (ci *CellInteraction) Select(anchor, cursor table.Coord) bool {
	if !ci.isDataColumn(anchor.ColIndex) || !ci.isDataColumn(cursor.ColIndex) {
		return false
	}
	if _, ok := ci.data.Position(anchor.RowIndex); !ok {
		return false
	}
	if _, ok := ci.data.Position(cursor.RowIndex); !ok {
		return false
	}
	if ci.edit != nil {
		ci.Cancel()
	}
	ci.state = StateSelecting
	ci.focus = anchor
	ci.anchor = anchor
	ci.cursor = cursor
	ci.pending = nil
	ci.applyFlags()
	return true
}

// Extend grows the selection one cell in d from the focused cell, or from
// the current cursor while already selecting.
func (ci *CellInteraction) Extend(d Direction) bool {
	var anchor, from table.Coord
	switch ci.state {
	case StateSelecting:
		anchor, from = ci.anchor, ci.cursor
	case StateFocused:
		anchor, from = ci.focus, ci.focus
	default:
		return false
	}
	to := from
	switch d {
	case DirLeft:
		to.ColIndex--
	case DirRight:
		to.ColIndex++
	case DirUp, DirDown:
		next, ok := ci.step(from, d, false)
		if !ok {
			return false
		}
		to = next
	}
	if !ci.Select(anchor, to) {
		return false
	}
	pos, _ := ci.data.Position(to.RowIndex)
	ci.scroll.ScrollTo(pos)
	return true
}

// rect returns the rowIndex and column bounds of the selection, or of the
// focused cell.
func (ci *CellInteraction) rect() (rowLo, rowHi, colLo, colHi int, ok bool) {
	var a, b table.Coord
	switch ci.state {
	case StateSelecting:
		a, b = ci.anchor, ci.cursor
	case StateFocused, StateEditing:
		a, b = ci.focus, ci.focus
	default:
		return 0, 0, 0, 0, false
	}
	return min(a.RowIndex, b.RowIndex), max(a.RowIndex, b.RowIndex),
		min(a.ColIndex, b.ColIndex), max(a.ColIndex, b.ColIndex), true
}

// CopyText serializes the content of the selection, or the focused cell, in
// ascending rowIndex order with tabs between cells and newlines between rows.
func (ci *CellInteraction) CopyText() (string, bool) {
	rowLo, rowHi, colLo, colHi, ok := ci.rect()
	if !ok {
		return "", false
	}
	var sb strings.Builder
	for idx := rowLo; idx <= rowHi; idx++ {
		if idx > rowLo {
			sb.WriteByte('\n')
		}
		for col := colLo; col <= colHi; col++ {
			if col > colLo {
				sb.WriteByte('\t')
			}
			if c, ok := ci.data.Cell(col, idx); ok {
				sb.WriteString(table.ContentString(c.Content))
			}
		}
	}
	return sb.String(), true
}

// Copy places CopyText on the clipboard. Clipboard failures are logged.
func (ci *CellInteraction) Copy() bool {
	s, ok := ci.CopyText()
	if !ok {
		return false
	}
	if err := ci.clip.WriteText(s); err != nil {
		ci.log.Warn("clipboard write failed", "err", err)
		return false
	}
	ci.log.Debug("copied", "bytes", len(s))
	return true
}

// BeginEdit opens an editor on the focused cell. Non-editable cells are
// inert. Editing another cell cancels that edit first.
func (ci *CellInteraction) BeginEdit() bool {
	if ci.state != StateFocused && ci.state != StateEditing {
		return false
	}
	at := ci.focus
	if ci.edit != nil {
		if ci.edit.at == at {
			return false
		}
		ci.Cancel()
	}
	col, ok := ci.data.Column(at.ColIndex)
	if !ok || !col.Editable {
		return false
	}
	cell, ok := ci.data.Cell(at.ColIndex, at.RowIndex)
	if !ok {
		return false
	}

	width := ci.widths.Width(at.ColIndex)
	var ed Editor
	if ci.factory != nil {
		ed = ci.factory(at.ColIndex, at.RowIndex, cell.Content, width)
	}
	if ed == nil {
		ed = NewTextEditor(width)
	}
	ed.InitValue(cell.Content)

	ci.edit = &editSession{at: at, editor: ed}
	ci.state = StateEditing
	ci.applyFlags()
	return true
}

// Commit writes the editor value into the data model for the edited cell.
// When the editor reports an asynchronous write, the returned command
// delivers its outcome.
func (ci *CellInteraction) Commit() tea.Cmd {
	if ci.edit == nil {
		return nil
	}
	es := ci.edit
	ci.edit = nil
	ci.state = StateFocused

	v := es.editor.Value()
	before, err := ci.data.SetContent(es.at.ColIndex, es.at.RowIndex, v)
	if err != nil {
		ci.log.Warn("edit commit failed", "at", es.at.String(), "err", err)
		ci.applyFlags()
		return nil
	}
	done := es.editor.SetValue(v)
	ci.surface.refreshCell(es.at)
	ci.applyFlags()
	ci.log.Debug("edit committed", "at", es.at.String())

	if done == nil {
		return nil
	}
	epoch := ci.epoch
	return func() tea.Msg {
		return editResultMsg{epoch: epoch, at: es.at, before: before, after: v, err: done()}
	}
}

// Cancel drops the editor without touching the data model.
func (ci *CellInteraction) Cancel() {
	if ci.edit == nil {
		return
	}
	ci.edit = nil
	ci.state = StateFocused
	ci.applyFlags()
}

// UpdateEditor forwards msg to the active editor.
func (ci *CellInteraction) UpdateEditor(msg tea.Msg) tea.Cmd {
	if ci.edit == nil {
		return nil
	}
	return ci.edit.editor.Update(msg)
}

func (ci *CellInteraction) handleEditResult(msg editResultMsg) {
	if msg.err == nil {
		return
	}
	if msg.epoch != ci.epoch {
		ci.log.Debug("stale edit result dropped", "at", msg.at.String())
		return
	}
	if cur, ok := ci.data.Cell(msg.at.ColIndex, msg.at.RowIndex); !ok || !reflect.DeepEqual(cur.Content, msg.after) {
		ci.log.Debug("superseded edit result dropped", "at", msg.at.String(), "err", msg.err)
		if ci.onEditError != nil {
			ci.onEditError(msg.at, msg.err)
		}
		return
	}
	if _, err := ci.data.SetContent(msg.at.ColIndex, msg.at.RowIndex, msg.before); err != nil {
		ci.log.Warn("edit rollback failed", "at", msg.at.String(), "err", err)
		return
	}
	ci.surface.refreshCell(msg.at)
	ci.log.Warn("edit write failed, rolled back", "at", msg.at.String(), "err", msg.err)
	if ci.onEditError != nil {
		ci.onEditError(msg.at, msg.err)
	}
}

// Press handles a left press on body cell c. A second press on the same cell
// within the double-click interval starts editing.
func (ci *CellInteraction) Press(c table.Coord) bool {
	now := ci.now()
	double := !ci.lastAt.IsZero() && c == ci.lastPress && now.Sub(ci.lastAt) <= ci.doubleClick
	ci.lastPress, ci.lastAt = c, now

	if !ci.FocusCell(c) {
		return false
	}
	if double {
		ci.lastAt = time.Time{}
		return ci.BeginEdit()
	}
	ci.dragging = true
	ci.dragAnchor = c
	return true
}

// Drag extends a selection from the pressed cell to c.
func (ci *CellInteraction) Drag(c table.Coord) bool {
	if !ci.dragging || c == ci.dragAnchor {
		return false
	}
	return ci.Select(ci.dragAnchor, c)
}

func (ci *CellInteraction) Release() {
	ci.dragging = false
}

func (ci *CellInteraction) resync(Window) {
	ci.applyFlags()
	ci.resolvePending()
}

// applyFlags resolves the coordinate state onto the materialized rows.
func (ci *CellInteraction) applyFlags() {
	rowLo, rowHi, colLo, colHi, hasRect := -1, -1, 0, -1, false
	if ci.state == StateSelecting {
		rowLo, rowHi, colLo, colHi, hasRect = ci.rect()
	}
	ci.surface.forEach(func(r *surfaceRow) {
		r.clearFlags()
		if ci.state != StateIdle && r.index == ci.focus.RowIndex {
			r.focusCol = ci.focus.ColIndex
		}
		if ci.edit != nil && r.index == ci.edit.at.RowIndex {
			r.editCol = ci.edit.at.ColIndex
		}
		if hasRect && r.index >= rowLo && r.index <= rowHi {
			r.selLo, r.selHi = colLo, colHi
		}
	})
}
