package grid

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/datagrid/table"
)

// stubEditor hands back whatever the test puts in v.
type stubEditor struct {
	v    any
	done Completion
}

func (e *stubEditor) InitValue(v any) { e.v = v }
func (e *stubEditor) Value() any { return e.v }
func (e *stubEditor) SetValue(any) Completion { return e.done }
func (e *stubEditor) Update(tea.Msg) tea.Cmd { return nil }
func (e *stubEditor) View() string { return "<edit>" }

func stubFactory(ed *stubEditor) EditorFactory {
	return func(int, int, any, int) Editor { return ed }
}

func snapshot(g *Grid) [][]any {
	var out [][]any
	for _, r := range g.Table().Rows(0, g.RowCount()) {
		row := make([]any, len(r.Cells))
		for i, c := range r.Cells {
			row[i] = c.Content
		}
		out = append(out, row)
	}
	return out
}

func changedCells(a, b [][]any) int {
	n := 0
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				n++
			}
		}
	}
	return n
}

func TestEdit_CommitChangesExactlyOneCell(t *testing.T) {
	ed := &stubEditor{}
	cfg := standardConfig()
	cfg.Editing = stubFactory(ed)
	g := newTestGrid(t, cfg)
	before := snapshot(g)

	at := table.Coord{RowIndex: 1, ColIndex: 3}
	if !g.Interaction().FocusCell(at) {
		t.Fatalf("FocusCell(%v) failed", at)
	}
	g.Update(keyOf(tea.KeyEnter))
	if got := g.Interaction().State(); got != StateEditing {
		t.Fatalf("state after activate: got %v, want %v", got, StateEditing)
	}
	if ed.v != 4 {
		t.Fatalf("editor seed: got %v, want 4", ed.v)
	}

	ed.v = 40
	if cmd := g.Update(keyOf(tea.KeyEnter)); cmd != nil {
		t.Fatalf("synchronous commit returned a command")
	}
	after := snapshot(g)
	if n := changedCells(before, after); n != 1 {
		t.Fatalf("changed cells: got %d, want 1", n)
	}
	if c, _ := g.Cell(3, 1); c.Content != 40 {
		t.Fatalf("committed content: got %v, want 40", c.Content)
	}
	if got := g.Interaction().State(); got != StateFocused {
		t.Fatalf("state after commit: got %v, want %v", got, StateFocused)
	}
	if sr := g.surface.lookup(1); sr == nil || sr.text[3] != "40" {
		t.Fatalf("committed cell not re-rendered")
	}
}

func TestEdit_CancelChangesNothing(t *testing.T) {
	ed := &stubEditor{}
	cfg := standardConfig()
	cfg.Editing = stubFactory(ed)
	g := newTestGrid(t, cfg)
	before := snapshot(g)

	g.Interaction().FocusCell(table.Coord{RowIndex: 0, ColIndex: 2})
	g.Update(keyOf(tea.KeyEnter))
	ed.v = "changed"
	g.Update(keyOf(tea.KeyEsc))

	if n := changedCells(before, snapshot(g)); n != 0 {
		t.Fatalf("changed cells after cancel: got %d, want 0", n)
	}
	if got := g.Interaction().State(); got != StateFocused {
		t.Fatalf("state after cancel: got %v, want %v", got, StateFocused)
	}
}

func TestEdit_DefaultTextEditorKeepsNumbers(t *testing.T) {
	g := newTestGrid(t, standardConfig())
	g.Interaction().FocusCell(table.Coord{RowIndex: 0, ColIndex: 2})
	g.Update(keyOf(tea.KeyEnter))
	g.Update(runesOf("5"))
	g.Update(keyOf(tea.KeyEnter))

	if c, _ := g.Cell(2, 0); c.Content != 15 {
		t.Fatalf("content after typing: got %#v, want 15", c.Content)
	}
}

func TestEdit_AsyncFailureRollsBack(t *testing.T) {
	boom := errors.New("write failed")
	ed := &stubEditor{done: func() error { return boom }}
	var reported []error
	cfg := standardConfig()
	cfg.Editing = stubFactory(ed)
	cfg.Events.OnEditError = func(at table.Coord, err error) {
		if at != (table.Coord{RowIndex: 0, ColIndex: 2}) {
			t.Errorf("error coord: got %v", at)
		}
		reported = append(reported, err)
	}
	g := newTestGrid(t, cfg)

	g.Interaction().FocusCell(table.Coord{RowIndex: 0, ColIndex: 2})
	g.Interaction().BeginEdit()
	ed.v = 99
	cmd := g.Interaction().Commit()
	if cmd == nil {
		t.Fatalf("asynchronous commit must return a command")
	}
	if c, _ := g.Cell(2, 0); c.Content != 99 {
		t.Fatalf("optimistic content: got %v, want 99", c.Content)
	}

	g.Update(cmd())
	if c, _ := g.Cell(2, 0); c.Content != 1 {
		t.Fatalf("content after rollback: got %v, want 1", c.Content)
	}
	if len(reported) != 1 || !errors.Is(reported[0], boom) {
		t.Fatalf("reported errors: got %v", reported)
	}
}

func TestEdit_AsyncResultAfterRefreshIsDropped(t *testing.T) {
	ed := &stubEditor{done: func() error { return errors.New("late") }}
	cfg := standardConfig()
	cfg.Editing = stubFactory(ed)
	g := newTestGrid(t, cfg)

	g.Interaction().FocusCell(table.Coord{RowIndex: 0, ColIndex: 2})
	g.Interaction().BeginEdit()
	ed.v = 99
	cmd := g.Interaction().Commit()

	if _, err := g.Refresh([]string{"A", "B"}, [][]any{{7, 8}}); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	g.Update(cmd())
	if c, _ := g.Cell(2, 0); c.Content != 7 {
		t.Fatalf("stale rollback touched new data: got %v, want 7", c.Content)
	}
}

func TestEdit_NonEditableIsNoop(t *testing.T) {
	g := newTestGrid(t, Config{
		Columns: []table.ColumnSpec{{Label: "ro", NoEdit: true}, {Label: "rw"}},
		Rows:    [][]any{{1, 2}},
	})
	g.Interaction().FocusCell(table.Coord{RowIndex: 0, ColIndex: 0})
	if g.Interaction().BeginEdit() {
		t.Fatalf("BeginEdit on non-editable column succeeded")
	}
	if got := g.Interaction().State(); got != StateFocused {
		t.Fatalf("state: got %v, want %v", got, StateFocused)
	}
}

func TestEdit_OtherCellCancelsPriorEdit(t *testing.T) {
	ed := &stubEditor{}
	cfg := standardConfig()
	cfg.Editing = stubFactory(ed)
	g := newTestGrid(t, cfg)
	ci := g.Interaction()

	ci.FocusCell(table.Coord{RowIndex: 0, ColIndex: 2})
	ci.BeginEdit()
	ed.v = "lost"
	ci.FocusCell(table.Coord{RowIndex: 1, ColIndex: 3})
	if !ci.BeginEdit() {
		t.Fatalf("BeginEdit on second cell failed")
	}
	at, _, ok := ci.Editing()
	if !ok || at != (table.Coord{RowIndex: 1, ColIndex: 3}) {
		t.Fatalf("editing: got %v (ok=%v)", at, ok)
	}
	if c, _ := g.Cell(2, 0); c.Content != 1 {
		t.Fatalf("first edit leaked into data: got %v", c.Content)
	}
	if ci.BeginEdit() {
		t.Fatalf("BeginEdit on the cell already being edited must be a no-op")
	}
}

func TestFocus_StandardColumnIsNoop(t *testing.T) {
	g := newTestGrid(t, standardConfig())
	for _, col := range []int{0, 1} {
		if g.Interaction().FocusCell(table.Coord{RowIndex: 0, ColIndex: col}) {
			t.Fatalf("focused standard column %d", col)
		}
	}
	if got := g.Interaction().State(); got != StateIdle {
		t.Fatalf("state: got %v, want %v", got, StateIdle)
	}
}

func TestNavigation_ClampsAtDataEdges(t *testing.T) {
	g := newTestGrid(t, standardConfig())
	ci := g.Interaction()
	ci.FocusCell(table.Coord{RowIndex: 0, ColIndex: 2})

	cases := []struct {
		key  tea.KeyType
		want table.Coord
	}{
		{key: tea.KeyLeft, want: table.Coord{RowIndex: 0, ColIndex: 2}},
		{key: tea.KeyUp, want: table.Coord{RowIndex: 0, ColIndex: 2}},
		{key: tea.KeyRight, want: table.Coord{RowIndex: 0, ColIndex: 3}},
		{key: tea.KeyRight, want: table.Coord{RowIndex: 0, ColIndex: 3}},
		{key: tea.KeyDown, want: table.Coord{RowIndex: 1, ColIndex: 3}},
		{key: tea.KeyDown, want: table.Coord{RowIndex: 1, ColIndex: 3}},
		{key: tea.KeyCtrlLeft, want: table.Coord{RowIndex: 1, ColIndex: 2}},
		{key: tea.KeyCtrlUp, want: table.Coord{RowIndex: 0, ColIndex: 2}},
	}
	for i, tc := range cases {
		g.Update(keyOf(tc.key))
		if got, _ := ci.Focus(); got != tc.want {
			t.Fatalf("step %d (%v): got %v, want %v", i, tc.key, got, tc.want)
		}
	}
}

func TestNavigation_FollowsDisplayOrder(t *testing.T) {
	g := newTestGrid(t, Config{
		Columns:          []string{"v"},
		Rows:             [][]any{{"b"}, {"c"}, {"a"}},
		DisableWindowing: true,
	})
	g.SortRows(0, table.SortAsc)
	ci := g.Interaction()
	ci.FocusCell(table.Coord{RowIndex: 2, ColIndex: 0})
	g.Update(keyOf(tea.KeyDown))
	if got, _ := ci.Focus(); got.RowIndex != 0 {
		t.Fatalf("row below %q: got rowIndex %d, want 0", "a", got.RowIndex)
	}
}

func TestNavigation_WaitsForUnloadedRow(t *testing.T) {
	g := newTestGrid(t, Config{Columns: []string{"n", "m"}, Rows: numberedRows(5), PageSize: 2})
	cmd := g.Init()
	ci := g.Interaction()
	ci.FocusCell(table.Coord{RowIndex: 0, ColIndex: 0})

	g.Update(keyOf(tea.KeyCtrlDown))
	if p, ok := ci.Pending(); !ok || p.RowIndex != 4 {
		t.Fatalf("pending: got %v (ok=%v), want row 4", p, ok)
	}
	if got, _ := ci.Focus(); got.RowIndex != 0 {
		t.Fatalf("focus moved before row was materialized: got %v", got)
	}

	drain(g, cmd)
	if _, ok := ci.Pending(); ok {
		t.Fatalf("pending focus not resolved after load")
	}
	if got, _ := ci.Focus(); got != (table.Coord{RowIndex: 4, ColIndex: 0}) {
		t.Fatalf("focus after load: got %v, want row 4 col 0", got)
	}
	if sr := g.surface.lookup(4); sr == nil || sr.focusCol != 0 {
		t.Fatalf("focused row not flagged on the surface")
	}
}

func TestSelection_RejectsStandardColumns(t *testing.T) {
	g := newTestGrid(t, standardConfig())
	ci := g.Interaction()
	ci.FocusCell(table.Coord{RowIndex: 0, ColIndex: 2})

	if ci.Select(table.Coord{RowIndex: 0, ColIndex: 1}, table.Coord{RowIndex: 1, ColIndex: 3}) {
		t.Fatalf("selection anchored in serial column accepted")
	}
	if got := ci.State(); got != StateFocused {
		t.Fatalf("state after rejected select: got %v, want %v", got, StateFocused)
	}
	g.Update(keyOf(tea.KeyShiftLeft))
	if _, _, ok := ci.Selection(); ok {
		t.Fatalf("shift+left into a standard column started a selection")
	}
}

func TestCopy_TwoByTwoSelection(t *testing.T) {
	clip := &fakeClipboard{}
	cfg := standardConfig()
	cfg.Clipboard = clip
	g := newTestGrid(t, cfg)

	g.Interaction().FocusCell(table.Coord{RowIndex: 0, ColIndex: 2})
	g.Update(keyOf(tea.KeyShiftRight))
	g.Update(keyOf(tea.KeyShiftDown))
	g.Update(keyOf(tea.KeyCtrlC))

	if want := "1\t2\n3\t4"; clip.text != want {
		t.Fatalf("clipboard: got %q, want %q", clip.text, want)
	}
	for _, idx := range []int{0, 1} {
		sr := g.surface.lookup(idx)
		if sr == nil || !sr.selected(2) || !sr.selected(3) || sr.selected(1) {
			t.Fatalf("row %d selection flags wrong: %+v", idx, sr)
		}
	}
}

func TestCopy_SingleCellAndClipboardFailure(t *testing.T) {
	clip := &fakeClipboard{err: errors.New("no clipboard")}
	cfg := standardConfig()
	cfg.Clipboard = clip
	g := newTestGrid(t, cfg)
	ci := g.Interaction()

	if ci.Copy() {
		t.Fatalf("copy without focus succeeded")
	}
	ci.FocusCell(table.Coord{RowIndex: 1, ColIndex: 2})
	if got, _ := ci.CopyText(); got != "3" {
		t.Fatalf("single cell text: got %q, want %q", got, "3")
	}
	if ci.Copy() {
		t.Fatalf("copy reported success on clipboard failure")
	}
	if got := ci.State(); got != StateFocused {
		t.Fatalf("state after clipboard failure: got %v", got)
	}
}

func TestMouse_DoubleClickEdits(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	cfg := standardConfig()
	cfg.Now = clock.Now
	cfg.DisableWindowing = true
	g := newTestGrid(t, cfg)

	x := g.Layout().ColumnStart(2)
	press := tea.MouseMsg{X: x, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	release := tea.MouseMsg{X: x, Y: 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}

	g.Update(press)
	g.Update(release)
	if got := g.Interaction().State(); got != StateFocused {
		t.Fatalf("state after click: got %v, want %v", got, StateFocused)
	}

	clock.t = clock.t.Add(time.Second)
	g.Update(press)
	g.Update(release)
	if got := g.Interaction().State(); got != StateFocused {
		t.Fatalf("slow second click started editing")
	}

	clock.t = clock.t.Add(100 * time.Millisecond)
	g.Update(press)
	if got := g.Interaction().State(); got != StateEditing {
		t.Fatalf("state after double click: got %v, want %v", got, StateEditing)
	}
}

func TestMouse_DragSelects(t *testing.T) {
	cfg := standardConfig()
	cfg.DisableWindowing = true
	g := newTestGrid(t, cfg)

	xA, xB := g.Layout().ColumnStart(2), g.Layout().ColumnStart(3)
	g.Update(tea.MouseMsg{X: xA, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	g.Update(tea.MouseMsg{X: xB, Y: 2, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	g.Update(tea.MouseMsg{X: xB, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	a, c, ok := g.Interaction().Selection()
	if !ok {
		t.Fatalf("drag did not select")
	}
	if a != (table.Coord{RowIndex: 0, ColIndex: 2}) || c != (table.Coord{RowIndex: 1, ColIndex: 3}) {
		t.Fatalf("selection: got %v..%v", a, c)
	}
}

func TestMouse_CheckboxCellTogglesRow(t *testing.T) {
	var events []bool
	cfg := standardConfig()
	cfg.DisableWindowing = true
	cfg.Events.OnCheck = func(_ int, on bool) { events = append(events, on) }
	g := newTestGrid(t, cfg)

	click := tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	g.Update(click)
	if got := g.CheckedRows(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("checked rows: got %v, want [1]", got)
	}
	g.Update(click)
	if got := g.CheckedRows(); len(got) != 0 {
		t.Fatalf("checked rows after second click: got %v", got)
	}
	if len(events) != 2 || !events[0] || events[1] {
		t.Fatalf("OnCheck events: got %v", events)
	}
}

func TestCopy_SortedSelectionCoversRowIndexRange(t *testing.T) {
	clip := &fakeClipboard{}
	g := newTestGrid(t, Config{
		Columns:          []table.ColumnSpec{{Label: "A", Kind: table.KindNumber}},
		Rows:             [][]any{{2}, {1}, {4}, {3}},
		DisableWindowing: true,
		Clipboard:        clip,
	})
	g.SortRows(0, table.SortAsc)
	ci := g.Interaction()

	if !ci.Select(table.Coord{RowIndex: 0, ColIndex: 0}, table.Coord{RowIndex: 3, ColIndex: 0}) {
		t.Fatalf("Select rejected")
	}
	if !ci.Copy() {
		t.Fatalf("Copy failed")
	}
	if want := "2\n1\n4\n3"; clip.text != want {
		t.Fatalf("clipboard: got %q, want %q", clip.text, want)
	}

	// Rows 0 and 1 hold 2 and 1, which sort to the first and third position.
	ci.Select(table.Coord{RowIndex: 0, ColIndex: 0}, table.Coord{RowIndex: 1, ColIndex: 0})
	for idx, want := range map[int]bool{0: true, 1: true, 2: false, 3: false} {
		sr := g.surface.lookup(idx)
		if sr == nil || sr.selected(0) != want {
			t.Fatalf("row %d selected: got %+v, want %v", idx, sr, want)
		}
	}
	if got, _ := ci.CopyText(); got != "2\n1" {
		t.Fatalf("partial selection text: got %q, want %q", got, "2\n1")
	}
}

func TestCopy_UsesContentNotFormat(t *testing.T) {
	price := func(v any) string { return "$" + table.ContentString(v) + ".00" }
	g := newTestGrid(t, Config{
		Columns:          []table.ColumnSpec{{Label: "price", Format: price}},
		Rows:             [][]any{{5}},
		DisableWindowing: true,
	})
	ci := g.Interaction()
	ci.FocusCell(table.Coord{RowIndex: 0, ColIndex: 0})

	if got, _ := ci.CopyText(); got != "5" {
		t.Fatalf("copied text: got %q, want %q", got, "5")
	}
	if sr := g.surface.lookup(0); sr == nil || sr.text[0] != "$5.00" {
		t.Fatalf("rendered text should stay formatted: got %+v", sr)
	}
}

func TestEdit_FailedWriteKeepsNewerValue(t *testing.T) {
	ed := &stubEditor{done: func() error { return errors.New("write failed") }}
	var reported int
	cfg := standardConfig()
	cfg.Editing = stubFactory(ed)
	cfg.Events.OnEditError = func(table.Coord, error) { reported++ }
	g := newTestGrid(t, cfg)
	ci := g.Interaction()
	at := table.Coord{RowIndex: 0, ColIndex: 2}

	ci.FocusCell(at)
	ci.BeginEdit()
	ed.v = 50
	failed := ci.Commit()

	ed.done = nil
	ci.BeginEdit()
	ed.v = 100
	if cmd := ci.Commit(); cmd != nil {
		t.Fatalf("synchronous commit returned a command")
	}

	g.Update(failed())
	if c, _ := g.Cell(2, 0); c.Content != 100 {
		t.Fatalf("content after late failure: got %v, want 100", c.Content)
	}
	if reported != 1 {
		t.Fatalf("reported errors: got %d, want 1", reported)
	}
}
