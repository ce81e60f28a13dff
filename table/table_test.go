package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func newStandardTable(t *testing.T) *Table {
	t.Helper()
	tb := New(Options{SerialColumn: true, CheckboxColumn: true})
	require.NoError(t, tb.Init([]string{"A", "B"}, [][]any{{1, 2}, {3, 4}}))
	return tb
}

func TestInit_StandardColumnsAndBackfill(t *testing.T) {
	tb := newStandardTable(t)

	require.Equal(t, 4, tb.ColumnCount(false))
	require.Equal(t, 2, tb.ColumnCount(true))
	require.Equal(t, 2, tb.StandardColumnCount())
	require.Equal(t, 2, tb.FirstDataColumn())

	cb, ok := tb.Column(0)
	require.True(t, ok)
	require.Equal(t, StandardCheckbox, cb.Standard)
	sr, ok := tb.Column(1)
	require.True(t, ok)
	require.Equal(t, StandardSerial, sr.Standard)
	require.Equal(t, SerialLabel, sr.Label)
	for _, c := range []Column{cb, sr} {
		require.False(t, c.Editable)
		require.False(t, c.Sortable)
		require.False(t, c.Focusable)
		require.False(t, c.Resizable)
	}

	a, ok := tb.Column(2)
	require.True(t, ok)
	require.Equal(t, "A", a.Label)
	require.True(t, a.Editable && a.Sortable && a.Focusable && a.Resizable)

	cell, ok := tb.Cell(2, 0)
	require.True(t, ok)
	require.Equal(t, 1, cell.Content)

	serial, ok := tb.Cell(1, 1)
	require.True(t, ok)
	require.Equal(t, "2", serial.Text())

	for _, r := range tb.Rows(0, tb.RowCount()) {
		require.Len(t, r.Cells, tb.ColumnCount(false))
	}
}

func TestInit_DoesNotInjectStandardColumnsTwice(t *testing.T) {
	tb := newStandardTable(t)
	cols := tb.Columns(false)

	require.NoError(t, tb.Init(cols, [][]any{{"", "1", 5, 6}}))
	require.Equal(t, 4, tb.ColumnCount(false))

	cell, ok := tb.Cell(2, 0)
	require.True(t, ok)
	require.Equal(t, 5, cell.Content)
}

func TestInit_RejectsNonArrayInputWithoutMutation(t *testing.T) {
	tb := newStandardTable(t)
	before := tb.Version()

	err := tb.Init("A,B", [][]any{{1, 2}})
	var te *TypeError
	require.True(t, errors.As(err, &te))
	require.Equal(t, "columns", te.Arg)

	err = tb.Init([]string{"A"}, []any{1, 2})
	require.True(t, errors.As(err, &te))
	require.Equal(t, "rows", te.Arg)

	err = tb.Init([]string{"A"}, 42)
	require.True(t, errors.As(err, &te))

	require.Equal(t, before, tb.Version())
	require.Equal(t, 2, tb.RowCount())
	require.Equal(t, 4, tb.ColumnCount(false))
}

func TestInit_LooseColumnObjects(t *testing.T) {
	tb := New(Options{})
	cols := []any{
		"Name",
		map[string]any{"label": "Qty", "kind": "number", "editable": false, "width": 12},
		ColumnSpec{Label: "Note", NoSort: true, Align: AlignCenter},
	}
	require.NoError(t, tb.Init(cols, []any{[]any{"x", "7", "n"}}))

	qty, _ := tb.Column(1)
	require.Equal(t, KindNumber, qty.Kind)
	require.False(t, qty.Editable)
	require.True(t, qty.Sortable)
	require.Equal(t, 12, qty.Width)
	require.Equal(t, AlignRight, qty.Align)

	note, _ := tb.Column(2)
	require.False(t, note.Sortable)
	require.Equal(t, AlignCenter, note.Align)
}

func TestInit_AutoRightAlignsNumericFirstRow(t *testing.T) {
	tb := New(Options{})
	require.NoError(t, tb.Init([]string{"name", "amount"}, [][]any{{"a", "12.5"}, {"b", "x"}}))

	name, _ := tb.Column(0)
	amount, _ := tb.Column(1)
	require.Equal(t, AlignDefault, name.Align)
	require.Equal(t, AlignRight, amount.Align)
}

func TestInit_PadsShortAndTruncatesLongRows(t *testing.T) {
	tb := New(Options{})
	require.NoError(t, tb.Init([]string{"a", "b", "c"}, [][]any{{1}, {1, 2, 3, 4}}))

	r0, _ := tb.Row(0)
	r1, _ := tb.Row(1)
	require.Len(t, r0.Cells, 3)
	require.Nil(t, r0.Cells[2].Content)
	require.Len(t, r1.Cells, 3)
}

func TestAppendRows_ContinuesCounter(t *testing.T) {
	tb := newStandardTable(t)

	require.NoError(t, tb.AppendRows([]any{5, 6}))
	require.Equal(t, 3, tb.RowCount())

	r, ok := tb.Row(2)
	require.True(t, ok)
	require.Equal(t, 2, r.Index)
	require.Equal(t, "3", r.Cells[1].Text())
	require.Equal(t, 5, r.Cells[2].Content)

	require.NoError(t, tb.AppendRows([][]any{{7, 8}, {9, 10}}))
	require.Equal(t, 5, tb.RowCount())
	for i, idx := range []int{3, 4} {
		row, ok := tb.RowAt(3 + i)
		require.True(t, ok)
		require.Equal(t, idx, row.Index)
		pos, ok := tb.Position(idx)
		require.True(t, ok)
		require.Equal(t, 3+i, pos)
	}
}

func TestAppendRows_RejectsScalar(t *testing.T) {
	tb := newStandardTable(t)
	err := tb.AppendRows(7)
	var te *TypeError
	require.ErrorAs(t, err, &te)
	require.Equal(t, 2, tb.RowCount())
}

func TestRefresh_ResetsCounter(t *testing.T) {
	tb := newStandardTable(t)
	require.NoError(t, tb.AppendRows([]any{5, 6}))
	require.NoError(t, tb.Init([]string{"A", "B"}, [][]any{{9, 9}}))

	r, ok := tb.RowAt(0)
	require.True(t, ok)
	require.Equal(t, 0, r.Index)
	require.Equal(t, 1, tb.RowCount())
}

func TestSetContent_ReturnsPrevious(t *testing.T) {
	tb := newStandardTable(t)
	old, err := tb.SetContent(3, 1, "x")
	require.NoError(t, err)
	require.Equal(t, 4, old)

	c, _ := tb.Cell(3, 1)
	require.Equal(t, "x", c.Content)

	_, err = tb.SetContent(3, 99, "x")
	require.ErrorIs(t, err, ErrRowNotFound)
	_, err = tb.SetContent(99, 0, "x")
	require.ErrorIs(t, err, ErrColumnNotFound)
}

func TestCellText_AppliesFormatOnly(t *testing.T) {
	tb := New(Options{})
	upper := func(v any) string { return "<" + ContentString(v) + ">" }
	require.NoError(t, tb.Init([]ColumnSpec{{Label: "a", Format: upper}}, [][]any{{"x"}}))

	c, _ := tb.Cell(0, 0)
	require.Equal(t, "<x>", c.Text())
	require.Equal(t, "x", c.Content)
}
