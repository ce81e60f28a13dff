package table

import "strconv"

// Options configures a Table.
type Options struct {
	// SerialColumn prepends a serial-number column.
	SerialColumn bool
	// CheckboxColumn prepends a row-selection checkbox column.
	CheckboxColumn bool
}

// Table is the grid's data model: columns, rows in display order, stable row
// identity and the current sort.
type Table struct {
	opt Options

	columns []Column
	// standard is the number of leading standard columns in columns.
	standard int

	rows    []*Row // display order
	byIndex []*Row // rowIndex -> row
	pos     []int  // rowIndex -> display position, valid when !posDirty

	posDirty bool
	next     int

	sort    SortState
	version uint64
}

// New returns an empty table.
func New(opt Options) *Table {
	return &Table{
		opt:  opt,
		sort: SortState{ColIndex: -1},
	}
}

// Options returns the table's options.
func (t *Table) Options() Options { return t.opt }

// Version increases on every mutation of columns, rows, order or content.
func (t *Table) Version() uint64 { return t.version }

// Init rebuilds columns and rows from scratch and resets the rowIndex
// counter. columns and rows are loosely typed host values (see columnsFrom
// and rowsFrom); when either is not array-like Init returns a *TypeError and
// leaves the table untouched.
func (t *Table) Init(columns, rows any) error {
	const op = "table.Init"

	rawCols, err := columnsFrom(op, columns)
	if err != nil {
		return err
	}
	rawRows, err := rowsFrom(op, rows)
	if err != nil {
		return err
	}

	cols, standard := t.prepareColumns(rawCols)

	next := &Table{opt: t.opt, columns: cols, standard: standard, sort: SortState{ColIndex: -1}}
	next.appendPrepared(rawRows)
	next.prepareAlignments()

	t.columns = next.columns
	t.standard = next.standard
	t.rows = next.rows
	t.byIndex = next.byIndex
	t.next = next.next
	t.sort = next.sort
	t.posDirty = true
	t.pos = nil
	t.version++
	return nil
}

// AppendRows appends one row or a sequence of rows after the existing ones.
// Existing rows and their rowIndex values are untouched; new rows continue
// the counter.
func (t *Table) AppendRows(rows any) error {
	const op = "table.AppendRows"

	if isSingleRow(rows) {
		r, _ := rowFrom(rows)
		rows = [][]any{r}
	}
	rawRows, err := rowsFrom(op, rows)
	if err != nil {
		return err
	}
	if len(rawRows) == 0 {
		return nil
	}

	first := t.next
	t.appendPrepared(rawRows)
	if !t.posDirty {
		for i := first; i < t.next; i++ {
			t.pos = append(t.pos, len(t.rows)-(t.next-i))
		}
	}
	t.version++
	return nil
}

// prepareColumns injects the standard columns unless the input already
// carries them, and assigns colIndex values.
func (t *Table) prepareColumns(in []Column) ([]Column, int) {
	hasSerial, hasCheckbox := false, false
	for _, c := range in {
		switch c.Standard {
		case StandardSerial:
			hasSerial = true
		case StandardCheckbox:
			hasCheckbox = true
		}
	}

	cols := make([]Column, 0, len(in)+2)
	if t.opt.CheckboxColumn && !hasCheckbox {
		cols = append(cols, Column{Standard: StandardCheckbox})
	}
	if t.opt.SerialColumn && !hasSerial {
		cols = append(cols, Column{Standard: StandardSerial, Label: SerialLabel, Align: AlignCenter})
	}
	cols = append(cols, in...)

	standard := 0
	for i := range cols {
		cols[i].ColIndex = i
		if cols[i].IsStandard() {
			cols[i].Editable = false
			cols[i].Resizable = false
			cols[i].Sortable = false
			cols[i].Focusable = false
			standard++
		}
	}
	return cols, standard
}

// prepareAlignments right-aligns numeric data columns that declare no
// alignment, judged by kind or by the content of the first row.
func (t *Table) prepareAlignments() {
	var first *Row
	if len(t.rows) > 0 {
		first = t.rows[0]
	}
	for i := range t.columns {
		c := &t.columns[i]
		if c.IsStandard() || c.Align != AlignDefault {
			continue
		}
		if c.Kind == KindNumber {
			c.Align = AlignRight
			continue
		}
		if first != nil && i < len(first.Cells) && isNumeric(first.Cells[i].Content) {
			c.Align = AlignRight
		}
	}
}

func (t *Table) appendPrepared(raw [][]any) {
	for _, cells := range raw {
		t.appendRow(cells)
	}
}

func (t *Table) appendRow(raw []any) {
	index := t.next
	t.next++

	n := len(t.columns)
	if len(raw) < n {
		prefix := make([]any, 0, t.standard)
		for _, c := range t.columns[:t.standard] {
			switch c.Standard {
			case StandardCheckbox:
				prefix = append(prefix, "")
			case StandardSerial:
				prefix = append(prefix, strconv.Itoa(index+1))
			}
		}
		raw = append(prefix, raw...)
	}

	row := &Row{Index: index, Cells: make([]Cell, n)}
	for i := 0; i < n; i++ {
		var v any
		if i < len(raw) {
			v = raw[i]
		}
		row.Cells[i] = cellFrom(v, index, i)
		if row.Cells[i].Format == nil {
			row.Cells[i].Format = t.columns[i].Format
		}
	}

	t.rows = append(t.rows, row)
	t.byIndex = append(t.byIndex, row)
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.rows) }

// ColumnCount returns the number of columns, optionally excluding the
// standard columns.
func (t *Table) ColumnCount(skipStandard bool) int {
	if skipStandard {
		return len(t.columns) - t.standard
	}
	return len(t.columns)
}

// StandardColumnCount returns the number of injected standard columns.
func (t *Table) StandardColumnCount() int { return t.standard }

// FirstDataColumn returns the colIndex of the first data column.
func (t *Table) FirstDataColumn() int { return t.standard }

// LastColumn returns the colIndex of the last column, or -1 when there are
// no columns.
func (t *Table) LastColumn() int { return len(t.columns) - 1 }

// Columns returns a copy of the columns, optionally without the standard
// columns.
func (t *Table) Columns(skipStandard bool) []Column {
	cols := t.columns
	if skipStandard {
		cols = cols[t.standard:]
	}
	return append([]Column(nil), cols...)
}

// Column returns the column at colIndex.
func (t *Table) Column(colIndex int) (Column, bool) {
	if colIndex < 0 || colIndex >= len(t.columns) {
		return Column{}, false
	}
	return t.columns[colIndex], true
}

// StandardColumn returns the colIndex of the standard column of kind k.
func (t *Table) StandardColumn(k StandardKind) (int, bool) {
	for i := 0; i < t.standard; i++ {
		if t.columns[i].Standard == k {
			return i, true
		}
	}
	return -1, false
}

// Rows returns copies of the rows at display positions [start, end).
func (t *Table) Rows(start, end int) []Row {
	start = clampInt(start, 0, len(t.rows))
	end = clampInt(end, start, len(t.rows))
	out := make([]Row, 0, end-start)
	for _, r := range t.rows[start:end] {
		out = append(out, r.clone())
	}
	return out
}

// RowAt returns the row at display position pos.
func (t *Table) RowAt(pos int) (Row, bool) {
	if pos < 0 || pos >= len(t.rows) {
		return Row{}, false
	}
	return t.rows[pos].clone(), true
}

// IndexAt returns the rowIndex displayed at pos.
func (t *Table) IndexAt(pos int) (int, bool) {
	if pos < 0 || pos >= len(t.rows) {
		return -1, false
	}
	return t.rows[pos].Index, true
}

// Row returns the row with the given rowIndex.
func (t *Table) Row(rowIndex int) (Row, bool) {
	if rowIndex < 0 || rowIndex >= len(t.byIndex) {
		return Row{}, false
	}
	return t.byIndex[rowIndex].clone(), true
}

// Cell returns the cell at (colIndex, rowIndex).
func (t *Table) Cell(colIndex, rowIndex int) (Cell, bool) {
	if rowIndex < 0 || rowIndex >= len(t.byIndex) {
		return Cell{}, false
	}
	return t.byIndex[rowIndex].Cell(colIndex)
}

// Position returns the display position of rowIndex.
func (t *Table) Position(rowIndex int) (int, bool) {
	if rowIndex < 0 || rowIndex >= len(t.byIndex) {
		return -1, false
	}
	t.ensurePositions()
	return t.pos[rowIndex], true
}

// SetContent replaces the content of one cell and returns the previous
// content.
func (t *Table) SetContent(colIndex, rowIndex int, v any) (any, error) {
	if rowIndex < 0 || rowIndex >= len(t.byIndex) {
		return nil, ErrRowNotFound
	}
	row := t.byIndex[rowIndex]
	if colIndex < 0 || colIndex >= len(row.Cells) {
		return nil, ErrColumnNotFound
	}
	old := row.Cells[colIndex].Content
	row.Cells[colIndex].Content = v
	t.version++
	return old, nil
}

// Indexes returns every known rowIndex in ascending order.
func (t *Table) Indexes() []int {
	out := make([]int, len(t.byIndex))
	for i := range out {
		out[i] = i
	}
	return out
}

func (t *Table) ensurePositions() {
	if !t.posDirty && len(t.pos) == len(t.rows) {
		return
	}
	if cap(t.pos) >= len(t.byIndex) {
		t.pos = t.pos[:len(t.byIndex)]
	} else {
		t.pos = make([]int, len(t.byIndex))
	}
	for p, r := range t.rows {
		t.pos[r.Index] = p
	}
	t.posDirty = false
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
