package grid

import "github.com/iw2rmb/datagrid/table"

// surfaceRow is one materialized row. Its flags are transient: the surface is
// rebuilt on every window change and the managers set them again from
// coordinates.
type surfaceRow struct {
	index int
	pos   int
	text  []string

	checked  bool
	focusCol int
	editCol  int
	// selLo..selHi is the selected column range; empty when selLo > selHi.
	selLo, selHi int
}

func (r *surfaceRow) clearFlags() {
	r.focusCol = -1
	r.editCol = -1
	r.selLo, r.selHi = 0, -1
}

func (r *surfaceRow) selected(colIndex int) bool {
	return colIndex >= r.selLo && colIndex <= r.selHi
}

type surfaceData interface {
	RowAt(pos int) (table.Row, bool)
	Cell(colIndex, rowIndex int) (table.Cell, bool)
}

// surface holds the rendered rows of the current window.
type surface struct {
	data    surfaceData
	win     Window
	rows    []surfaceRow
	byIndex map[int]int
}

func newSurface(data surfaceData) *surface {
	return &surface{data: data, byIndex: make(map[int]int)}
}

func (s *surface) rebuild(w Window) {
	s.win = w
	s.rows = s.rows[:0]
	clear(s.byIndex)
	for pos := w.Start; pos < w.End; pos++ {
		row, ok := s.data.RowAt(pos)
		if !ok {
			break
		}
		sr := surfaceRow{index: row.Index, pos: pos, text: make([]string, len(row.Cells))}
		for i, c := range row.Cells {
			sr.text[i] = c.Text()
		}
		sr.clearFlags()
		s.byIndex[row.Index] = len(s.rows)
		s.rows = append(s.rows, sr)
	}
}

func (s *surface) lookup(rowIndex int) *surfaceRow {
	i, ok := s.byIndex[rowIndex]
	if !ok {
		return nil
	}
	return &s.rows[i]
}

func (s *surface) at(pos int) *surfaceRow {
	if !s.win.Contains(pos) || pos-s.win.Start >= len(s.rows) {
		return nil
	}
	return &s.rows[pos-s.win.Start]
}

func (s *surface) forEach(fn func(*surfaceRow)) {
	for i := range s.rows {
		fn(&s.rows[i])
	}
}

// refreshCell re-renders the text of one cell if its row is materialized.
func (s *surface) refreshCell(at table.Coord) {
	r := s.lookup(at.RowIndex)
	if r == nil || at.ColIndex < 0 || at.ColIndex >= len(r.text) {
		return
	}
	if c, ok := s.data.Cell(at.ColIndex, at.RowIndex); ok {
		r.text[at.ColIndex] = c.Text()
	}
}

func (s *surface) markChecked(rowIndex int, on bool) bool {
	r := s.lookup(rowIndex)
	if r == nil {
		return false
	}
	r.checked = on
	return true
}
