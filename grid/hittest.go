package grid

import "github.com/iw2rmb/datagrid/table"

type hitArea uint8

const (
	hitNone hitArea = iota
	hitHeader
	hitBody
)

type hit struct {
	area     hitArea
	colIndex int
	// pos and rowIndex are set for body hits.
	pos      int
	rowIndex int
	// boundary is set when x is on the right edge of the column.
	boundary bool
	// x is the absolute x within a full line.
	x int
}

// hitTest maps a screen position to a header or body cell. Line 0 is the
// header.
func (g *Grid) hitTest(x, y int) hit {
	if x < 0 || y < 0 || (g.width > 0 && x >= g.width) {
		return hit{}
	}
	absX := x + g.xOffset

	h := hit{area: hitHeader, colIndex: -1, x: absX}
	start := 0
	for _, col := range g.data.Columns(false) {
		w := g.layout.HeaderWidth(col.ColIndex)
		if absX >= start && absX <= start+w {
			h.colIndex = col.ColIndex
			h.boundary = absX >= start+w-1
			break
		}
		start += w + separatorWidth
	}
	if h.colIndex < 0 {
		return hit{}
	}
	if y == 0 {
		return h
	}

	pos := g.window.Offset() + y - 1
	if g.window.Height() > 0 && y-1 >= g.window.Height() {
		return hit{}
	}
	idx, ok := g.data.IndexAt(pos)
	if !ok || !g.window.Window().Contains(pos) {
		return hit{}
	}
	h.area = hitBody
	h.pos = pos
	h.rowIndex = idx
	return h
}

func (h hit) coord() table.Coord {
	return table.Coord{RowIndex: h.rowIndex, ColIndex: h.colIndex}
}
