package table

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Coord points at a cell by permanent identity rather than display position.
type Coord struct {
	RowIndex int
	ColIndex int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.RowIndex, c.ColIndex)
}

// Align is the horizontal alignment of a column's cells.
type Align uint8

const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return ""
	}
}

// ParseAlign parses "left", "center" or "right" (case-insensitive).
func ParseAlign(s string) (Align, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return AlignLeft, true
	case "center":
		return AlignCenter, true
	case "right":
		return AlignRight, true
	case "":
		return AlignDefault, true
	}
	return AlignDefault, false
}

// Kind declares the value semantics of a column. It selects the sort
// comparator: KindNumber compares numerically, KindText lexically.
type Kind uint8

const (
	KindText Kind = iota
	KindNumber
)

func (k Kind) String() string {
	if k == KindNumber {
		return "number"
	}
	return "text"
}

// ParseKind parses "text" or "number" (aliases: "string", "numeric", "int",
// "float", "currency").
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "string", "data":
		return KindText, true
	case "number", "numeric", "int", "float", "currency":
		return KindNumber, true
	}
	return KindText, false
}

// SortOrder is the tri-state sort indicator of a column.
type SortOrder uint8

const (
	SortNone SortOrder = iota
	SortAsc
	SortDesc
)

func (o SortOrder) String() string {
	switch o {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		return "none"
	}
}

// Next cycles none → asc → desc → none.
func (o SortOrder) Next() SortOrder {
	switch o {
	case SortNone:
		return SortAsc
	case SortAsc:
		return SortDesc
	default:
		return SortNone
	}
}

// ParseSortOrder parses "none", "asc" or "desc".
func ParseSortOrder(s string) (SortOrder, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, true
	case "asc":
		return SortAsc, true
	case "desc":
		return SortDesc, true
	}
	return SortNone, false
}

// StandardKind marks the non-data columns injected at normalization.
type StandardKind uint8

const (
	StandardNone StandardKind = iota
	StandardCheckbox
	StandardSerial
)

// SerialLabel is the header label of the serial-number column.
const SerialLabel = "Sr. No"

// ColumnSpec is the host-facing description of a data column.
//
// The zero value describes an editable, resizable, sortable, focusable
// text column; the No* flags opt out.
type ColumnSpec struct {
	Label    string
	Width    int
	MinWidth int
	Align    Align
	Kind     Kind
	Format   func(any) string

	NoEdit   bool
	NoResize bool
	NoSort   bool
	NoFocus  bool
}

// Column is a normalized column.
type Column struct {
	ColIndex int
	Label    string
	Width    int
	MinWidth int
	Align    Align
	Kind     Kind
	Format   func(any) string
	Standard StandardKind

	Editable  bool
	Resizable bool
	Sortable  bool
	Focusable bool
}

// IsStandard reports whether c is a serial-number or checkbox column.
func (c Column) IsStandard() bool { return c.Standard != StandardNone }

func (s ColumnSpec) column() Column {
	return Column{
		Label:     s.Label,
		Width:     s.Width,
		MinWidth:  s.MinWidth,
		Align:     s.Align,
		Kind:      s.Kind,
		Format:    s.Format,
		Editable:  !s.NoEdit,
		Resizable: !s.NoResize,
		Sortable:  !s.NoSort,
		Focusable: !s.NoFocus,
	}
}

// Cell is one value of the grid. Content is the logical value; Format is a
// presentation transform applied only by Text.
type Cell struct {
	RowIndex int
	ColIndex int
	Content  any
	Format   func(any) string
}

// Coord returns the cell's coordinate.
func (c Cell) Coord() Coord { return Coord{RowIndex: c.RowIndex, ColIndex: c.ColIndex} }

// Text returns the presentation text of the cell.
func (c Cell) Text() string {
	if c.Format != nil {
		return c.Format(c.Content)
	}
	return ContentString(c.Content)
}

// ContentString converts logical content to its plain text form. nil maps to
// the empty string.
func ContentString(v any) string {
	if v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

// Row is an ordered sequence of cells, one per column.
type Row struct {
	Index int
	Cells []Cell
}

// Cell returns the cell at colIndex.
func (r Row) Cell(colIndex int) (Cell, bool) {
	if colIndex < 0 || colIndex >= len(r.Cells) {
		return Cell{}, false
	}
	return r.Cells[colIndex], true
}

func (r *Row) clone() Row {
	return Row{Index: r.Index, Cells: append([]Cell(nil), r.Cells...)}
}

// SortState is the current sort of a table. ColIndex is -1 when the rows
// have never been sorted.
type SortState struct {
	ColIndex int
	Order    SortOrder
}
