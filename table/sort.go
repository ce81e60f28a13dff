package table

import (
	"cmp"
	"errors"
	"slices"
	"strings"

	"github.com/spf13/cast"
)

// CurrentSort returns the most recent sort applied to the rows.
func (t *Table) CurrentSort() SortState { return t.sort }

// SortRows reorders the rows for display by colIndex and order.
//
// Re-sorting the same column with only the direction flipped between asc and
// desc reverses the rows in place instead of comparing again. SortNone
// restores insertion order. rowIndex values and cell identity never change.
func (t *Table) SortRows(colIndex int, order SortOrder) error {
	col, ok := t.Column(colIndex)
	if !ok {
		return ErrColumnNotFound
	}

	if t.sort.ColIndex == colIndex && isFlip(t.sort.Order, order) {
		slices.Reverse(t.rows)
		t.sort.Order = order
		t.posDirty = true
		t.version++
		return nil
	}

	switch order {
	case SortNone:
		slices.SortFunc(t.rows, func(a, b *Row) int { return cmp.Compare(a.Index, b.Index) })
	case SortAsc:
		slices.SortStableFunc(t.rows, func(a, b *Row) int {
			return compareContent(col.Kind, a.Cells[colIndex].Content, b.Cells[colIndex].Content)
		})
	case SortDesc:
		slices.SortStableFunc(t.rows, func(a, b *Row) int {
			return compareContent(col.Kind, b.Cells[colIndex].Content, a.Cells[colIndex].Content)
		})
	}

	t.sort = SortState{ColIndex: colIndex, Order: order}
	t.posDirty = true
	t.version++
	return nil
}

func isFlip(from, to SortOrder) bool {
	return (from == SortAsc && to == SortDesc) || (from == SortDesc && to == SortAsc)
}

// compareContent orders two cell contents under the column's declared kind.
//
// KindNumber: numeric values compare numerically and sort before values that
// do not parse as numbers, which compare lexically among themselves.
// KindText: lexical comparison of the plain text form.
func compareContent(k Kind, a, b any) int {
	if k == KindNumber {
		fa, errA := numberOf(a)
		fb, errB := numberOf(b)
		switch {
		case errA == nil && errB == nil:
			return cmp.Compare(fa, fb)
		case errA == nil:
			return -1
		case errB == nil:
			return 1
		}
	}
	return strings.Compare(ContentString(a), ContentString(b))
}

var errNotNumber = errors.New("not a number")

func numberOf(v any) (float64, error) {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	if !isNumeric(v) {
		return 0, errNotNumber
	}
	return cast.ToFloat64E(v)
}
