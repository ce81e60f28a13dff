// Package table implements the pure, UI-free data model behind the grid.
//
// A Table owns the column set, the row set in display order, and the stable
// identity of every row. Rows are addressed by their rowIndex, assigned once
// from a monotonically increasing counter and never rewritten: sorting only
// permutes display order. Columns are addressed by colIndex, their position
// after normalization.
//
// Coordinates are 0-based. Display positions (RowAt, Position) are distinct
// from rowIndex values and change whenever rows are sorted.
package table
