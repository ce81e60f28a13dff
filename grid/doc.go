// Package grid implements a virtualized, interactive data grid as a Bubble Tea
// component.
//
// A Grid composes a handful of managers that share only narrow interfaces:
//
//   - ColumnLayout computes column widths and alignment and handles the resize
//     and sort gestures on the header.
//   - RowManager keeps the checked state of rows by rowIndex.
//   - Virtualizer decides which contiguous slice of rows is materialized and
//     loads the rest in pages, one tea.Cmd at a time.
//   - CellInteraction is the focus, selection and editing state machine.
//
// Interaction state is always addressed by (rowIndex, colIndex). Rendered rows
// are rebuilt whenever the materialized window changes and every manager
// re-resolves its visual state from coordinates at that point.
//
// The grid mounts on an *input.Mux and receives keys only while its router is
// focused there.
package grid
