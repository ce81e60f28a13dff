// Package source loads grid data from files and SQLite databases.
//
// Every loader produces a Data value whose Columns and Rows can be handed
// straight to grid.Config. Rows are plain cell contents; formatting, sort
// kind and alignment come from the column objects or from the grid's own
// inference.
package source
