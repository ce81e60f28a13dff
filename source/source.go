package source

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrUnsupportedFormat is returned by Load for file extensions it cannot
// decode.
var ErrUnsupportedFormat = errors.New("source: unsupported format")

// Data is a loaded data set.
type Data struct {
	// Columns holds labels (strings) or column objects (maps with "label",
	// "kind", "width", ...).
	Columns []any
	Rows    [][]any
	// RowIDs maps insertion position to the backing row id. It is only set
	// by SQLite queries that select _rowid_ first.
	RowIDs []int64
}

// Len returns the number of rows.
func (d Data) Len() int { return len(d.Rows) }

// RowID returns the backing row id of the row inserted at pos.
func (d Data) RowID(pos int) (int64, bool) {
	if pos < 0 || pos >= len(d.RowIDs) {
		return 0, false
	}
	return d.RowIDs[pos], true
}

// Load reads the file at path, dispatching on its extension.
func Load(ctx context.Context, path string) (Data, error) {
	if err := ctx.Err(); err != nil {
		return Data{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Data{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	var d Data
	switch ext {
	case ".csv":
		d, err = DecodeCSV(f)
	case ".json":
		d, err = DecodeJSON(f)
	case ".toml":
		d, err = DecodeTOML(f)
	default:
		return Data{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return Data{}, fmt.Errorf("load %s: %w", path, err)
	}
	return d, nil
}

// DecodeCSV reads CSV records. The first record is the header.
func DecodeCSV(r io.Reader) (Data, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Data{}, nil
	}
	if err != nil {
		return Data{}, fmt.Errorf("csv header: %w", err)
	}

	d := Data{Columns: make([]any, len(header))}
	for i, h := range header {
		d.Columns[i] = h
	}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Data{}, fmt.Errorf("csv record %d: %w", len(d.Rows)+1, err)
		}
		row := make([]any, len(rec))
		for i, v := range rec {
			row[i] = v
		}
		d.Rows = append(d.Rows, row)
	}
	return d, nil
}

type document struct {
	Columns []any   `json:"columns" toml:"columns"`
	Rows    [][]any `json:"rows" toml:"rows"`
}

// DecodeJSON reads {"columns": [...], "rows": [[...], ...]}.
func DecodeJSON(r io.Reader) (Data, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Data{}, fmt.Errorf("json: %w", err)
	}
	return Data{Columns: doc.Columns, Rows: doc.Rows}, nil
}

// DecodeTOML reads a document with top level columns and rows arrays.
func DecodeTOML(r io.Reader) (Data, error) {
	var doc document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return Data{}, fmt.Errorf("toml: %w", err)
	}
	return Data{Columns: doc.Columns, Rows: doc.Rows}, nil
}

// Generate synthesizes n rows over a fixed set of columns.
func Generate(n int) Data {
	d := Data{
		Columns: []any{
			"Name",
			map[string]any{"label": "Qty", "kind": "number"},
			map[string]any{"label": "Price", "kind": "number", "align": "right"},
			"Note",
		},
		Rows: make([][]any, 0, max(n, 0)),
	}
	for i := 0; i < n; i++ {
		d.Rows = append(d.Rows, []any{
			fmt.Sprintf("item-%05d", i),
			(i * 7) % 101,
			float64((i*13)%1000) / 4,
			strings.Repeat("·", i%9),
		})
	}
	return d
}
