package table

import (
	"reflect"

	"github.com/spf13/cast"
)

// columnsFrom converts loosely typed host columns into Column values.
//
// Accepted: []Column, []ColumnSpec, []string, and any slice whose elements
// are string, Column, ColumnSpec or map[string]any.
func columnsFrom(op string, v any) ([]Column, error) {
	switch cols := v.(type) {
	case []Column:
		return append([]Column(nil), cols...), nil
	case []ColumnSpec:
		out := make([]Column, 0, len(cols))
		for _, s := range cols {
			out = append(out, s.column())
		}
		return out, nil
	case []string:
		out := make([]Column, 0, len(cols))
		for _, s := range cols {
			out = append(out, ColumnSpec{Label: s}.column())
		}
		return out, nil
	}

	rv, ok := sliceValue(v)
	if !ok {
		return nil, typeError(op, "columns", "an array", v)
	}
	out := make([]Column, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		c, ok := columnFrom(rv.Index(i).Interface())
		if !ok {
			return nil, typeError(op, "columns", "an array of labels or column objects", rv.Index(i).Interface())
		}
		out = append(out, c)
	}
	return out, nil
}

func columnFrom(v any) (Column, bool) {
	switch c := v.(type) {
	case Column:
		return c, true
	case ColumnSpec:
		return c.column(), true
	case string:
		return ColumnSpec{Label: c}.column(), true
	case map[string]any:
		return columnFromMap(c), true
	}
	return Column{}, false
}

func columnFromMap(m map[string]any) Column {
	spec := ColumnSpec{}
	if v, ok := m["label"]; ok {
		spec.Label = ContentString(v)
	} else if v, ok := m["content"]; ok {
		spec.Label = ContentString(v)
	} else if v, ok := m["name"]; ok {
		spec.Label = ContentString(v)
	}
	spec.Width = cast.ToInt(m["width"])
	spec.MinWidth = cast.ToInt(m["minWidth"])
	if a, ok := ParseAlign(cast.ToString(m["align"])); ok {
		spec.Align = a
	}
	if k, ok := ParseKind(cast.ToString(m["kind"])); ok {
		spec.Kind = k
	} else if k, ok := ParseKind(cast.ToString(m["fieldtype"])); ok {
		spec.Kind = k
	}
	spec.NoEdit = isFalse(m, "editable")
	spec.NoResize = isFalse(m, "resizable")
	spec.NoSort = isFalse(m, "sortable")
	spec.NoFocus = isFalse(m, "focusable")
	return spec.column()
}

// isFalse reports whether m[key] is present and false; absent keys default
// to true.
func isFalse(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok || v == nil {
		return false
	}
	b, err := cast.ToBoolE(v)
	return err == nil && !b
}

// rowsFrom converts loosely typed host rows into raw cell slices.
func rowsFrom(op string, v any) ([][]any, error) {
	switch rows := v.(type) {
	case [][]any:
		out := make([][]any, len(rows))
		copy(out, rows)
		return out, nil
	case [][]string:
		out := make([][]any, 0, len(rows))
		for _, r := range rows {
			cells := make([]any, len(r))
			for i, s := range r {
				cells[i] = s
			}
			out = append(out, cells)
		}
		return out, nil
	}

	rv, ok := sliceValue(v)
	if !ok {
		return nil, typeError(op, "rows", "an array of arrays", v)
	}
	out := make([][]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		item := rv.Index(i).Interface()
		row, ok := rowFrom(item)
		if !ok {
			return nil, typeError(op, "rows", "an array of arrays", item)
		}
		out = append(out, row)
	}
	return out, nil
}

func rowFrom(v any) ([]any, bool) {
	if r, ok := v.([]any); ok {
		return r, true
	}
	rv, ok := sliceValue(v)
	if !ok {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// isSingleRow reports whether v looks like one row rather than a sequence of
// rows: a slice whose first element is not itself slice-like.
func isSingleRow(v any) bool {
	rv, ok := sliceValue(v)
	if !ok || rv.Len() == 0 {
		return false
	}
	_, nested := sliceValue(rv.Index(0).Interface())
	return !nested
}

func sliceValue(v any) (reflect.Value, bool) {
	if v == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return reflect.Value{}, false
	}
	// Strings and byte slices are scalars for our purposes.
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return reflect.Value{}, false
	}
	return rv, true
}

// cellFrom builds a cell from a raw row element.
func cellFrom(v any, rowIndex, colIndex int) Cell {
	switch c := v.(type) {
	case Cell:
		c.RowIndex = rowIndex
		c.ColIndex = colIndex
		return c
	case map[string]any:
		if content, ok := c["content"]; ok {
			return Cell{RowIndex: rowIndex, ColIndex: colIndex, Content: content}
		}
	}
	return Cell{RowIndex: rowIndex, ColIndex: colIndex, Content: v}
}

func isNumeric(v any) bool {
	switch x := v.(type) {
	case nil, bool:
		return false
	case string:
		if x == "" {
			return false
		}
	}
	_, err := cast.ToFloat64E(v)
	return err == nil
}
