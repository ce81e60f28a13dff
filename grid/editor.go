package grid

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cast"

	"github.com/iw2rmb/datagrid/table"
)

// Completion reports the outcome of a write started by Editor.SetValue. It
// runs off the event loop as a tea.Cmd. A non-nil error rolls the cell back.
type Completion func() error

// Editor is a value editor bound to one cell while it is being edited.
type Editor interface {
	// InitValue seeds the editor with the cell content.
	InitValue(v any)
	// Value is the value to commit.
	Value() any
	// SetValue is called on commit after the data model took v. A nil
	// Completion means the write already succeeded.
	SetValue(v any) Completion

	Update(msg tea.Msg) tea.Cmd
	View() string
}

// EditorFactory builds the editor for the cell at (colIndex, rowIndex). width
// is the cell width in terminal cells. Returning nil selects the built-in
// text editor.
type EditorFactory func(colIndex, rowIndex int, value any, width int) Editor

// TextEditor is the built-in single line editor.
type TextEditor struct {
	input textinput.Model
	// orig decides how text converts back on commit.
	orig any
}

func NewTextEditor(width int) *TextEditor {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	if width > 1 {
		ti.Width = width - 1
	}
	return &TextEditor{input: ti}
}

func (e *TextEditor) InitValue(v any) {
	e.orig = v
	e.input.SetValue(table.ContentString(v))
	e.input.CursorEnd()
	e.input.Focus()
}

// Value returns the edited text, converted back to the numeric type of the
// original content when it still parses as one.
func (e *TextEditor) Value() any {
	s := e.input.Value()
	switch e.orig.(type) {
	case int:
		if n, err := cast.ToIntE(s); err == nil {
			return n
		}
	case int64:
		if n, err := cast.ToInt64E(s); err == nil {
			return n
		}
	case float64:
		if f, err := cast.ToFloat64E(s); err == nil {
			return f
		}
	}
	return s
}

func (e *TextEditor) SetValue(v any) Completion {
	e.input.SetValue(table.ContentString(v))
	return nil
}

func (e *TextEditor) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return cmd
}

func (e *TextEditor) View() string { return e.input.View() }
