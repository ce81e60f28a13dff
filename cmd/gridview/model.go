package main

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/datagrid/grid"
	"github.com/iw2rmb/datagrid/input"
	"github.com/iw2rmb/datagrid/source"
	"github.com/iw2rmb/datagrid/table"
)

var statusStyle = lipgloss.NewStyle().Faint(true)

type model struct {
	mux  *input.Mux
	grid *grid.Grid
	help keyHelp

	// width and height of the grid area.
	width, height int

	// status is the last event worth telling the user about.
	status string
}

// newModel mounts one grid over data. editors, when set, builds the editor
// factory once the grid exists.
func newModel(data source.Data, cfg Config, log *slog.Logger, editors func(*grid.Grid) grid.EditorFactory) (*model, error) {
	km := grid.DefaultKeyMap()
	m := &model{mux: input.NewMux(), help: newKeyHelp(km)}

	gc := grid.Config{
		KeyMap:  &km,
		Columns: data.Columns,
		Rows:    data.Rows,
		Logger:  log,
		Events: grid.Events{
			OnEditError: func(at table.Coord, err error) {
				m.status = fmt.Sprintf("edit at %s rolled back: %v", at, err)
			},
			OnCheck: func(rowIndex int, checked bool) {
				m.status = fmt.Sprintf("row %d checked: %t", rowIndex, checked)
			},
		},
	}
	cfg.Grid.apply(&gc)
	if editors != nil {
		var factory grid.EditorFactory
		gc.Editing = func(colIndex, rowIndex int, value any, width int) grid.Editor {
			if factory == nil {
				factory = editors(m.grid)
			}
			return factory(colIndex, rowIndex, value, width)
		}
	}

	g, err := grid.New(m.mux, gc)
	if err != nil {
		return nil, err
	}
	m.grid = g
	return m, nil
}

func (m *model) Init() tea.Cmd { return m.grid.Init() }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, quitKey):
			return m, tea.Quit
		case key.Matches(msg, helpKey):
			m.help.toggle()
			return m, nil
		case m.help.shown:
			// Any other key closes the help first.
			m.help.toggle()
			return m, nil
		}
	case tea.WindowSizeMsg:
		// Leave the last line for the status bar.
		m.width, m.height = msg.Width, max(msg.Height-1, 1)
		m.grid.SetSize(m.width, m.height)
		return m, nil
	}
	return m, m.grid.Update(msg)
}

func (m *model) View() string {
	return m.help.over(m.grid.View(), m.width, m.height) + "\n" + statusStyle.Render(m.statusLine())
}

func (m *model) statusLine() string {
	if m.status != "" {
		return m.status
	}
	return fmt.Sprintf("%d rows, %d checked  f1 keys  ctrl+q quits", m.grid.RowCount(), len(m.grid.CheckedRows()))
}
