package main

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/iw2rmb/datagrid/grid"
)

var (
	helpKey = key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "keys"))
	quitKey = key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit"))

	helpFrame = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// keyHelp is the key reference shown over the grid.
type keyHelp struct {
	model help.Model
	keys  grid.KeyMap
	shown bool
}

func newKeyHelp(km grid.KeyMap) keyHelp {
	h := help.New()
	h.ShowAll = true
	return keyHelp{model: h, keys: km}
}

func (h *keyHelp) toggle() { h.shown = !h.shown }

// over composites the help box centered on base, which is first padded to
// width x height.
func (h keyHelp) over(base string, width, height int) string {
	if !h.shown {
		return base
	}
	base = lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, base)
	h.model.Width = max(width-4, 0)
	box := helpFrame.Render(h.model.View(h.keys) + "\n\n" + h.model.ShortHelpView([]key.Binding{helpKey, quitKey}))
	return overlay.Composite(box, base, overlay.Center, overlay.Center, 0, 0)
}
