package grid

import "github.com/charmbracelet/lipgloss"

// Style controls how the grid renders. Row highlights and column widths are
// layered on top of Cell through the rule registry.
type Style struct {
	Header       lipgloss.Style
	HeaderActive lipgloss.Style
	Separator    lipgloss.Style

	Cell     lipgloss.Style
	Focused  lipgloss.Style
	Selected lipgloss.Style
	Editing  lipgloss.Style

	// Checked is stored as the highlight rule of checked rows.
	Checked lipgloss.Style
	// Unchecked is the exception rule for unchecked rows while every row is
	// highlighted.
	Unchecked lipgloss.Style
}

func DefaultStyle() Style {
	muted := lipgloss.Color("240")
	return Style{
		Header:       lipgloss.NewStyle().Bold(true),
		HeaderActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Separator:    lipgloss.NewStyle().Foreground(muted),
		Cell:         lipgloss.NewStyle(),
		Focused:      lipgloss.NewStyle().Reverse(true),
		Selected:     lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Editing:      lipgloss.NewStyle().Underline(true),
		Checked:      lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Unchecked:    lipgloss.NewStyle().Background(lipgloss.NoColor{}),
	}
}
