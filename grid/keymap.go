package grid

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the grid key bindings.
type KeyMap struct {
	Up, Down, Left, Right                     key.Binding
	ShiftUp, ShiftDown, ShiftLeft, ShiftRight key.Binding
	JumpUp, JumpDown, JumpLeft, JumpRight     key.Binding

	Activate, Commit, Cancel key.Binding
	Copy                     key.Binding

	ToggleCheck, ToggleAll key.Binding
	Sort                   key.Binding

	PageUp, PageDown                  key.Binding
	ScrollColsLeft, ScrollColsRight   key.Binding
	ScrollToLastColumn, ScrollToFirst key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),

		ShiftUp:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "select up")),
		ShiftDown:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "select down")),
		ShiftLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "select left")),
		ShiftRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "select right")),

		// Terminals differ on which modifier they report with arrows.
		JumpUp:    key.NewBinding(key.WithKeys("ctrl+up", "alt+up"), key.WithHelp("ctrl+↑", "first row")),
		JumpDown:  key.NewBinding(key.WithKeys("ctrl+down", "alt+down"), key.WithHelp("ctrl+↓", "last row")),
		JumpLeft:  key.NewBinding(key.WithKeys("ctrl+left", "alt+left", "home"), key.WithHelp("ctrl+←", "first column")),
		JumpRight: key.NewBinding(key.WithKeys("ctrl+right", "alt+right", "end"), key.WithHelp("ctrl+→", "last column")),

		Activate: key.NewBinding(key.WithKeys("enter", "f2"), key.WithHelp("enter", "edit")),
		Commit:   key.NewBinding(key.WithKeys("enter", "tab"), key.WithHelp("enter", "save")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Copy:     key.NewBinding(key.WithKeys("ctrl+c", "y"), key.WithHelp("ctrl+c", "copy")),

		ToggleCheck: key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "check row")),
		ToggleAll:   key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "check all")),
		Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),

		PageUp:          key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:        key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		ScrollColsLeft:  key.NewBinding(key.WithKeys("shift+pgup", "ctrl+pgup"), key.WithHelp("shift+pgup", "scroll left")),
		ScrollColsRight: key.NewBinding(key.WithKeys("shift+pgdown", "ctrl+pgdown"), key.WithHelp("shift+pgdn", "scroll right")),

		ScrollToLastColumn: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "last column")),
		ScrollToFirst:      key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("ctrl+home", "top left")),
	}
}

// ShortHelp implements help.KeyMap.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Activate, km.Copy, km.ToggleCheck, km.Sort}
}

// FullHelp implements help.KeyMap.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Up, km.Down, km.Left, km.Right, km.PageUp, km.PageDown},
		{km.ShiftUp, km.ShiftDown, km.ShiftLeft, km.ShiftRight, km.Copy},
		{km.JumpUp, km.JumpDown, km.JumpLeft, km.JumpRight, km.ScrollToFirst, km.ScrollToLastColumn},
		{km.Activate, km.Commit, km.Cancel, km.ToggleCheck, km.ToggleAll, km.Sort},
	}
}
