package dashboard

import "github.com/charmbracelet/bubbles/key"

// browseKeys holds key bindings for browsing contacts.
type browseKeys struct {
	Up        key.Binding
	Down      key.Binding
	Tab       key.Binding
	Birthdays key.Binding
	Refresh   key.Binding
	Quit      key.Binding
}

// ShortHelp returns the browse bindings for the help bar.
func (k browseKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Tab, k.Birthdays, k.Refresh, k.Quit}
}

// FullHelp returns the browse bindings grouped for expanded help.
func (k browseKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Tab},
		{k.Birthdays, k.Refresh, k.Quit},
	}
}

// BrowseKeyMap returns the key bindings for the given mode. The birthdays
// toggle is labelled with the view it switches to.
func BrowseKeyMap(mode Mode) browseKeys {
	toggle := "birthdays"
	if mode == ModeBirthdays {
		toggle = "details"
	}
	return browseKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Birthdays: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", toggle),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
