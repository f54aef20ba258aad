package ui

import (
	"github.com/atomicstack/dirtree/internal/nav"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap holds the fixed key bindings of the browser.
type KeyMap struct {
	Ascend   key.Binding
	Descend  key.Binding
	Next     key.Binding
	Prev     key.Binding
	Toggle   key.Binding
	Refresh  key.Binding
	Yank     key.Binding
	Cut      key.Binding
	Paste    key.Binding
	CopyPath key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the bindings listed in the help footer.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Ascend: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h", "up a level"),
		),
		Descend: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l", "enter"),
		),
		Next: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "prev"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "toggle"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Cut: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "cut"),
		),
		Paste: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "paste"),
		),
		CopyPath: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy path"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Descend, k.Ascend, k.Toggle, k.Yank, k.Cut, k.Paste, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Descend, k.Ascend, k.Toggle},
		{k.Refresh, k.Yank, k.Cut, k.Paste, k.CopyPath, k.Quit},
	}
}

// Command maps a key press to a navigation command.
func (k KeyMap) Command(msg tea.KeyMsg) nav.Command {
	switch {
	case key.Matches(msg, k.Quit):
		return nav.CommandQuit
	case key.Matches(msg, k.Ascend):
		return nav.CommandAscend
	case key.Matches(msg, k.Descend):
		return nav.CommandDescend
	case key.Matches(msg, k.Next):
		return nav.CommandNext
	case key.Matches(msg, k.Prev):
		return nav.CommandPrev
	case key.Matches(msg, k.Toggle):
		return nav.CommandToggle
	case key.Matches(msg, k.Refresh):
		return nav.CommandRefresh
	case key.Matches(msg, k.Yank):
		return nav.CommandYank
	case key.Matches(msg, k.Cut):
		return nav.CommandCut
	case key.Matches(msg, k.Paste):
		return nav.CommandPaste
	case key.Matches(msg, k.CopyPath):
		return nav.CommandCopyPath
	}
	return nav.CommandNone
}
