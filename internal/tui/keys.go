package tui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rnwolfe/fuhl/internal/session"
)

// keyMap is the fixed set of picker bindings. It doubles as the help.KeyMap
// for the status line.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Accept    key.Binding
	Cancel    key.Binding
	Backspace key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("⌫", "delete"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Accept, k.Cancel}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Accept, k.Cancel, k.Backspace},
	}
}

// events translates a key press into session events. A paste or a burst of
// typed runes arrives as one message and yields one Char event per rune.
func (k keyMap) events(msg tea.KeyMsg) []session.Event {
	switch {
	case key.Matches(msg, k.Cancel):
		return []session.Event{session.Cancel}
	case key.Matches(msg, k.Accept):
		return []session.Event{session.Accept}
	case key.Matches(msg, k.Up):
		return []session.Event{session.Up}
	case key.Matches(msg, k.Down):
		return []session.Event{session.Down}
	case key.Matches(msg, k.Backspace):
		return []session.Event{session.Backspace}
	}

	if msg.Alt {
		return []session.Event{session.Other}
	}

	switch msg.Type {
	case tea.KeySpace:
		return []session.Event{session.Char(' ')}
	case tea.KeyRunes:
		var evs []session.Event
		for _, r := range msg.Runes {
			if unicode.IsPrint(r) {
				evs = append(evs, session.Char(r))
			}
		}
		if len(evs) > 0 {
			return evs
		}
	}
	return []session.Event{session.Other}
}
