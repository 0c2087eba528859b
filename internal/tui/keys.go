package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/longkey1/mentorchat/internal/mentor/conversation"
)

type keyMap struct {
	Quit     key.Binding
	Copy     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "終了"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "コピー"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "上へ"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "下へ"),
		),
	}
}

// toKey maps a terminal key press onto the conversation key-press policy.
// Terminals cannot report Shift+Enter, so Alt+Enter is the newline
// modifier, and bracketed paste stands in for input composition.
func toKey(msg tea.KeyMsg) conversation.Key {
	return conversation.Key{
		Enter:     msg.Type == tea.KeyEnter,
		Shift:     msg.Alt,
		Composing: msg.Paste,
	}
}
