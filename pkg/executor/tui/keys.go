package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/entrhq/kiosk/pkg/types"
)

// keyMap holds the console key bindings. It implements help.KeyMap.
type keyMap struct {
	Pause key.Binding
	Help  key.Binding
	Exit  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space/p", "pause"),
		),
		Help: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "page help"),
		),
		Exit: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "exit kiosk"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit console"),
		),
	}
}

// action returns the kiosk action bound to a key, if any.
func (k keyMap) action(msg string) types.Action {
	for _, b := range []struct {
		binding key.Binding
		action  types.Action
	}{
		{k.Pause, types.ActionTogglePause},
		{k.Help, types.ActionToggleHelp},
		{k.Exit, types.ActionExit},
	} {
		for _, keyName := range b.binding.Keys() {
			if keyName == msg {
				return b.action
			}
		}
	}
	return types.ActionNone
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Help, k.Exit, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
