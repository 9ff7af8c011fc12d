package kiosk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/entrhq/kiosk/pkg/types"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		name string
		ev   KeyEvent
		want types.Action
	}{
		{name: "space", ev: KeyEvent{Code: "Space", Key: " "}, want: types.ActionTogglePause},
		{name: "p", ev: KeyEvent{Code: "KeyP", Key: "p"}, want: types.ActionTogglePause},
		{name: "held space", ev: KeyEvent{Code: "Space", Key: " ", Repeat: true}, want: types.ActionNone},
		{name: "h", ev: KeyEvent{Code: "KeyH", Key: "h"}, want: types.ActionToggleHelp},
		{name: "shift h", ev: KeyEvent{Code: "KeyH", Key: "H", Shift: true}, want: types.ActionToggleHelp},
		{name: "exit combo", ev: KeyEvent{Code: "KeyX", Key: "X", Ctrl: true, Shift: true}, want: types.ActionExit},
		{name: "held exit combo", ev: KeyEvent{Code: "KeyX", Key: "X", Ctrl: true, Shift: true, Repeat: true}, want: types.ActionNone},
		{name: "ctrl x", ev: KeyEvent{Code: "KeyX", Key: "x", Ctrl: true}, want: types.ActionNone},
		{name: "ctrl p", ev: KeyEvent{Code: "KeyP", Key: "p", Ctrl: true}, want: types.ActionNone},
		{name: "fullscreen key", ev: KeyEvent{Code: "F11", Key: "F11"}, want: types.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapKey(tt.ev))
		})
	}
}
