package kiosk

import "github.com/entrhq/kiosk/pkg/types"

// KeyEvent is a keydown as reported by the page.
type KeyEvent struct {
	Code   string `json:"code"`
	Key    string `json:"key"`
	Ctrl   bool   `json:"ctrl"`
	Shift  bool   `json:"shift"`
	Alt    bool   `json:"alt"`
	Meta   bool   `json:"meta"`
	Repeat bool   `json:"repeat"`
}

// MapKey returns the action bound to a key press:
//
//	Space, P          toggle pause
//	H                 toggle help
//	Ctrl+Shift+X      exit kiosk mode
//
// Auto-repeat events from a held key map to nothing, so holding a key
// toggles once.
func MapKey(ev KeyEvent) types.Action {
	if ev.Repeat {
		return types.ActionNone
	}

	if ev.Ctrl && ev.Shift && ev.Code == "KeyX" {
		return types.ActionExit
	}
	if ev.Ctrl || ev.Alt || ev.Meta {
		return types.ActionNone
	}

	switch {
	case ev.Code == "Space", ev.Code == "KeyP":
		return types.ActionTogglePause
	case ev.Key == "h", ev.Key == "H":
		return types.ActionToggleHelp
	}
	return types.ActionNone
}
