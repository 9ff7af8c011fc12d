package types

// Action is a semantic operator action. Every input surface (keyboard,
// on-screen button, long-press gesture, operator console) maps to one.
type Action string

const (
	ActionNone        Action = ""             // ActionNone indicates the input maps to nothing.
	ActionTogglePause Action = "toggle_pause" // ActionTogglePause pauses or resumes playback.
	ActionToggleHelp  Action = "toggle_help"  // ActionToggleHelp shows or hides the help overlay.
	ActionExit        Action = "exit"         // ActionExit leaves kiosk mode and clears persisted state.
)

// ParseAction converts a name posted by a page surface into an Action.
// Unknown names map to ActionNone.
func ParseAction(name string) Action {
	switch Action(name) {
	case ActionTogglePause, ActionToggleHelp, ActionExit:
		return Action(name)
	default:
		return ActionNone
	}
}
