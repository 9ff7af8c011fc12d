// Package player runs kiosk playback in a live tab.
//
// The Executor owns the load loop. Each load event of the tab starts a new
// kiosk.Sequencer built from the tab's storage and the loaded URL, after
// cancelling the sequencer of the previous load; that cancellation stands in
// for the unload a navigation performs. Input actions (keys, on-screen
// buttons, the operator console) are funnelled through Dispatch and handled
// on the loop goroutine.
package player
