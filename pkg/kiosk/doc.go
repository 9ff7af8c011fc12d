// Package kiosk implements the playback core of kiosk mode: an unattended
// display that cycles one browser tab through a fixed playlist of pages,
// scrolling each from top to bottom before moving on.
//
// # Loads
//
// Every full-page navigation starts a new load. Nothing survives from the
// previous load except two things:
//
//  1. Durable state in a storage.Store: the playlist, the settings object,
//     the title map and the current index.
//  2. The URL the tab arrived at: the kiosk flag and, for covered arrivals,
//     the transition descriptor (cover duration and caption).
//
// A Sequencer is therefore built fresh for each load with NewSequencer and
// runs once. Its phases are:
//
//	Arriving-Covered | Arriving-Plain -> Running -> Advancing
//
// Advancing persists the next index, closes the veil and navigates; the
// cycle continues in the next load.
//
// # Timing
//
// Waits are pause-aware (PauseWait) except the veil's fades and the arrival
// cover, which always run their full length. The scroll animation is
// frame-driven through a FrameSource and discounts paused time with an
// Elapsed accumulator, so resuming never jumps.
package kiosk
