// Package browser drives the kiosk tab through Playwright.
//
// The package owns the Chromium process and exposes a single tab to the
// rest of the controller through small adapters:
//
//  1. SessionManager: starts Playwright and launches browser sessions
//  2. Session: one browser, context and page, with navigation and evaluation
//  3. Tab: implements the kiosk core's page contract (metrics, scrolling,
//     veil rendering, navigation) and its frame source
//  4. LocalStorage: implements storage.Store against the tab's localStorage
//
// # Page script
//
// Every document loaded in a kiosk session runs InitScript before any of
// its own scripts. The script draws the veil straight from the URL so a
// covered arrival is opaque from the first paint, keeps the kiosk-paused
// marker class, owns the help overlay, requests fullscreen, and forwards
// key presses and on-screen actions to the controller through bindings.
//
// # Threading
//
// Playwright delivers bindings and load events on its own goroutines.
// Handlers registered here must hand work off rather than block.
package browser
