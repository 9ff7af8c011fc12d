package types

import "time"

// KioskEventType defines the type of event emitted during playback.
type KioskEventType string

const (
	EventTypeLoad         KioskEventType = "load"          // EventTypeLoad indicates a page load was picked up by the controller.
	EventTypeInactive     KioskEventType = "inactive"      // EventTypeInactive indicates the load carries no kiosk flag or no playlist exists.
	EventTypeArrivalCover KioskEventType = "arrival_cover" // EventTypeArrivalCover indicates the veil is holding over a covered arrival.
	EventTypeTopPause     KioskEventType = "top_pause"     // EventTypeTopPause indicates the pre-scroll hold started.
	EventTypeDwell        KioskEventType = "dwell"         // EventTypeDwell indicates a non-scrollable page is being shown for the dwell period.
	EventTypeScroll       KioskEventType = "scroll"        // EventTypeScroll indicates the scroll animation started.
	EventTypeBottomPause  KioskEventType = "bottom_pause"  // EventTypeBottomPause indicates the post-scroll hold started.
	EventTypeAdvance      KioskEventType = "advance"       // EventTypeAdvance indicates the next page was chosen and the veil is closing.
	EventTypeNavigate     KioskEventType = "navigate"      // EventTypeNavigate indicates the full-page navigation was issued.
	EventTypePauseChanged KioskEventType = "pause_changed" // EventTypePauseChanged indicates the pause flag flipped.
	EventTypeHelpToggled  KioskEventType = "help_toggled"  // EventTypeHelpToggled indicates the help overlay was toggled.
	EventTypeExit         KioskEventType = "exit"          // EventTypeExit indicates kiosk mode was left and persisted state cleared.
	EventTypeError        KioskEventType = "error"         // EventTypeError indicates a load ended early because of an error.
)

// KioskEvent represents a playback event.
type KioskEvent struct {
	// Error contains error information for error events.
	Error error

	// URL is the page URL the event relates to (current page, or the
	// navigation target for navigate events).
	URL string

	// Page is the playlist identifier of the page the event relates to.
	Page string

	// Message is the veil caption for advance and arrival events.
	Message string

	// Type indicates the kind of event.
	Type KioskEventType

	// Index is the playlist position the event relates to.
	Index int

	// Total is the playlist length.
	Total int

	// Duration is the length of the phase that just started, when known.
	Duration time.Duration

	// Paused is the pause flag after a pause change.
	Paused bool
}

// EventSink receives playback events. Implementations must not block.
type EventSink func(*KioskEvent)

// Emit delivers ev to sink if sink is set.
func (sink EventSink) Emit(ev *KioskEvent) {
	if sink != nil {
		sink(ev)
	}
}

// NewPhaseEvent creates an event for a sequencer phase on the given page.
func NewPhaseEvent(typ KioskEventType, page string, index, total int, d time.Duration) *KioskEvent {
	return &KioskEvent{
		Type:     typ,
		Page:     page,
		Index:    index,
		Total:    total,
		Duration: d,
	}
}

// NewPauseEvent creates a pause change event.
func NewPauseEvent(paused bool) *KioskEvent {
	return &KioskEvent{
		Type:   EventTypePauseChanged,
		Paused: paused,
	}
}

// NewErrorEvent creates an error event.
func NewErrorEvent(err error) *KioskEvent {
	return &KioskEvent{
		Type:  EventTypeError,
		Error: err,
	}
}
