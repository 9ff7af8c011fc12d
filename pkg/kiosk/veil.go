package kiosk

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// CaptionThreshold is the opacity above which the veil counts as covering
// and shows its caption during an arrival.
const CaptionThreshold = 0.02

// VeilState is everything the page needs to render the veil.
type VeilState struct {
	Opacity     float64
	Fade        time.Duration // CSS transition duration for this change
	Message     string
	ShowMessage bool
}

// VeilRenderer applies veil state to the page.
type VeilRenderer interface {
	RenderVeil(ctx context.Context, state VeilState) error
}

// Veil is the full-viewport overlay that hides the seam between loads.
// It never intercepts input.
type Veil struct {
	renderer VeilRenderer
	clock    Clock

	mu       sync.Mutex
	state    VeilState
	announce bool
}

// NewVeil creates a veil whose page element already matches initial (the
// injected page script builds it from the URL before first paint).
func NewVeil(renderer VeilRenderer, clock Clock, initial VeilState) *Veil {
	return &Veil{
		renderer: renderer,
		clock:    clock,
		state:    initial,
	}
}

// State returns the current veil state.
func (v *Veil) State() VeilState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// SetMessage updates the caption.
func (v *Veil) SetMessage(ctx context.Context, text string) error {
	v.mu.Lock()
	v.state.Message = text
	v.state.Fade = 0
	v.state.ShowMessage = v.captionVisible()
	state := v.state
	v.mu.Unlock()

	return v.render(ctx, state)
}

// Announce switches the veil into pre-navigation mode: the caption is shown
// regardless of opacity from now on.
func (v *Veil) Announce(ctx context.Context, text string) error {
	v.mu.Lock()
	v.announce = true
	v.mu.Unlock()

	return v.SetMessage(ctx, text)
}

// FadeTo transitions the veil to opacity over duration and waits for the
// transition to finish. The wait is a plain timer and ignores pause.
func (v *Veil) FadeTo(ctx context.Context, opacity float64, duration time.Duration) error {
	v.mu.Lock()
	v.state.Opacity = opacity
	v.state.Fade = duration
	v.state.ShowMessage = v.captionVisible()
	state := v.state
	v.mu.Unlock()

	if err := v.render(ctx, state); err != nil {
		return err
	}
	return v.clock.Sleep(ctx, duration)
}

// Arrive runs the arrival hold for a covered load: the veil is shown opaque
// with the descriptor's message for exactly the cover duration, then fades
// out over fade. The hold ignores pause.
func (v *Veil) Arrive(ctx context.Context, d Descriptor, fade time.Duration) error {
	v.mu.Lock()
	v.announce = false
	v.state = VeilState{Opacity: 1, Message: d.Message}
	v.state.ShowMessage = v.captionVisible()
	state := v.state
	v.mu.Unlock()

	if err := v.render(ctx, state); err != nil {
		return err
	}
	if err := v.clock.Sleep(ctx, d.Cover); err != nil {
		return err
	}
	return v.FadeTo(ctx, 0, fade)
}

// captionVisible must be called with v.mu held.
func (v *Veil) captionVisible() bool {
	if v.state.Message == "" {
		return false
	}
	return v.announce || v.state.Opacity > CaptionThreshold
}

func (v *Veil) render(ctx context.Context, state VeilState) error {
	if err := v.renderer.RenderVeil(ctx, state); err != nil {
		return fmt.Errorf("veil render failed: %w", err)
	}
	return nil
}

// InitialVeil returns the veil state a load starts with, matching what the
// page script draws before the controller attaches.
func InitialVeil(a Arrival) VeilState {
	if !a.Active || !a.Descriptor.Covered() {
		return VeilState{}
	}
	return VeilState{
		Opacity:     1,
		Message:     a.Descriptor.Message,
		ShowMessage: a.Descriptor.Message != "",
	}
}
