package kiosk

import "sync"

// PauseState is the read side of the pause flag, polled by every wait.
type PauseState interface {
	IsPaused() bool
}

// Pause is the process-wide pause flag for the current load. Every input
// surface calls Toggle; observers mirror the flag into the page (the
// kiosk-paused marker class) and the operator console.
type Pause struct {
	mu        sync.Mutex
	paused    bool
	observers []func(paused bool)
}

// NewPause creates an unpaused flag.
func NewPause() *Pause {
	return &Pause{}
}

// IsPaused returns whether playback is paused.
func (p *Pause) IsPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Toggle flips the flag and returns the new value.
func (p *Pause) Toggle() bool {
	p.mu.Lock()
	p.paused = !p.paused
	paused := p.paused
	observers := p.observers
	p.mu.Unlock()

	notify(observers, paused)
	return paused
}

// Set forces the flag. Observers are only notified on change.
func (p *Pause) Set(paused bool) {
	p.mu.Lock()
	if p.paused == paused {
		p.mu.Unlock()
		return
	}
	p.paused = paused
	observers := p.observers
	p.mu.Unlock()

	notify(observers, paused)
}

// OnChange registers fn to be called after every change, outside the lock.
func (p *Pause) OnChange(fn func(paused bool)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, fn)
}

func notify(observers []func(bool), paused bool) {
	for _, fn := range observers {
		fn(paused)
	}
}
