// Package tui provides the operator console: a terminal view of kiosk
// playback with the same pause, help and exit actions the display offers.
//
// The console is split into:
//   - executor.go: program lifecycle and event forwarding
//   - model.go: model state and Bubble Tea Update
//   - view.go: rendering
//   - keys.go: key bindings
//   - styles.go: colors and styles
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/kiosk/pkg/executor/player"
	"github.com/entrhq/kiosk/pkg/types"
)

const eventBuffer = 64

// Controller is the playback the console observes and drives.
type Controller interface {
	Dispatch(action types.Action)
	Status() player.Status
}

// Executor runs the console program.
type Executor struct {
	controller Controller
	title      string
	events     chan *types.KioskEvent
}

// NewExecutor creates a console for controller.
func NewExecutor(controller Controller, title string) *Executor {
	return &Executor{
		controller: controller,
		title:      title,
		events:     make(chan *types.KioskEvent, eventBuffer),
	}
}

// Sink returns an event sink feeding the console. It never blocks; events
// arriving faster than the console drains them are dropped.
func (e *Executor) Sink() types.EventSink {
	return func(ev *types.KioskEvent) {
		select {
		case e.events <- ev:
		default:
		}
	}
}

// Run shows the console until the operator quits or ctx is done.
func (e *Executor) Run(ctx context.Context) error {
	m := newModel(e.controller, e.title)
	program := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithContext(ctx))

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			select {
			case <-stop:
				return
			case ev := <-e.events:
				program.Send(eventMsg{event: ev})
			}
		}
	}()

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("failed to run console: %w", err)
	}
	return nil
}
