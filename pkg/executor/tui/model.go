package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/kiosk/pkg/executor/player"
	"github.com/entrhq/kiosk/pkg/types"
)

const (
	maxLogLines     = 8
	refreshInterval = 500 * time.Millisecond
)

type eventMsg struct {
	event *types.KioskEvent
}

type tickMsg time.Time

type model struct {
	controller Controller
	title      string
	status     player.Status
	log        []string
	keys       keyMap
	help       help.Model
	width      int
	quitting   bool
}

func newModel(controller Controller, title string) model {
	return model{
		controller: controller,
		title:      title,
		status:     controller.Status(),
		keys:       defaultKeyMap(),
		help:       help.New(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *model) Init() tea.Cmd {
	return tick()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if action := m.keys.action(msg.String()); action != types.ActionNone {
			m.controller.Dispatch(action)
		}

	case eventMsg:
		m.record(msg.event)
		m.status = m.controller.Status()

	case tickMsg:
		m.status = m.controller.Status()
		return m, tick()
	}
	return m, nil
}

func (m *model) record(ev *types.KioskEvent) {
	if ev == nil {
		return
	}
	line := fmt.Sprintf("%s  %s", time.Now().Format("15:04:05"), describe(ev))
	m.log = append(m.log, line)
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
}

// describe renders an event as one log line.
func describe(ev *types.KioskEvent) string {
	switch ev.Type {
	case types.EventTypeLoad:
		return "load " + ev.Page
	case types.EventTypeInactive:
		return fmt.Sprintf("inactive %s (%s)", ev.URL, ev.Message)
	case types.EventTypeArrivalCover:
		return fmt.Sprintf("covered arrival %s %q", ev.Duration, ev.Message)
	case types.EventTypeTopPause, types.EventTypeBottomPause, types.EventTypeDwell, types.EventTypeScroll:
		return fmt.Sprintf("%s %s for %s", ev.Type, ev.Page, ev.Duration)
	case types.EventTypeAdvance:
		return fmt.Sprintf("advance to #%d %q", ev.Index+1, ev.Message)
	case types.EventTypeNavigate:
		return fmt.Sprintf("navigate %s (%d/%d)", ev.Page, ev.Index+1, ev.Total)
	case types.EventTypePauseChanged:
		if ev.Paused {
			return "paused"
		}
		return "resumed"
	case types.EventTypeHelpToggled:
		return "help " + ev.Message
	case types.EventTypeExit:
		return "exited kiosk mode"
	case types.EventTypeError:
		return fmt.Sprintf("error: %v", ev.Error)
	default:
		return string(ev.Type)
	}
}
