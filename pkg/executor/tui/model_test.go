package tui

import (
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/kiosk/pkg/executor/player"
	"github.com/entrhq/kiosk/pkg/types"
)

type fakeController struct {
	mu      sync.Mutex
	actions []types.Action
	status  player.Status
}

func (f *fakeController) Dispatch(action types.Action) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
}

func (f *fakeController) Status() player.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_KeysDispatchActions(t *testing.T) {
	c := &fakeController{}
	m := newModel(c, "Kiosk")

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m.Update(runes("p"))
	m.Update(runes("h"))
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	m.Update(runes("z"))

	assert.Equal(t, []types.Action{
		types.ActionTogglePause,
		types.ActionTogglePause,
		types.ActionToggleHelp,
		types.ActionExit,
	}, c.actions)
}

func TestModel_Quit(t *testing.T) {
	c := &fakeController{}
	m := newModel(c, "Kiosk")

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, c.actions)
	assert.Empty(t, m.View())
}

func TestModel_EventsUpdateStatusAndLog(t *testing.T) {
	c := &fakeController{}
	m := newModel(c, "Lobby display")

	c.status = player.Status{Page: "bios/a.html", Index: 1, Total: 3, Phase: types.EventTypeScroll, Active: true}
	m.Update(eventMsg{event: types.NewPhaseEvent(types.EventTypeScroll, "bios/a.html", 1, 3, 5*time.Second)})

	view := m.View()
	assert.Contains(t, view, "Lobby display")
	assert.Contains(t, view, "bios/a.html")
	assert.Contains(t, view, "2 / 3")
	assert.Contains(t, view, "running")
	assert.Contains(t, view, "scroll bios/a.html for 5s")

	c.status.Paused = true
	m.Update(eventMsg{event: types.NewPauseEvent(true)})
	assert.Contains(t, m.View(), "paused")
}

func TestModel_LogIsBounded(t *testing.T) {
	m := newModel(&fakeController{}, "Kiosk")
	for i := 0; i < maxLogLines+5; i++ {
		m.Update(eventMsg{event: &types.KioskEvent{Type: types.EventTypeLoad, Page: "a.html"}})
	}
	assert.Len(t, m.log, maxLogLines)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "advance to #2 \"Up next\"", describe(&types.KioskEvent{Type: types.EventTypeAdvance, Index: 1, Message: "Up next"}))
	assert.Equal(t, "navigate b.html (2/2)", describe(&types.KioskEvent{Type: types.EventTypeNavigate, Page: "b.html", Index: 1, Total: 2}))
	assert.Equal(t, "resumed", describe(types.NewPauseEvent(false)))
	assert.Equal(t, "error: boom", describe(types.NewErrorEvent(errors.New("boom"))))
}

func TestExecutor_SinkNeverBlocks(t *testing.T) {
	e := NewExecutor(&fakeController{}, "Kiosk")
	sink := e.Sink()
	for i := 0; i < eventBuffer*2; i++ {
		sink(&types.KioskEvent{Type: types.EventTypeLoad})
	}
	assert.Len(t, e.events, eventBuffer)
}
