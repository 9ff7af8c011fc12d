package tui

import (
	"fmt"
	"strings"

	"github.com/entrhq/kiosk/pkg/types"
)

func (m *model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(m.statusView()))
	b.WriteString("\n\n")

	for _, line := range m.log {
		if strings.Contains(line, "error:") {
			b.WriteString(errorStyle.Render(line))
		} else {
			b.WriteString(eventStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *model) statusView() string {
	s := m.status

	state := runningStyle.Render("running")
	switch {
	case s.Phase == types.EventTypeExit:
		state = valueStyle.Render("exited")
	case !s.Active:
		state = valueStyle.Render("idle")
	case s.Paused:
		state = pausedStyle.Render("paused")
	}

	page := s.Page
	if page == "" {
		page = "-"
	}
	position := "-"
	if s.Total > 0 {
		position = fmt.Sprintf("%d / %d", s.Index+1, s.Total)
	}
	phase := string(s.Phase)
	if phase == "" {
		phase = "-"
	}

	rows := []string{
		labelStyle.Render("state") + state,
		labelStyle.Render("page") + valueStyle.Render(page),
		labelStyle.Render("entry") + valueStyle.Render(position),
		labelStyle.Render("phase") + valueStyle.Render(phase),
	}
	return strings.Join(rows, "\n")
}
