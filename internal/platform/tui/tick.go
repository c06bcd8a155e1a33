// Package tui runs the aura roller as a Bubble Tea program, locally or
// over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// clockMsg redraws the header so effect timers count down. It never
// mutates game state; state only changes on player input.
type clockMsg time.Time

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}
