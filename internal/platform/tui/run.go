package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts a local game session and blocks until the player exits. An
// interrupt signal saves the game and ends the session normally.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if errors.Is(err, tea.ErrInterrupted) {
		if m, ok := final.(Model); ok {
			m.saveGame()
		}
		return nil
	}
	return err
}
