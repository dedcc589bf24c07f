package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codegate-sec/codegate/internal/history"
	"github.com/codegate-sec/codegate/internal/scan"
)

// Run starts the interactive TUI around the given scan service. hist
// may be nil when history is disabled.
func Run(svc *scan.Service, hist *history.Store) error {
	m := NewModel(svc, hist)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
