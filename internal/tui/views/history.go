package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codegate-sec/codegate/internal/history"
	"github.com/codegate-sec/codegate/internal/tui/styles"
)

// HistoryModel is the view model for browsing past scans.
type HistoryModel struct {
	entries []history.Entry
	cursor  int
	err     string
}

// NewHistoryModel creates a history view from already-loaded entries.
func NewHistoryModel(entries []history.Entry, err error) HistoryModel {
	m := HistoryModel{entries: entries}
	if err != nil {
		m.err = err.Error()
	}
	return m
}

// Init returns nil (no initial command).
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles key navigation.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the scan history table.
func (m HistoryModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("CodeGate — Scan History"))
	b.WriteString("\n\n")

	switch {
	case m.err != "":
		b.WriteString(styles.ErrorStyle.Render(m.err))
		b.WriteString("\n")
	case len(m.entries) == 0:
		b.WriteString("No scan history found.\n")
	default:
		header := fmt.Sprintf("  %-10s %-12s %-30s %-8s %s", "SCAN ID", "DATE", "FILE", "RISK", "FINDINGS")
		b.WriteString(styles.HeaderStyle.Render(header))
		b.WriteString("\n")
		b.WriteString(strings.Repeat("─", 80))
		b.WriteString("\n")

		for i, entry := range m.entries {
			cursor := "  "
			if i == m.cursor {
				cursor = styles.CursorStyle.Render("> ")
			}

			file := entry.FilePath
			if file == "" {
				file = "pasted code"
			}
			risk := styles.RiskStyle(entry.RiskScore).Render(fmt.Sprintf("%d/100", entry.RiskScore))

			b.WriteString(fmt.Sprintf("%s%-10s %-12s %-30s %-8s %d\n",
				cursor,
				shortID(entry.ScanID),
				entry.Timestamp.Local().Format("01/02 15:04"),
				truncate(file, 30),
				risk,
				entry.FindingsCount,
			))
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("↑/↓ scroll • esc back • q quit"))

	return b.String()
}

// Selected returns the highlighted entry, or nil if the list is empty.
func (m HistoryModel) Selected() *history.Entry {
	if len(m.entries) == 0 {
		return nil
	}
	return &m.entries[m.cursor]
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
