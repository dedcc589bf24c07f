package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/codegate-sec/codegate/internal/scan"
	"github.com/codegate-sec/codegate/internal/tui/styles"
	"github.com/codegate-sec/codegate/pkg/types"
)

// ScanCompleteMsg is sent when a scan finishes.
type ScanCompleteMsg struct {
	Report *types.Report
}

// scanErrorMsg is sent when a scan encounters an error.
type scanErrorMsg struct {
	err error
}

// ScanModel is the view model for the scan progress view.
type ScanModel struct {
	spinner  spinner.Model
	service  *scan.Service
	code     string
	filePath string
	done     bool
	err      string
}

// NewScanModel creates a scan progress view. When code is empty the
// file at filePath is read and scanned instead.
func NewScanModel(svc *scan.Service, code, filePath string) ScanModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.ColorAccent)

	return ScanModel{
		spinner:  sp,
		service:  svc,
		code:     code,
		filePath: filePath,
	}
}

// Init starts the spinner and launches the scan.
func (m ScanModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runScan())
}

// Update handles spinner ticks and scan completion.
func (m ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ScanCompleteMsg:
		m.done = true
		return m, nil

	case scanErrorMsg:
		m.done = true
		m.err = msg.err.Error()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the scan progress.
func (m ScanModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("CodeGate — Interactive Mode"))
	b.WriteString("\n\n")

	if m.done {
		if m.err != "" {
			b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Scan failed: %s", m.err)))
		} else {
			b.WriteString("Scan complete.\n")
		}
	} else {
		b.WriteString(fmt.Sprintf("%s Analyzing %s...\n",
			m.spinner.View(),
			styles.SelectedStyle.Render(m.sourceDisplay())))
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("ctrl+c quit"))

	return b.String()
}

// Err returns the scan error message, if any.
func (m ScanModel) Err() string {
	return m.err
}

func (m ScanModel) sourceDisplay() string {
	if m.filePath != "" {
		return m.filePath
	}
	return "pasted code"
}

func (m ScanModel) runScan() tea.Cmd {
	svc := m.service
	code := m.code
	filePath := m.filePath
	return func() tea.Msg {
		var (
			report *types.Report
			err    error
		)
		if code == "" {
			report, err = svc.ScanFile(context.Background(), filePath)
		} else {
			report, err = svc.Scan(context.Background(), code, filePath)
		}
		if err != nil {
			return scanErrorMsg{err: err}
		}
		return ScanCompleteMsg{Report: report}
	}
}
