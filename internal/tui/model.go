package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codegate-sec/codegate/internal/history"
	"github.com/codegate-sec/codegate/internal/scan"
	"github.com/codegate-sec/codegate/internal/tui/views"
)

// appState represents which view is currently active.
type appState int

const (
	stateMenu    appState = iota // Action menu
	stateFile                    // File path input
	statePaste                   // Snippet input
	stateScan                    // Scan in progress
	stateResults                 // Results display
	stateHistory                 // Scan history browser
)

// Model is the root Bubble Tea model that manages view transitions.
type Model struct {
	state   appState
	service *scan.Service
	hist    *history.Store
	width   int
	height  int

	// Sub-models for each view.
	menu        views.MenuModel
	file        views.FileModel
	paste       views.PasteModel
	scan        views.ScanModel
	results     views.ResultsModel
	historyView views.HistoryModel
}

// NewModel creates a root model around the given scan service. The
// history store may be nil when history is disabled.
func NewModel(svc *scan.Service, hist *history.Store) Model {
	return Model{
		state:   stateMenu,
		service: svc,
		hist:    hist,
		menu:    views.NewMenuModel(views.DefaultMenuItems()),
		file:    views.NewFileModel(),
		paste:   views.NewPasteModel(),
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and manages state transitions.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m.handleBack()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	switch m.state {
	case stateMenu:
		return m.updateMenu(msg)
	case stateFile:
		return m.updateFile(msg)
	case statePaste:
		return m.updatePaste(msg)
	case stateScan:
		return m.updateScan(msg)
	case stateResults:
		return m.updateResults(msg)
	case stateHistory:
		return m.updateHistory(msg)
	}

	return m, nil
}

// View renders the current view.
func (m Model) View() string {
	switch m.state {
	case stateMenu:
		return m.menu.View()
	case stateFile:
		return m.file.View()
	case statePaste:
		return m.paste.View()
	case stateScan:
		return m.scan.View()
	case stateResults:
		return m.results.View()
	case stateHistory:
		return m.historyView.View()
	}
	return ""
}

func (m Model) handleBack() (tea.Model, tea.Cmd) {
	switch m.state {
	case stateFile, statePaste, stateResults, stateHistory:
		m.state = stateMenu
		return m, nil
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		selected := m.menu.Selected()
		if selected != nil {
			switch selected.Action {
			case views.ActionScanFile:
				m.file = views.NewFileModel()
				m.state = stateFile
				return m, m.file.Init()
			case views.ActionPaste:
				m.paste = views.NewPasteModel()
				m.state = statePaste
				return m, m.paste.Init()
			case views.ActionHistory:
				m.historyView = m.loadHistory()
				m.state = stateHistory
				return m, nil
			case views.ActionQuit:
				return m, tea.Quit
			}
		}
	}

	updated, cmd := m.menu.Update(msg)
	m.menu = updated.(views.MenuModel)
	return m, cmd
}

func (m Model) updateFile(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		path, err := m.file.ValidatedPath()
		if err == nil {
			m.scan = views.NewScanModel(m.service, "", path)
			m.state = stateScan
			return m, m.scan.Init()
		}
	}

	updated, cmd := m.file.Update(msg)
	m.file = updated.(views.FileModel)
	return m, cmd
}

func (m Model) updatePaste(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+d" {
		code, err := m.paste.ValidatedCode()
		if err == nil {
			m.scan = views.NewScanModel(m.service, code, "")
			m.state = stateScan
			return m, m.scan.Init()
		}
	}

	updated, cmd := m.paste.Update(msg)
	m.paste = updated.(views.PasteModel)
	return m, cmd
}

func (m Model) updateScan(msg tea.Msg) (tea.Model, tea.Cmd) {
	if scanMsg, ok := msg.(views.ScanCompleteMsg); ok {
		m.results = views.NewResultsModel(scanMsg.Report)
		m.state = stateResults
		return m, nil
	}

	updated, cmd := m.scan.Update(msg)
	m.scan = updated.(views.ScanModel)
	return m, cmd
}

func (m Model) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.results.Update(msg)
	m.results = updated.(views.ResultsModel)
	return m, cmd
}

func (m Model) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.historyView.Update(msg)
	m.historyView = updated.(views.HistoryModel)
	return m, cmd
}

func (m Model) loadHistory() views.HistoryModel {
	if m.hist == nil {
		return views.NewHistoryModel(nil, fmt.Errorf("history is not enabled"))
	}
	entries, err := m.hist.Recent(context.Background(), 20)
	return views.NewHistoryModel(entries, err)
}
