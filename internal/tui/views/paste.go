package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/codegate-sec/codegate/internal/tui/styles"
)

// PasteModel is the view model for pasting a code snippet.
type PasteModel struct {
	textArea textarea.Model
	err      string
}

// NewPasteModel creates a new snippet input view.
func NewPasteModel() PasteModel {
	ta := textarea.New()
	ta.Placeholder = "Paste Python code here..."
	ta.Focus()
	ta.CharLimit = 0
	ta.SetWidth(70)
	ta.SetHeight(12)

	return PasteModel{textArea: ta}
}

// Init returns the text area blink command.
func (m PasteModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles input events.
func (m PasteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+d" {
		if _, err := m.ValidatedCode(); err != nil {
			m.err = err.Error()
		} else {
			m.err = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textArea, cmd = m.textArea.Update(msg)
	m.err = ""
	return m, cmd
}

// View renders the snippet input form.
func (m PasteModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("CodeGate — Interactive Mode"))
	b.WriteString("\n\n")
	b.WriteString(styles.HeaderStyle.Render("Paste code"))
	b.WriteString("\n")
	b.WriteString(m.textArea.View())
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(m.err))
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("ctrl+d analyze • esc back"))

	return b.String()
}

// ValidatedCode returns the pasted snippet, or an error if it is empty.
func (m PasteModel) ValidatedCode() (string, error) {
	value := m.textArea.Value()
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("no code to analyze")
	}
	return value, nil
}
