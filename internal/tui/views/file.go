package views

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/codegate-sec/codegate/internal/tui/styles"
)

// FileModel is the view model for file path input.
type FileModel struct {
	textInput textinput.Model
	err       string
}

// NewFileModel creates a new file path input view.
func NewFileModel() FileModel {
	ti := textinput.New()
	ti.Placeholder = "e.g. app.py or src/handlers.py"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50
	ti.PromptStyle = styles.CursorStyle
	ti.TextStyle = styles.SelectedStyle

	return FileModel{textInput: ti}
}

// Init returns the text input blink command.
func (m FileModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input events.
func (m FileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		_, err := m.ValidatedPath()
		if err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.err = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.err = ""
	return m, cmd
}

// View renders the file path input form.
func (m FileModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("CodeGate — Interactive Mode"))
	b.WriteString("\n\n")
	b.WriteString(styles.HeaderStyle.Render("Scan file"))
	b.WriteString("\n")
	b.WriteString("Enter path to a Python file:\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(m.err))
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("enter submit • esc back"))

	return b.String()
}

// ValidatedPath returns the entered path, or an error if it is empty or
// does not point to a regular file.
func (m FileModel) ValidatedPath() (string, error) {
	value := strings.TrimSpace(m.textInput.Value())
	if value == "" {
		return "", fmt.Errorf("file path is required")
	}
	info, err := os.Stat(value)
	if err != nil {
		return "", fmt.Errorf("cannot read %s", value)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", value)
	}
	return value, nil
}
