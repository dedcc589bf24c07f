package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codegate-sec/codegate/internal/tui/styles"
)

// Menu actions.
const (
	ActionScanFile = "scan-file"
	ActionPaste    = "paste-code"
	ActionHistory  = "history"
	ActionQuit     = "quit"
)

// MenuItem represents an action available in the main menu.
type MenuItem struct {
	Action      string
	Name        string
	Description string
}

// DefaultMenuItems returns the standard main menu.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{Action: ActionScanFile, Name: "Scan file", Description: "Analyze a Python file on disk"},
		{Action: ActionPaste, Name: "Paste code", Description: "Analyze a pasted Python snippet"},
		{Action: ActionHistory, Name: "History", Description: "Browse recent scans"},
		{Action: ActionQuit, Name: "Quit", Description: "Exit interactive mode"},
	}
}

// MenuModel is the view model for the main action menu.
type MenuModel struct {
	items  []MenuItem
	cursor int
}

// NewMenuModel creates a menu with the given items.
func NewMenuModel(items []MenuItem) MenuModel {
	return MenuModel{items: items}
}

// Init returns nil (no initial command).
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles key navigation in the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the main menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("CodeGate — Interactive Mode"))
	b.WriteString("\n\n")
	b.WriteString(styles.HeaderStyle.Render("Select an action:"))
	b.WriteString("\n")

	for i, item := range m.items {
		cursor := "  "
		nameStyle := styles.HelpStyle
		if i == m.cursor {
			cursor = styles.CursorStyle.Render("> ")
			nameStyle = styles.SelectedStyle
		}

		b.WriteString(fmt.Sprintf("%s%s  %s\n",
			cursor,
			nameStyle.Render(item.Name),
			styles.HelpStyle.Render(item.Description),
		))
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("↑/↓ navigate • enter select • q quit"))

	return b.String()
}

// Selected returns the currently highlighted menu item, or nil if empty.
func (m MenuModel) Selected() *MenuItem {
	if len(m.items) == 0 {
		return nil
	}
	return &m.items[m.cursor]
}

// Cursor returns the current cursor position.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// Items returns the menu items.
func (m MenuModel) Items() []MenuItem {
	return m.items
}
