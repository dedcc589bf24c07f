package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMenuModel(t *testing.T) {
	m := NewMenuModel(DefaultMenuItems())

	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, 4, len(m.Items()))
}

func TestMenuModelNavigateDown(t *testing.T) {
	m := NewMenuModel(DefaultMenuItems())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = updated.(MenuModel)
	assert.Equal(t, 1, m.Cursor())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = updated.(MenuModel)
	assert.Equal(t, 2, m.Cursor())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = updated.(MenuModel)
	assert.Equal(t, 3, m.Cursor())

	// Should not go past the end.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = updated.(MenuModel)
	assert.Equal(t, 3, m.Cursor())
}

func TestMenuModelNavigateUp(t *testing.T) {
	m := NewMenuModel(DefaultMenuItems())

	// Should not go below 0.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	m = updated.(MenuModel)
	assert.Equal(t, 0, m.Cursor())

	// Go down then up.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = updated.(MenuModel)
	assert.Equal(t, 1, m.Cursor())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	m = updated.(MenuModel)
	assert.Equal(t, 0, m.Cursor())
}

func TestMenuModelSelected(t *testing.T) {
	m := NewMenuModel(DefaultMenuItems())

	selected := m.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, ActionScanFile, selected.Action)

	// Move down and check selection changes.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = updated.(MenuModel)
	selected = m.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, ActionPaste, selected.Action)
}

func TestMenuModelSelectedEmpty(t *testing.T) {
	m := NewMenuModel([]MenuItem{})
	assert.Nil(t, m.Selected())
}

func TestMenuModelView(t *testing.T) {
	m := NewMenuModel(DefaultMenuItems())
	view := m.View()

	assert.Contains(t, view, "CodeGate")
	assert.Contains(t, view, "Scan file")
	assert.Contains(t, view, "Paste code")
	assert.Contains(t, view, "navigate")
}

func TestMenuModelQuit(t *testing.T) {
	m := NewMenuModel(DefaultMenuItems())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
}
