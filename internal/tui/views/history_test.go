package views

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegate-sec/codegate/internal/history"
)

func newTestEntries() []history.Entry {
	return []history.Entry{
		{
			ScanID:        "11111111-aaaa-bbbb-cccc-000000000001",
			Timestamp:     time.Now(),
			FilePath:      "app.py",
			RiskScore:     62,
			FindingsCount: 4,
		},
		{
			ScanID:        "22222222-aaaa-bbbb-cccc-000000000002",
			Timestamp:     time.Now(),
			RiskScore:     8,
			FindingsCount: 1,
		},
	}
}

func TestHistoryModelView(t *testing.T) {
	m := NewHistoryModel(newTestEntries(), nil)
	view := m.View()

	assert.Contains(t, view, "Scan History")
	assert.Contains(t, view, "11111111")
	assert.Contains(t, view, "app.py")
	assert.Contains(t, view, "pasted code")
	assert.Contains(t, view, "62/100")
}

func TestHistoryModelViewEmpty(t *testing.T) {
	m := NewHistoryModel(nil, nil)
	view := m.View()
	assert.Contains(t, view, "No scan history found")
}

func TestHistoryModelViewError(t *testing.T) {
	m := NewHistoryModel(nil, fmt.Errorf("history is not enabled"))
	view := m.View()
	assert.Contains(t, view, "history is not enabled")
}

func TestHistoryModelNavigate(t *testing.T) {
	m := NewHistoryModel(newTestEntries(), nil)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = updated.(HistoryModel)
	assert.Equal(t, 1, m.cursor)

	// Should not exceed bounds.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = updated.(HistoryModel)
	assert.Equal(t, 1, m.cursor)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	m = updated.(HistoryModel)
	assert.Equal(t, 0, m.cursor)
}

func TestHistoryModelSelected(t *testing.T) {
	m := NewHistoryModel(newTestEntries(), nil)
	selected := m.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, "app.py", selected.FilePath)
}

func TestHistoryModelSelectedEmpty(t *testing.T) {
	m := NewHistoryModel(nil, nil)
	assert.Nil(t, m.Selected())
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "11111111", shortID("11111111-aaaa-bbbb"))
	assert.Equal(t, "abc", shortID("abc"))
}
