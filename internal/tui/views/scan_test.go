package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegate-sec/codegate/internal/scan"
	"github.com/codegate-sec/codegate/internal/secscan"
)

func newScanService() *scan.Service {
	return scan.NewService(secscan.Disabled{})
}

func TestScanModelViewShowsSource(t *testing.T) {
	m := NewScanModel(newScanService(), "print('x')\n", "")
	view := m.View()

	assert.Contains(t, view, "Analyzing")
	assert.Contains(t, view, "pasted code")
}

func TestScanModelViewShowsFilePath(t *testing.T) {
	m := NewScanModel(newScanService(), "", "app.py")
	view := m.View()

	assert.Contains(t, view, "app.py")
}

func TestScanModelRunScanCompletes(t *testing.T) {
	m := NewScanModel(newScanService(), "def run():\n    while True:\n        print('x')\n", "")

	msg := m.runScan()()
	complete, ok := msg.(ScanCompleteMsg)
	require.True(t, ok)
	require.NotNil(t, complete.Report)
	assert.NotEmpty(t, complete.Report.Findings)
}

func TestScanModelRunScanEmptyCodeFails(t *testing.T) {
	m := NewScanModel(newScanService(), "", "/nonexistent/app.py")

	msg := m.runScan()()
	_, ok := msg.(scanErrorMsg)
	assert.True(t, ok)
}

func TestScanModelUpdateOnError(t *testing.T) {
	m := NewScanModel(newScanService(), "print('x')\n", "")

	updated, _ := m.Update(scanErrorMsg{err: assert.AnError})
	m = updated.(ScanModel)
	assert.NotEmpty(t, m.Err())
	assert.Contains(t, m.View(), "Scan failed")
}
