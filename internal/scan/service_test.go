package scan

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegate-sec/codegate/internal/cache"
	"github.com/codegate-sec/codegate/internal/history"
	"github.com/codegate-sec/codegate/internal/secscan"
	"github.com/codegate-sec/codegate/pkg/types"
)

type stubReviewer struct {
	result *secscan.Result
	err    error
	calls  int
}

func (r *stubReviewer) Review(_ context.Context, _ string) (*secscan.Result, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.result, nil
}

const vulnerableSource = "def run(q):\n    while True:\n        print(q)\n\nrun('x')\n"

func TestScan_MergesReviewAndStaticFindings(t *testing.T) {
	reviewer := &stubReviewer{result: &secscan.Result{
		Summary: "One injection found.",
		Findings: []types.ExternalFinding{{
			Type: "sql_injection", Severity: "high", Line: 3,
		}},
		DetectedImports: []string{"sqlite3"},
	}}
	svc := NewService(reviewer)

	report, err := svc.Scan(context.Background(), vulnerableSource, "app.py")
	require.NoError(t, err)

	assert.NotEmpty(t, report.ScanID)
	assert.Equal(t, "python", report.Language)
	assert.Equal(t, "app.py", report.FilePath)
	assert.Equal(t, 5, report.TotalLines)
	require.NotNil(t, report.Dependencies)
	assert.Equal(t, []string{"sqlite3"}, report.Dependencies.DetectedImports)

	// The security finding comes first, then the infinite-loop issue.
	require.GreaterOrEqual(t, len(report.Findings), 2)
	assert.Equal(t, types.OriginSecurityScanner, report.Findings[0].Origin)
	assert.Equal(t, "sql_injection", report.Findings[0].Type)
	assert.Equal(t, types.OriginStructuralAnalyzer, report.Findings[1].Origin)
	assert.Greater(t, report.RiskScore, 0)
}

func TestScan_ReviewFailureFallsBackToStaticOnly(t *testing.T) {
	reviewer := &stubReviewer{err: errors.New("api down")}
	svc := NewService(reviewer)

	report, err := svc.Scan(context.Background(), vulnerableSource, "")
	require.NoError(t, err)

	assert.Contains(t, report.Summary, "Security analysis unavailable")
	for _, finding := range report.Findings {
		assert.Equal(t, types.OriginStructuralAnalyzer, finding.Origin)
	}
}

func TestScan_EmptyInputIsAnError(t *testing.T) {
	svc := NewService(secscan.Disabled{})

	_, err := svc.Scan(context.Background(), "   \n", "")
	require.Error(t, err)
}

func TestScan_CacheHitSkipsReview(t *testing.T) {
	store, err := cache.New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	reviewer := &stubReviewer{result: &secscan.Result{Summary: "clean"}}
	svc := NewService(reviewer, WithCache(store))

	first, err := svc.Scan(context.Background(), vulnerableSource, "app.py")
	require.NoError(t, err)

	second, err := svc.Scan(context.Background(), vulnerableSource, "app.py")
	require.NoError(t, err)

	assert.Equal(t, 1, reviewer.calls)
	assert.Equal(t, first.ScanID, second.ScanID)
}

func TestScan_SavesToHistory(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	svc := NewService(secscan.Disabled{}, WithHistory(store))
	report, err := svc.Scan(context.Background(), vulnerableSource, "app.py")
	require.NoError(t, err)

	saved, err := store.Get(context.Background(), report.ScanID)
	require.NoError(t, err)
	assert.Equal(t, report.RiskScore, saved.RiskScore)
}

func TestScanFile_MissingFile(t *testing.T) {
	svc := NewService(secscan.Disabled{})

	_, err := svc.ScanFile(context.Background(), filepath.Join(t.TempDir(), "absent.py"))
	require.Error(t, err)
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 2, countLines("a = 1\nb = 2\n"))
	assert.Equal(t, 2, countLines("a = 1\nb = 2"))
	assert.Equal(t, 1, countLines("a = 1"))
}
