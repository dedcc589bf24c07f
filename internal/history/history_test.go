package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegate-sec/codegate/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleReport(id string, score int, when time.Time) *types.Report {
	return &types.Report{
		ScanID:    id,
		Language:  "python",
		Timestamp: when,
		FilePath:  "app.py",
		RiskScore: score,
		Summary:   "summary for " + id,
		Findings:  []types.Finding{{Type: "sql_injection", Severity: types.SeverityHigh}},
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	report := sampleReport("scan-1", 40, time.Now())
	require.NoError(t, store.Save(ctx, report))

	got, err := store.Get(ctx, "scan-1")
	require.NoError(t, err)
	assert.Equal(t, 40, got.RiskScore)
	assert.Equal(t, "app.py", got.FilePath)
	require.Len(t, got.Findings, 1)
	assert.Equal(t, "sql_injection", got.Findings[0].Type)
}

func TestStore_GetUnknownID(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_RecentNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		report := sampleReport(fmt.Sprintf("scan-%d", i), i*10, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.Save(ctx, report))
	}

	entries, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "scan-4", entries[0].ScanID)
	assert.Equal(t, "scan-2", entries[2].ScanID)
	assert.Equal(t, 1, entries[0].FindingsCount)
}

func TestStore_RecentMalformedTimestamp(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx, `
		INSERT INTO scans
			(scan_id, timestamp, file_path, language, risk_score, findings_count, scan_duration, summary, report)
		VALUES ('scan-bad', 'not-a-timestamp', '', 'python', 10, 0, 0.1, '', '{}')`)
	require.NoError(t, err)

	_, err = store.Recent(ctx, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan-bad")
}

func TestStore_PrunesBeyondRetentionCap(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Now().Add(-24 * time.Hour)

	for i := 0; i < maxEntries+10; i++ {
		report := sampleReport(fmt.Sprintf("scan-%03d", i), 10, base.Add(time.Duration(i)*time.Second))
		require.NoError(t, store.Save(ctx, report))
	}

	entries, err := store.Recent(ctx, maxEntries*2)
	require.NoError(t, err)
	assert.Len(t, entries, maxEntries)

	// The oldest rows were pruned.
	_, err = store.Get(ctx, "scan-000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Clear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleReport("scan-1", 10, time.Now())))
	require.NoError(t, store.Clear(ctx))

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_Statistics(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	scores := []int{10, 30, 60, 90}
	for i, score := range scores {
		require.NoError(t, store.Save(ctx, sampleReport(fmt.Sprintf("scan-%d", i), score, now.Add(time.Duration(i)*time.Second))))
	}

	stats, err := store.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalScans)
	assert.Equal(t, 4, stats.TotalFindings)
	assert.InDelta(t, 47.5, stats.AverageRiskScore, 0.01)
	assert.Equal(t, 1, stats.RiskDistribution["low"])
	assert.Equal(t, 1, stats.RiskDistribution["medium"])
	assert.Equal(t, 1, stats.RiskDistribution["high"])
	assert.Equal(t, 1, stats.RiskDistribution["critical"])
}

func TestStore_StatisticsEmpty(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalScans)
	assert.Equal(t, 0.0, stats.AverageRiskScore)
}
