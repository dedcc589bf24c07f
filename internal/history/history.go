// Package history persists scan reports to a local SQLite database so
// past results can be listed, replayed, and summarized.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/codegate-sec/codegate/pkg/types"
)

// maxEntries caps how many scans are retained. Older rows are pruned
// on save.
const maxEntries = 100

// ErrNotFound is returned when a scan ID has no history row.
var ErrNotFound = errors.New("scan not found in history")

// Entry is the summary row shown in listings.
type Entry struct {
	ScanID        string    `json:"scan_id"`
	Timestamp     time.Time `json:"timestamp"`
	FilePath      string    `json:"file_path,omitempty"`
	Language      string    `json:"language"`
	RiskScore     int       `json:"risk_score"`
	FindingsCount int       `json:"findings_count"`
	ScanDuration  float64   `json:"scan_duration"`
	Summary       string    `json:"summary"`
}

// Stats aggregates the whole history.
type Stats struct {
	TotalScans       int            `json:"total_scans"`
	TotalFindings    int            `json:"total_findings"`
	AverageRiskScore float64        `json:"average_risk_score"`
	RiskDistribution map[string]int `json:"risk_distribution"`
}

// Store is a SQLite-backed scan history.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the per-user history database location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "codegate-history.db")
	}
	return filepath.Join(home, ".codegate", "history.db")
}

// Open opens (or creates) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS scans (
		scan_id TEXT PRIMARY KEY,
		timestamp TIMESTAMP NOT NULL,
		file_path TEXT,
		language TEXT NOT NULL,
		risk_score INTEGER NOT NULL,
		findings_count INTEGER NOT NULL,
		scan_duration REAL NOT NULL,
		summary TEXT,
		report TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scans_timestamp ON scans(timestamp);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores a finished report and prunes rows beyond the retention
// cap.
func (s *Store) Save(ctx context.Context, report *types.Report) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO scans
			(scan_id, timestamp, file_path, language, risk_score, findings_count, scan_duration, summary, report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ScanID,
		report.Timestamp.UTC().Format(time.RFC3339Nano),
		report.FilePath,
		report.Language,
		report.RiskScore,
		len(report.Findings),
		report.ScanDuration,
		report.Summary,
		string(raw),
	)
	if err != nil {
		return fmt.Errorf("save scan: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		DELETE FROM scans WHERE scan_id NOT IN (
			SELECT scan_id FROM scans ORDER BY timestamp DESC LIMIT ?
		)`, maxEntries)
	if err != nil {
		return fmt.Errorf("prune history: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT scan_id, timestamp, file_path, language, risk_score, findings_count, scan_duration, summary
		FROM scans ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var ts string
		var filePath sql.NullString
		if err := rows.Scan(&entry.ScanID, &ts, &filePath, &entry.Language,
			&entry.RiskScore, &entry.FindingsCount, &entry.ScanDuration, &entry.Summary); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entry.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp for scan %s: %w", entry.ScanID, err)
		}
		entry.FilePath = filePath.String
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Get loads the full report for a scan ID.
func (s *Store) Get(ctx context.Context, scanID string) (*types.Report, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT report FROM scans WHERE scan_id = ?`, scanID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load scan %s: %w", scanID, err)
	}

	var report types.Report
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, fmt.Errorf("decode scan %s: %w", scanID, err)
	}
	return &report, nil
}

// Clear deletes all history rows.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM scans`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Statistics summarizes the stored scans. Risk buckets follow the
// report coloring thresholds: <25 low, <50 medium, <75 high, else
// critical.
func (s *Store) Statistics(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		RiskDistribution: map[string]int{"low": 0, "medium": 0, "high": 0, "critical": 0},
	}

	rows, err := s.db.QueryContext(ctx, `SELECT risk_score, findings_count FROM scans`)
	if err != nil {
		return nil, fmt.Errorf("load statistics: %w", err)
	}
	defer rows.Close()

	var scoreSum int
	for rows.Next() {
		var score, findings int
		if err := rows.Scan(&score, &findings); err != nil {
			return nil, fmt.Errorf("scan statistics row: %w", err)
		}
		stats.TotalScans++
		stats.TotalFindings += findings
		scoreSum += score

		switch {
		case score < 25:
			stats.RiskDistribution["low"]++
		case score < 50:
			stats.RiskDistribution["medium"]++
		case score < 75:
			stats.RiskDistribution["high"]++
		default:
			stats.RiskDistribution["critical"]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if stats.TotalScans > 0 {
		stats.AverageRiskScore = float64(scoreSum) / float64(stats.TotalScans)
	}
	return stats, nil
}
