// Package scan orchestrates a full analysis run: structural analysis,
// the LLM security review, risk scoring, caching, and history.
package scan

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codegate-sec/codegate/internal/analyzer"
	"github.com/codegate-sec/codegate/internal/cache"
	"github.com/codegate-sec/codegate/internal/history"
	"github.com/codegate-sec/codegate/internal/risk"
	"github.com/codegate-sec/codegate/internal/secscan"
	"github.com/codegate-sec/codegate/pkg/types"
)

// DefaultReviewTimeout bounds how long a single LLM review may take.
const DefaultReviewTimeout = 60 * time.Second

// Service runs scans. Cache and history are optional: a nil store
// disables that concern.
type Service struct {
	reviewer secscan.Source
	engine   *risk.Engine
	cache    *cache.Store
	history  *history.Store
	timeout  time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables report caching.
func WithCache(store *cache.Store) Option {
	return func(s *Service) { s.cache = store }
}

// WithHistory enables history persistence.
func WithHistory(store *history.Store) Option {
	return func(s *Service) { s.history = store }
}

// WithReviewTimeout bounds the LLM review call.
func WithReviewTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewService builds a scan service around the given security reviewer.
func NewService(reviewer secscan.Source, opts ...Option) *Service {
	s := &Service{
		reviewer: reviewer,
		engine:   risk.New(),
		timeout:  DefaultReviewTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanFile reads and scans a file on disk.
func (s *Service) ScanFile(ctx context.Context, path string) (*types.Report, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s.Scan(ctx, string(code), path)
}

// Scan analyzes code and returns the finished report. filePath may be
// empty for pasted snippets.
func (s *Service) Scan(ctx context.Context, code, filePath string) (*types.Report, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("no code to analyze")
	}

	if s.cache != nil {
		if report, ok := s.cache.Get(code); ok {
			return report, nil
		}
	}

	start := time.Now()
	issues := analyzer.AnalyzeSource(code)
	review := s.review(ctx, code)

	meta := risk.Meta{
		Language:   "python",
		FilePath:   filePath,
		TotalLines: countLines(code),
		Summary:    review.Summary,
	}
	if len(review.DetectedImports) > 0 || len(review.SecurityNotes) > 0 {
		meta.Dependencies = &types.DependencyAnalysis{
			DetectedImports: review.DetectedImports,
			SecurityNotes:   review.SecurityNotes,
		}
	}

	report := s.engine.BuildReport(review.Findings, issues, meta)
	report.ScanID = uuid.NewString()
	report.ScanDuration = time.Since(start).Seconds()

	// Persistence failures never fail the scan itself.
	if s.cache != nil {
		_ = s.cache.Put(code, &report)
	}
	if s.history != nil {
		_ = s.history.Save(ctx, &report)
	}
	return &report, nil
}

// review runs the security reviewer under the configured timeout. A
// failed review degrades to a static-only report instead of aborting
// the scan.
func (s *Service) review(ctx context.Context, code string) *secscan.Result {
	reviewCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.reviewer.Review(reviewCtx, code)
	if err != nil {
		return &secscan.Result{
			Summary: fmt.Sprintf("Security analysis unavailable (%v); showing static analysis only.", err),
		}
	}
	return result
}

func countLines(code string) int {
	n := strings.Count(code, "\n")
	if !strings.HasSuffix(code, "\n") {
		n++
	}
	return n
}
