// Package cache stores finished scan reports on disk, keyed by a hash
// of the scanned source. Entries are zstd-compressed JSON and expire
// after a configurable TTL.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/codegate-sec/codegate/pkg/types"
)

// DefaultTTL is how long a cached report stays valid.
const DefaultTTL = 24 * time.Hour

// Store is a file-backed report cache. It is safe for concurrent use:
// compression goes through EncodeAll/DecodeAll, which may be shared
// across goroutines.
type Store struct {
	dir     string
	ttl     time.Duration
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// New opens a cache rooted at dir, creating it if needed. A zero ttl
// falls back to DefaultTTL.
func New(dir string, ttl time.Duration) (*Store, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("init zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("init zstd decoder: %w", err)
	}

	return &Store{dir: dir, ttl: ttl, encoder: encoder, decoder: decoder}, nil
}

// DefaultDir returns the per-user cache location.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "codegate-cache")
	}
	return filepath.Join(home, ".codegate", "cache")
}

// Key derives the cache key for a piece of source code.
func Key(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached report for code, or false when there is no
// valid entry. Expired and unreadable entries count as misses.
func (s *Store) Get(code string) (*types.Report, bool) {
	path := filepath.Join(s.dir, Key(code)+".json.zst")

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) >= s.ttl {
		return nil, false
	}

	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	raw, err := s.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, false
	}

	var report types.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, false
	}
	return &report, true
}

// Put stores a report under the hash of code.
func (s *Store) Put(code string, report *types.Report) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode cached report: %w", err)
	}

	compressed := s.encoder.EncodeAll(raw, make([]byte, 0, len(raw)))

	path := filepath.Join(s.dir, Key(code)+".json.zst")
	if err := os.WriteFile(path, compressed, 0o600); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Clear removes every cache entry.
func (s *Store) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read cache dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			return fmt.Errorf("remove cache entry: %w", err)
		}
	}
	return nil
}
