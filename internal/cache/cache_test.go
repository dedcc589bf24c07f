package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegate-sec/codegate/pkg/types"
)

func TestStore_PutGetRoundTrip(t *testing.T) {
	store, err := New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	code := "print('hello')\n"
	report := &types.Report{ScanID: "abc", Language: "python", RiskScore: 42, TotalLines: 1}
	require.NoError(t, store.Put(code, report))

	got, ok := store.Get(code)
	require.True(t, ok)
	assert.Equal(t, "abc", got.ScanID)
	assert.Equal(t, 42, got.RiskScore)
}

func TestStore_MissOnUnknownCode(t *testing.T) {
	store, err := New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	_, ok := store.Get("never seen")
	assert.False(t, ok)
}

func TestStore_ExpiredEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir, time.Hour)
	require.NoError(t, err)

	code := "x = 1\n"
	require.NoError(t, store.Put(code, &types.Report{ScanID: "old"}))

	stale := time.Now().Add(-2 * time.Hour)
	path := filepath.Join(dir, Key(code)+".json.zst")
	require.NoError(t, os.Chtimes(path, stale, stale))

	_, ok := store.Get(code)
	assert.False(t, ok)
}

func TestStore_CorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir, time.Hour)
	require.NoError(t, err)

	code := "x = 1\n"
	path := filepath.Join(dir, Key(code)+".json.zst")
	require.NoError(t, os.WriteFile(path, []byte("not zstd"), 0o600))

	_, ok := store.Get(code)
	assert.False(t, ok)
}

func TestStore_Clear(t *testing.T) {
	store, err := New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	require.NoError(t, store.Put("a = 1\n", &types.Report{ScanID: "a"}))
	require.NoError(t, store.Put("b = 2\n", &types.Report{ScanID: "b"}))
	require.NoError(t, store.Clear())

	_, ok := store.Get("a = 1\n")
	assert.False(t, ok)
}

func TestStore_ConcurrentPutGet(t *testing.T) {
	store, err := New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			code := fmt.Sprintf("x = %d\n", w)
			for i := 0; i < 20; i++ {
				if !assert.NoError(t, store.Put(code, &types.Report{ScanID: fmt.Sprintf("scan-%d", w), RiskScore: w})) {
					return
				}
				got, ok := store.Get(code)
				if assert.True(t, ok) {
					assert.Equal(t, w, got.RiskScore)
				}
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		got, ok := store.Get(fmt.Sprintf("x = %d\n", w))
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("scan-%d", w), got.ScanID)
	}
}

func TestKey_IsStable(t *testing.T) {
	assert.Equal(t, Key("same input"), Key("same input"))
	assert.NotEqual(t, Key("one"), Key("two"))
	assert.Len(t, Key("anything"), 64)
}
