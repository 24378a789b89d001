package internal

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/gnoswap-labs/boolex/internal/types"
)

func TestCache(t *testing.T) {
	tmpDir := createTempDir(t, "cache-test")

	cacheDir := filepath.Join(tmpDir, "cache")
	cache, err := NewCache(cacheDir, 0)
	require.NoError(t, err)

	reports := []tt.Report{{
		Filename:   "test.bool",
		Line:       1,
		Expression: "A.B",
		Valid:      true,
		Inputs:     []string{"A", "B"},
		Minterms:   1,
		Minimized:  "(A.B)",
		Verified:   true,
	}}

	t.Run("SaveAndLoad", func(t *testing.T) {
		filename := filepath.Join(tmpDir, "test.bool")
		require.NoError(t, os.WriteFile(filename, []byte("A.B\n"), 0o644))

		require.NoError(t, cache.Set(filename, "count,minimize", reports))

		loaded, found := cache.Get(filename, "count,minimize")
		assert.True(t, found)
		assert.Equal(t, reports, loaded)

		// a fresh cache reads the gob file back
		reopened, err := NewCache(cacheDir, 0)
		require.NoError(t, err)
		loaded, found = reopened.Get(filename, "count,minimize")
		if found {
			assert.Equal(t, reports, loaded)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		_, found := cache.Get("nonexistent.bool", "")
		assert.False(t, found)
	})

	t.Run("ChecksChanged", func(t *testing.T) {
		filename := filepath.Join(tmpDir, "checks.bool")
		require.NoError(t, os.WriteFile(filename, []byte("A.B\n"), 0o644))
		require.NoError(t, cache.Set(filename, "count,minimize,verify", reports))

		_, found := cache.Get(filename, "count")
		assert.False(t, found)
	})

	t.Run("FileModified", func(t *testing.T) {
		filename := filepath.Join(tmpDir, "modified.bool")
		require.NoError(t, os.WriteFile(filename, []byte("A.B\n"), 0o644))
		require.NoError(t, cache.Set(filename, "", reports))

		require.NoError(t, os.WriteFile(filename, []byte("A+B\n"), 0o644))

		_, found := cache.Get(filename, "")
		assert.False(t, found)
	})

	t.Run("Expired", func(t *testing.T) {
		short, err := NewCache(filepath.Join(tmpDir, "short"), time.Millisecond)
		require.NoError(t, err)

		filename := filepath.Join(tmpDir, "expired.bool")
		require.NoError(t, os.WriteFile(filename, []byte("A\n"), 0o644))
		require.NoError(t, short.Set(filename, "", reports))

		time.Sleep(10 * time.Millisecond)
		_, found := short.Get(filename, "")
		assert.False(t, found)
	})

	t.Run("InvalidateAll", func(t *testing.T) {
		filename := filepath.Join(tmpDir, "all.bool")
		require.NoError(t, os.WriteFile(filename, []byte("A\n"), 0o644))
		require.NoError(t, cache.Set(filename, "", reports))

		cache.InvalidateAll()
		_, found := cache.Get(filename, "")
		assert.False(t, found)
	})
}

func TestCacheWithEngine(t *testing.T) {
	tmpDir := createTempDir(t, "cache-engine-test")

	cache, err := NewCache(filepath.Join(tmpDir, "cache"), 0)
	require.NoError(t, err)

	engine := NewEngine(nil)
	engine.UseCache(cache)

	filename := filepath.Join(tmpDir, "test.bool")
	require.NoError(t, os.WriteFile(filename, []byte("A+A.B\n"), 0o644))

	reports, err := engine.Run(filename)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "A", reports[0].Minimized)

	cached, found := cache.Get(filename, engine.signature())
	require.True(t, found)
	assert.Equal(t, reports, cached)

	again, err := engine.Run(filename)
	require.NoError(t, err)
	assert.Equal(t, reports, again)

	require.NoError(t, os.WriteFile(filename, []byte("A.B\nA^B\n"), 0o644))
	changed, err := engine.Run(filename)
	require.NoError(t, err)
	assert.Len(t, changed, 2)
}

func TestCacheConcurrency(t *testing.T) {
	tempDir := createTempDir(t, "cache-concurrency-test")

	cache, err := NewCache(filepath.Join(tempDir, "cache"), 0)
	require.NoError(t, err)

	testFile := filepath.Join(tempDir, "test.bool")
	require.NoError(t, os.WriteFile(testFile, []byte("A\n"), 0o644))

	reports := []tt.Report{{Filename: testFile, Line: 1, Expression: "A", Valid: true}}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, cache.Set(testFile, "", reports))
		}()
		go func() {
			defer wg.Done()
			_, _ = cache.Get(testFile, "")
		}()
	}
	wg.Wait()
}
