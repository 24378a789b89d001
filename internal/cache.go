package internal

import (
	"crypto/md5"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	tt "github.com/gnoswap-labs/boolex/internal/types"
)

const cacheFileName = "report_cache.gob"

type fileMetadata struct {
	Hash         string
	LastModified time.Time
}

type CacheEntry struct {
	Metadata fileMetadata
	// Checks is the signature of the check set that produced Reports.
	Checks       string
	Reports      []tt.Report
	CreatedAt    time.Time
	LastAccessed time.Time
}

// Cache keeps the reports of unchanged files across runs.
type Cache struct {
	CacheDir string
	entries  map[string]CacheEntry
	mutex    sync.Mutex
	maxAge   time.Duration
}

// NewCache opens the cache stored in cacheDir, creating the directory if
// needed. Entries older than maxAge are discarded; zero keeps them forever.
func NewCache(cacheDir string, maxAge time.Duration) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		CacheDir: cacheDir,
		entries:  make(map[string]CacheEntry),
		maxAge:   maxAge,
	}

	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}

	return cache, nil
}

func (c *Cache) load() error {
	file, err := os.Open(filepath.Join(c.CacheDir, cacheFileName))
	if os.IsNotExist(err) {
		return nil // first run
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(&c.entries); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}
	return nil
}

func (c *Cache) save() error {
	file, err := os.Create(filepath.Join(c.CacheDir, cacheFileName))
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}
	return nil
}

// Set stores the reports produced for filename by the given check set.
func (c *Cache) Set(filename, checks string, reports []tt.Report) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	metadata, err := getFileMetadata(filename)
	if err != nil {
		return fmt.Errorf("failed to get file metadata: %w", err)
	}

	now := time.Now()
	c.entries[filename] = CacheEntry{
		Metadata:     metadata,
		Checks:       checks,
		Reports:      reports,
		CreatedAt:    now,
		LastAccessed: now,
	}
	return c.save()
}

// Get returns the cached reports of filename if the file and the check set
// are unchanged.
func (c *Cache) Get(filename, checks string) ([]tt.Report, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[filename]
	if !exists {
		return nil, false
	}

	if c.isEntryInvalid(filename, checks, entry) {
		delete(c.entries, filename)
		return nil, false
	}

	entry.LastAccessed = time.Now()
	c.entries[filename] = entry
	return entry.Reports, true
}

func (c *Cache) isEntryInvalid(filename, checks string, entry CacheEntry) bool {
	if c.maxAge > 0 && time.Since(entry.CreatedAt) > c.maxAge {
		return true
	}
	if entry.Checks != checks {
		return true
	}
	current, err := getFileMetadata(filename)
	return err != nil || current != entry.Metadata
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]CacheEntry)
	_ = c.save() // manual operation, nothing to report to
}

func getFileMetadata(filename string) (fileMetadata, error) {
	file, err := os.Open(filename)
	if err != nil {
		return fileMetadata{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return fileMetadata{}, fmt.Errorf("failed to calculate hash: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		return fileMetadata{}, fmt.Errorf("failed to get file info: %w", err)
	}

	return fileMetadata{
		Hash:         fmt.Sprintf("%x", hash.Sum(nil)),
		LastModified: info.ModTime(),
	}, nil
}
