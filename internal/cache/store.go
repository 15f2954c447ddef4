package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const fileExtension = ".json"

// Common cache errors.
var (
	ErrNotFound   = errors.New("cache entry not found")
	ErrExpired    = errors.New("cache entry expired")
	ErrInvalidKey = errors.New("cache key cannot be empty")
	ErrDisabled   = errors.New("cache is disabled")
)

// Stats summarizes the on-disk state of a FileStore.
type Stats struct {
	Directory  string
	Entries    int
	Expired    int
	SizeBytes  int64
	TTLSeconds int

	// OldestAge is the age of the oldest readable entry.
	OldestAge time.Duration

	// NextExpiry is how long until the next live entry expires; zero when none are live.
	NextExpiry time.Duration
}

// FileStore keeps one JSON file per cached resource. Safe for concurrent use.
type FileStore struct {
	directory  string
	enabled    bool
	ttlSeconds int

	mu sync.RWMutex
}

// NewFileStore creates a store rooted at directory, creating it if needed.
// A disabled store is returned without touching the filesystem.
func NewFileStore(directory string, enabled bool, ttlSeconds int) (*FileStore, error) {
	if !enabled {
		return &FileStore{enabled: false}, nil
	}

	if directory == "" {
		return nil, errors.New("cache directory cannot be empty")
	}

	if err := os.MkdirAll(directory, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &FileStore{
		directory:  directory,
		enabled:    true,
		ttlSeconds: ttlSeconds,
	}, nil
}

// KeyForURL derives the cache key for a resource URL. Trailing slashes are ignored so
// "/films/1" and "/films/1/" share an entry.
func KeyForURL(url string) string {
	normalized := strings.TrimRight(strings.TrimSpace(url), "/")
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// Get returns the entry for key. ErrNotFound and ErrExpired signal a miss.
func (s *FileStore) Get(key string) (*Entry, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}
	if key == "" {
		return nil, ErrInvalidKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.keyToFilePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var entry Entry
	if unmarshalErr := json.Unmarshal(data, &entry); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", unmarshalErr)
	}

	if entry.IsExpired() {
		return nil, ErrExpired
	}

	return &entry, nil
}

// Set stores data under key, replacing any existing entry.
func (s *FileStore) Set(key, url string, data json.RawMessage) error {
	if !s.enabled {
		return ErrDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := NewEntry(key, url, data, s.ttlSeconds)
	entryData, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	filePath := s.keyToFilePath(key)

	// Write to a temp file and rename so readers never see a partial entry.
	tempPath := filePath + ".tmp"
	if writeErr := os.WriteFile(tempPath, entryData, 0o600); writeErr != nil {
		return fmt.Errorf("failed to write cache file: %w", writeErr)
	}
	if renameErr := os.Rename(tempPath, filePath); renameErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename cache file: %w", renameErr)
	}

	return nil
}

// Delete removes the entry for key. Deleting a missing entry is not an error.
func (s *FileStore) Delete(key string) error {
	if !s.enabled {
		return ErrDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.keyToFilePath(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

// Clear removes every cache file and returns how many were removed.
func (s *FileStore) Clear() (int, error) {
	if !s.enabled {
		return 0, ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != fileExtension {
			continue
		}
		if removeErr := os.Remove(filepath.Join(s.directory, entry.Name())); removeErr != nil {
			return removed, fmt.Errorf("failed to remove cache file %s: %w", entry.Name(), removeErr)
		}
		removed++
	}

	return removed, nil
}

// CleanupExpired removes expired entries and returns how many were removed.
// Unreadable or corrupt files are skipped.
func (s *FileStore) CleanupExpired() (int, error) {
	if !s.enabled {
		return 0, ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dirEntries, err := os.ReadDir(s.directory)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	removed := 0
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || filepath.Ext(dirEntry.Name()) != fileExtension {
			continue
		}

		filePath := filepath.Join(s.directory, dirEntry.Name())
		entry, readErr := readEntry(filePath)
		if readErr != nil {
			continue
		}

		if entry.IsExpired() && os.Remove(filePath) == nil {
			removed++
		}
	}

	return removed, nil
}

// Stats walks the cache directory and reports entry counts and total size.
func (s *FileStore) Stats() (Stats, error) {
	if !s.enabled {
		return Stats{}, ErrDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	dirEntries, err := os.ReadDir(s.directory)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read cache directory: %w", err)
	}

	stats := Stats{Directory: s.directory, TTLSeconds: s.ttlSeconds}
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || filepath.Ext(dirEntry.Name()) != fileExtension {
			continue
		}
		stats.Entries++

		if info, infoErr := dirEntry.Info(); infoErr == nil {
			stats.SizeBytes += info.Size()
		}

		entry, readErr := readEntry(filepath.Join(s.directory, dirEntry.Name()))
		if readErr != nil {
			continue
		}
		stats.OldestAge = max(stats.OldestAge, entry.Age())
		if entry.IsExpired() {
			stats.Expired++
			continue
		}
		if remaining := entry.TimeUntilExpiration(); stats.NextExpiry == 0 || remaining < stats.NextExpiry {
			stats.NextExpiry = remaining
		}
	}

	return stats, nil
}

// IsEnabled reports whether caching is active.
func (s *FileStore) IsEnabled() bool {
	return s != nil && s.enabled
}

// Directory returns the cache directory path.
func (s *FileStore) Directory() string {
	return s.directory
}

// TTL returns the TTL in seconds applied to new entries.
func (s *FileStore) TTL() int {
	return s.ttlSeconds
}

func (s *FileStore) keyToFilePath(key string) string {
	safeKey := strings.ReplaceAll(key, "/", "_")
	safeKey = strings.ReplaceAll(safeKey, "\\", "_")
	safeKey = strings.ReplaceAll(safeKey, ":", "_")
	return filepath.Join(s.directory, safeKey+fileExtension)
}

func readEntry(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
