package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

const (
	fileExtension = ".json"
	bytesPerMB    = 1 << 20
)

// Store errors.
var (
	ErrNotFound   = errors.New("cache entry not found")
	ErrExpired    = errors.New("cache entry expired")
	ErrInvalidKey = errors.New("cache key cannot be empty")
	ErrDisabled   = errors.New("cache is disabled")
)

// FileStore keeps entries as JSON files in one directory. Safe for concurrent use.
type FileStore struct {
	directory  string
	enabled    bool
	ttlSeconds int
	maxSizeMB  int // 0 = unlimited

	mu sync.RWMutex
}

// Stats summarizes the cache directory.
type Stats struct {
	Directory string
	Entries   int
	Expired   int
	Bytes     int64
	Oldest    time.Time
	Newest    time.Time
}

// NewFileStore opens (and creates) directory. A disabled store accepts no
// directory and answers every call with ErrDisabled.
func NewFileStore(directory string, enabled bool, ttlSeconds, maxSizeMB int) (*FileStore, error) {
	if !enabled {
		return &FileStore{enabled: false}, nil
	}
	if directory == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if err := os.MkdirAll(directory, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &FileStore{
		directory:  directory,
		enabled:    true,
		ttlSeconds: ttlSeconds,
		maxSizeMB:  maxSizeMB,
	}, nil
}

// Get returns the live entry for key, ErrNotFound or ErrExpired.
// An expired file is removed on the way out.
func (s *FileStore) Get(key string) (*Entry, error) {
	if err := s.check(key); err != nil {
		return nil, err
	}

	s.mu.RLock()
	entry, err := s.read(s.path(key))
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	if entry.IsExpired() {
		_ = s.Delete(key)
		return nil, ErrExpired
	}
	return entry, nil
}

// GetJSON looks up key and decodes its payload into v.
func (s *FileStore) GetJSON(key string, v any) error {
	entry, err := s.Get(key)
	if err != nil {
		return err
	}
	if err = entry.Decode(v); err != nil {
		return fmt.Errorf("decoding cache entry %s: %w", key, err)
	}
	return nil
}

// Set writes data under key with the store's TTL, then enforces the size cap.
func (s *FileStore) Set(key, operation string, data json.RawMessage) error {
	if err := s.check(key); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(NewEntry(key, operation, data, s.ttlSeconds), "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling cache entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.path(key)
	tmp := target + ".tmp"
	if err = os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	if err = os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming cache file: %w", err)
	}

	return s.evictLocked()
}

// SetJSON marshals v and stores it under key.
func (s *FileStore) SetJSON(key, operation string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshalling cache payload: %w", err)
	}
	return s.Set(key, operation, raw)
}

// Delete removes key; a missing entry is not an error.
func (s *FileStore) Delete(key string) error {
	if err := s.check(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting cache file: %w", err)
	}
	return nil
}

// Clear removes every entry and returns how many were removed.
func (s *FileStore) Clear() (int, error) {
	if !s.enabled {
		return 0, ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.listLocked()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, f := range files {
		if err = os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("removing cache file %s: %w", filepath.Base(f.path), err)
		}
		removed++
	}
	return removed, nil
}

// Prune removes expired and unreadable entries and returns how many were removed.
func (s *FileStore) Prune() (int, error) {
	if !s.enabled {
		return 0, ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.listLocked()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, f := range files {
		entry, readErr := s.read(f.path)
		if readErr == nil && !entry.IsExpired() {
			continue
		}
		if os.Remove(f.path) == nil {
			removed++
		}
	}
	return removed, nil
}

// Stats reports entry counts and on-disk size.
func (s *FileStore) Stats() (Stats, error) {
	if !s.enabled {
		return Stats{}, ErrDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := s.listLocked()
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Directory: s.directory}
	for _, f := range files {
		st.Entries++
		st.Bytes += f.size
		entry, readErr := s.read(f.path)
		if readErr != nil {
			continue
		}
		if entry.IsExpired() {
			st.Expired++
		}
		if st.Oldest.IsZero() || entry.CreatedAt.Before(st.Oldest) {
			st.Oldest = entry.CreatedAt
		}
		if entry.CreatedAt.After(st.Newest) {
			st.Newest = entry.CreatedAt
		}
	}
	return st, nil
}

// IsEnabled reports whether the store is active.
func (s *FileStore) IsEnabled() bool { return s.enabled }

// Directory returns the cache directory.
func (s *FileStore) Directory() string { return s.directory }

// TTL returns the TTL applied to new entries.
func (s *FileStore) TTL() time.Duration { return time.Duration(s.ttlSeconds) * time.Second }

func (s *FileStore) check(key string) error {
	if !s.enabled {
		return ErrDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}
	return nil
}

// path maps a key to its file. Keys come from GenerateKey and are already
// filesystem safe; Base strips any separators a caller-supplied key carries.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.directory, filepath.Base(key)+fileExtension)
}

func (s *FileStore) read(path string) (*Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading cache file: %w", err)
	}
	var entry Entry
	if err = json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("unmarshalling cache entry: %w", err)
	}
	return &entry, nil
}

type fileInfo struct {
	path    string
	size    int64
	modTime time.Time
}

func (s *FileStore) listLocked() ([]fileInfo, error) {
	dirEntries, err := os.ReadDir(s.directory)
	if err != nil {
		return nil, fmt.Errorf("reading cache directory: %w", err)
	}
	files := make([]fileInfo, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != fileExtension {
			continue
		}
		info, infoErr := de.Info()
		if infoErr != nil {
			continue
		}
		files = append(files, fileInfo{
			path:    filepath.Join(s.directory, de.Name()),
			size:    info.Size(),
			modTime: info.ModTime(),
		})
	}
	return files, nil
}

// evictLocked drops the least recently written files until the directory
// fits under maxSizeMB.
func (s *FileStore) evictLocked() error {
	if s.maxSizeMB <= 0 {
		return nil
	}
	files, err := s.listLocked()
	if err != nil {
		return err
	}
	var total int64
	for _, f := range files {
		total += f.size
	}
	limit := int64(s.maxSizeMB) * bytesPerMB
	if total <= limit {
		return nil
	}

	slices.SortFunc(files, func(a, b fileInfo) int { return a.modTime.Compare(b.modTime) })
	for _, f := range files {
		if total <= limit {
			break
		}
		if os.Remove(f.path) == nil {
			total -= f.size
		}
	}
	return nil
}
