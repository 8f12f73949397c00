package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/zatekoja/Drugfoodinteractiondesign/pkg/utils"
)

// FileNameCache is a name cache backed by a flat JSON object on disk. The
// file is read once at construction; every Store rewrites it in full. Safe
// for concurrent use.
type FileNameCache struct {
	path string

	mu      sync.RWMutex
	entries map[string]string
}

// NewFileNameCache loads the cache file at path. A missing file starts an
// empty cache; a malformed one is an error.
func NewFileNameCache(path string) (*FileNameCache, error) {
	entries := make(map[string]string)

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// first run, start empty
	case err != nil:
		return nil, fmt.Errorf("failed to read name cache: %w", err)
	default:
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse name cache: %w", err)
		}
	}

	normalized := make(map[string]string, len(entries))
	for name, generic := range entries {
		normalized[utils.NormalizeLookupKey(name)] = generic
	}

	return &FileNameCache{path: path, entries: normalized}, nil
}

// Lookup returns the cached generic name for a raw input.
func (c *FileNameCache) Lookup(_ context.Context, name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	generic, ok := c.entries[utils.NormalizeLookupKey(name)]
	return generic, ok
}

// Store persists a resolved mapping and rewrites the cache file.
func (c *FileNameCache) Store(_ context.Context, name, generic string) error {
	key := utils.NormalizeLookupKey(name)
	if key == "" {
		return fmt.Errorf("name cache key must not be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = generic
	return c.flushLocked()
}

// Entries returns a copy of every cached mapping.
func (c *FileNameCache) Entries(_ context.Context) (map[string]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]string, len(c.entries))
	for name, generic := range c.entries {
		out[name] = generic
	}
	return out, nil
}

// Size returns the number of cached mappings.
func (c *FileNameCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// flushLocked writes the cache to a temp file and renames it into place so
// a crash mid-write cannot corrupt the cache. Caller must hold mu.
func (c *FileNameCache) flushLocked() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode name cache: %w", err)
	}

	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write name cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("failed to replace name cache: %w", err)
	}
	return nil
}
