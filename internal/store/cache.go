package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FileCache is the durable local tier: one JSON file per collection holding
// the whole record list, overwritten wholesale on every sync. Writes go
// through a temp file and rename so a crash never leaves a torn file.
type FileCache[T any] struct {
	dir  string
	name string
	mu   sync.Mutex
}

func NewFileCache[T any](dir, collection string) *FileCache[T] {
	return &FileCache[T]{dir: dir, name: collection}
}

func (c *FileCache[T]) path() string {
	return filepath.Join(c.dir, c.name+".json")
}

// Load returns the last-known contents. A missing or unreadable file yields
// an empty list; the cache is a fallback, not a source of errors.
func (c *FileCache[T]) Load() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

func (c *FileCache[T]) load() []T {
	data, err := os.ReadFile(c.path())
	if err != nil {
		return []T{}
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return []T{}
	}
	return out
}

// Replace overwrites the collection with records.
func (c *FileCache[T]) Replace(records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(records)
}

// Prepend puts rec at the front of the stored collection, keeping the
// newest-first ordering the read path promises.
func (c *FileCache[T]) Prepend(rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.load()
	out := make([]T, 0, len(records)+1)
	out = append(out, rec)
	out = append(out, records...)
	return c.write(out)
}

func (c *FileCache[T]) write(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(c.dir, c.name+"-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.path())
}
