package evalctx

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sync"

	"github.com/datagen-go/datagen/pkg/value"
)

// FileMode selects how File source node advances through a cached file's
// records.
type FileMode int

const (
	// FileSequential advances a persistent cursor and wraps at the end.
	FileSequential FileMode = iota
	// FileRandom picks a record uniformly at random on every call.
	FileRandom
)

type fileEntry struct {
	records []any
	cursor  int
}

// FileCache is the run-level file-source registry: a mapping from file
// path to its lazily-loaded records and a persistent sequential cursor.
// Root creates one per run, and every context of that run shares it, the
// same way they share Counters.
type FileCache struct {
	mu      sync.Mutex
	entries map[string]*fileEntry
}

// NewFileCache creates an empty file cache.
func NewFileCache() *FileCache {
	return &FileCache{entries: make(map[string]*fileEntry)}
}

// Next loads path on first use (must decode to a non-empty JSON array) and
// returns the next record per mode, wrapped as an Opaque value.
func (c *FileCache) Next(path string, mode FileMode, rng *rand.Rand) (value.Value, error) {
	c.mu.Lock()
	entry, ok := c.entries[path]
	if !ok {
		records, err := loadFileRecords(path)
		if err != nil {
			c.mu.Unlock()
			return value.Value{}, err
		}
		entry = &fileEntry{records: records}
		c.entries[path] = entry
	}
	var rec any
	switch mode {
	case FileRandom:
		rec = entry.records[rng.Intn(len(entry.records))]
	default:
		rec = entry.records[entry.cursor]
		entry.cursor = (entry.cursor + 1) % len(entry.records)
	}
	c.mu.Unlock()

	return value.Opaque(rec), nil
}

func loadFileRecords(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("evalctx: reading file source %q: %w", path, err)
	}
	var records []any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("evalctx: file source %q is not a JSON array: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("evalctx: file source %q is empty", path)
	}
	return records, nil
}
