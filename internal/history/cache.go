// Package history maintains the client-side query history: an ordered,
// deduplicated, size-bounded list of past questions with a preview snippet,
// backed by a persistent key-value store.
package history

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// StorageKey is the single namespaced key holding the JSON-encoded history.
const StorageKey = "surveyor.history"

// maxEntries bounds the history; the oldest entries are evicted past it.
const maxEntries = 50

// previewLimit caps the summary preview taken from a flat answer.
const previewLimit = 160

// Entry is one remembered query. Queries are unique within the history
// (exact, case-sensitive match); entries are ordered most-recent-first.
type Entry struct {
	Query          string    `json:"query"`
	Date           time.Time `json:"date"`
	SummaryPreview string    `json:"summary_preview"`
}

// Cache is the query history. Storage degradations are soft: a malformed
// persisted value loads as empty, and a failed write keeps the in-memory
// update. The history is a convenience cache, so availability wins over
// durability.
type Cache struct {
	store   KeyValueStore
	logger  *zap.Logger
	entries []Entry
}

// NewCache creates a cache on top of store and loads any persisted history.
func NewCache(store KeyValueStore, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Cache{store: store, logger: logger}
	c.entries = c.Load()
	return c
}

// Load reads the persisted history. A missing key or malformed value yields
// an empty history, never an error.
func (c *Cache) Load() []Entry {
	raw, ok, err := c.store.Get(StorageKey)
	if err != nil {
		c.logger.Warn("failed to read persisted history", zap.Error(err))
		c.entries = nil
		return nil
	}
	if !ok {
		c.entries = nil
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		c.logger.Warn("persisted history is malformed, starting empty", zap.Error(err))
		c.entries = nil
		return nil
	}

	c.entries = normalize(entries)
	return c.snapshot()
}

// normalize re-establishes the history invariants on data written by
// another process or hand-edited: first occurrence of a query wins,
// order is preserved, the bound applies.
func normalize(entries []Entry) []Entry {
	seen := make(map[string]struct{}, len(entries))
	kept := entries[:0]
	for _, e := range entries {
		if _, dup := seen[e.Query]; dup {
			continue
		}
		seen[e.Query] = struct{}{}
		kept = append(kept, e)
		if len(kept) == maxEntries {
			break
		}
	}
	return kept
}

// Record inserts entry at the front, removing any existing entry with the
// same query and truncating to the bound, then persists the result. The
// returned slice is the new history even if persistence failed.
func (c *Cache) Record(entry Entry) []Entry {
	kept := make([]Entry, 0, len(c.entries)+1)
	kept = append(kept, entry)
	for _, e := range c.entries {
		if e.Query == entry.Query {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) > maxEntries {
		kept = kept[:maxEntries]
	}
	c.entries = kept

	data, err := json.Marshal(c.entries)
	if err != nil {
		c.logger.Warn("failed to encode history", zap.Error(err))
		return c.snapshot()
	}
	if err := c.store.Set(StorageKey, string(data)); err != nil {
		c.logger.Warn("failed to persist history", zap.Error(err))
	}
	return c.snapshot()
}

// Clear removes the persisted history and empties the in-memory copy.
// Clearing an already-empty history is a no-op.
func (c *Cache) Clear() {
	c.entries = nil
	if err := c.store.Delete(StorageKey); err != nil {
		c.logger.Warn("failed to clear persisted history", zap.Error(err))
	}
}

// Entries returns the current history, most recent first.
func (c *Cache) Entries() []Entry {
	return c.snapshot()
}

func (c *Cache) snapshot() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Preview derives the summary preview stored alongside a query: the raw
// structured overview when present, otherwise the first 160 characters of a
// flat answer, otherwise empty.
func Preview(overview, answer string) string {
	if overview != "" {
		return overview
	}
	runes := []rune(answer)
	if len(runes) > previewLimit {
		return string(runes[:previewLimit])
	}
	return answer
}
