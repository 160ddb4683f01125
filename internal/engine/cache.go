package engine

import (
	"strings"

	"github.com/sells-group/finqa-cli/internal/model"
)

// CacheEntry is one memoized answer.
type CacheEntry struct {
	Answer string
	Status model.AnswerStatus
	Intent Intent
	Metric string
}

// AnswerCache memoizes final answers for one run, keyed by the normalized
// question. The engine processes questions sequentially, so no locking is
// needed; the cache is never persisted.
type AnswerCache struct {
	entries map[string]CacheEntry
}

// NewAnswerCache creates an empty per-run cache.
func NewAnswerCache() *AnswerCache {
	return &AnswerCache{entries: make(map[string]CacheEntry)}
}

// NormalizeKey case-folds and collapses whitespace so trivially restated
// questions share one entry.
func NormalizeKey(question string) string {
	return strings.Join(strings.Fields(strings.ToLower(question)), " ")
}

// GetOrCompute returns the cached entry for the question, invoking fn at
// most once per distinct normalized question per run.
func (c *AnswerCache) GetOrCompute(question string, fn func() CacheEntry) CacheEntry {
	key := NormalizeKey(question)
	if entry, ok := c.entries[key]; ok {
		return entry
	}
	entry := fn()
	c.entries[key] = entry
	return entry
}

// Len reports the number of distinct cached questions.
func (c *AnswerCache) Len() int {
	return len(c.entries)
}
