package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmmcquay/goban-engine/internal/board"
	"github.com/dmmcquay/goban-engine/internal/scoring"
)

// entry is one cached scoring result.
type entry struct {
	key       string
	result    *scoring.Result
	timestamp time.Time
}

// ScoreCache is a thread-safe LRU cache of full-board scoring results.
// Scoring a position is deterministic for a given rule set, komi and dead
// stone set, so results can be reused across tool calls.
type ScoreCache struct {
	mu           sync.RWMutex
	maxItems     int
	items        map[string]*list.Element
	evictionList *list.List

	// Metrics
	hits      int64
	misses    int64
	evictions int64
}

// NewScoreCache creates a cache holding at most maxItems results
// (0 = unlimited).
func NewScoreCache(maxItems int) *ScoreCache {
	return &ScoreCache{
		maxItems:     maxItems,
		items:        make(map[string]*list.Element),
		evictionList: list.New(),
	}
}

// Key derives a cache key from the position hash, the scoring parameters and
// the dead stone set. Dead stones are sorted so the key is order independent.
func Key(b *board.Board, ruleSet string, komi float64, deadStones map[board.Point]bool) string {
	points := make([]string, 0, len(deadStones))
	for p, dead := range deadStones {
		if dead {
			points = append(points, fmt.Sprintf("%d,%d", p.X, p.Y))
		}
	}
	sort.Strings(points)

	h := sha256.Sum256([]byte(strings.Join(points, ";")))
	return fmt.Sprintf("%s|%s|%g|%s", b.Hash(), ruleSet, komi, hex.EncodeToString(h[:8]))
}

// Get retrieves a cached result.
func (c *ScoreCache) Get(key string) (*scoring.Result, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.evictionList.MoveToFront(elem)
		c.hits++
		e, ok := elem.Value.(*entry)
		if !ok {
			return nil, false
		}
		return e.result, true
	}

	c.misses++
	return nil, false
}

// Put adds or updates a result in the cache.
func (c *ScoreCache) Put(key string, result *scoring.Result) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.evictionList.MoveToFront(elem)
		e, ok := elem.Value.(*entry)
		if !ok {
			return
		}
		e.result = result
		e.timestamp = time.Now()
		return
	}

	e := &entry{
		key:       key,
		result:    result,
		timestamp: time.Now(),
	}
	elem := c.evictionList.PushFront(e)
	c.items[key] = elem

	c.evict()
}

// evict removes entries until the cache is within its item limit.
func (c *ScoreCache) evict() {
	for c.maxItems > 0 && c.evictionList.Len() > c.maxItems {
		elem := c.evictionList.Back()
		if elem == nil {
			break
		}
		c.removeElement(elem)
		c.evictions++
	}
}

func (c *ScoreCache) removeElement(elem *list.Element) {
	c.evictionList.Remove(elem)
	e, ok := elem.Value.(*entry)
	if !ok {
		return
	}
	delete(c.items, e.key)
}

// Delete removes a key from the cache.
func (c *ScoreCache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.removeElement(elem)
		return true
	}
	return false
}

// Clear removes all entries from the cache.
func (c *ScoreCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.evictionList.Init()
}

// Len returns the number of items in the cache.
func (c *ScoreCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.evictionList.Len()
}

// Stats holds cache statistics.
type Stats struct {
	Items     int
	Hits      int64
	Misses    int64
	Evictions int64
	HitRate   float64
}

// Stats returns current cache statistics.
func (c *ScoreCache) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hits + c.misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}

	return Stats{
		Items:     c.evictionList.Len(),
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		HitRate:   hitRate,
	}
}

// ResetStats resets hit/miss/eviction counters.
func (c *ScoreCache) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits = 0
	c.misses = 0
	c.evictions = 0
}
