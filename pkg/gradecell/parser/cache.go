package parser

import (
	"math"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ukaji3/gradecell-go/pkg/gradecell/models"
)

// DefaultCacheEntries is the workbook count kept by NewLoader when no cache is given.
const DefaultCacheEntries = 16

// Cache keeps parsed workbooks keyed by absolute path. An entry is only
// served while the file's modification time and size match what was parsed;
// the least recently used entry is evicted once MaxEntries is exceeded.
// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries *lru.Cache[string, *cacheEntry]
	// evicted collects paths dropped by the lru during one call; guarded by mu.
	evicted []string
}

type cacheEntry struct {
	modTime  time.Time
	size     int64
	workbook *models.Workbook
	mappings map[string]*models.ActivityMapping
}

// NewCache creates a cache holding at most maxEntries workbooks.
// Zero or a negative value means no limit.
func NewCache(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = math.MaxInt32
	}
	c := &Cache{}
	entries, err := lru.NewWithEvict(maxEntries, func(path string, _ *cacheEntry) {
		c.evicted = append(c.evicted, path)
	})
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	c.entries = entries
	return c
}

// Get returns the workbook cached for path if it was parsed from a file with
// the same modification time and size.
func (c *Cache) Get(path string, modTime time.Time, size int64) (*models.Workbook, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Get(path)
	if !ok {
		return nil, false
	}
	if !e.modTime.Equal(modTime) || e.size != size {
		c.entries.Remove(path)
		c.evicted = nil
		return nil, false
	}
	return e.workbook, true
}

// Put stores wb for path and returns the paths evicted to make room.
func (c *Cache) Put(path string, modTime time.Time, size int64, wb *models.Workbook) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Remove(path)
	c.evicted = nil
	c.entries.Add(path, &cacheEntry{
		modTime:  modTime,
		size:     size,
		workbook: wb,
		mappings: make(map[string]*models.ActivityMapping),
	})
	evicted := c.evicted
	c.evicted = nil
	return evicted
}

// Mapping returns the mapping memoized under key for wb, building and storing
// it on first use. Workbooks that are no longer cached are mapped without
// memoization. Failed builds are not stored.
func (c *Cache) Mapping(wb *models.Workbook, key string, build func() (*models.ActivityMapping, error)) (*models.ActivityMapping, error) {
	if m, ok := c.lookupMapping(wb, key); ok {
		return m, nil
	}
	m, err := build()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e := c.entryFor(wb); e != nil {
		if existing, ok := e.mappings[key]; ok {
			return existing, nil
		}
		e.mappings[key] = m
	}
	return m, nil
}

// Len returns the number of cached workbooks.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached workbook.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Purge()
	c.evicted = nil
}

func (c *Cache) lookupMapping(wb *models.Workbook, key string) (*models.ActivityMapping, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entryFor(wb)
	if e == nil {
		return nil, false
	}
	m, ok := e.mappings[key]
	return m, ok
}

// entryFor must be called with mu held. It does not refresh recency.
func (c *Cache) entryFor(wb *models.Workbook) *cacheEntry {
	if wb == nil {
		return nil
	}
	e, ok := c.entries.Peek(wb.Path)
	if !ok || e.workbook != wb {
		return nil
	}
	return e
}
