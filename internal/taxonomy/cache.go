package taxonomy

import (
	"sync"
	"sync/atomic"

	"github.com/spigell/hh-matcher/internal/logger"
	"go.uber.org/zap"
)

// Source supplies the three synonym layers for a merge. Nil funcs yield
// empty layers, so a Source with only Static set is valid.
type Source struct {
	Static   func() Layer
	Industry func(industry string) Layer
	Custom   func(orgID string) Layer
}

type cacheKey struct {
	orgID    string
	industry string
}

// Cache builds merged taxonomy maps on demand and memoizes them per
// (orgID, industry). Reads are lock-free: the lookup table lives behind an
// atomic pointer and writers install a fresh copy under a mutex. Clear is
// safe to call concurrently with in-flight reads; readers may observe a
// stale map during invalidation.
type Cache struct {
	source Source
	logger *zap.Logger

	mu   sync.Mutex
	maps atomic.Pointer[map[cacheKey]*Map]
}

// NewCache creates a cache over the provided source layers.
func NewCache(source Source, logger *zap.Logger) *Cache {
	c := &Cache{source: source, logger: logger}
	empty := map[cacheKey]*Map{}
	c.maps.Store(&empty)
	return c
}

// Get returns the merged map for the scope, building and memoizing it on
// first use.
func (c *Cache) Get(orgID, industry string) *Map {
	key := cacheKey{orgID: orgID, industry: industry}
	if m, ok := (*c.maps.Load())[key]; ok {
		return m
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current := *c.maps.Load()
	if m, ok := current[key]; ok {
		return m
	}

	m := c.build(orgID, industry)

	next := make(map[cacheKey]*Map, len(current)+1)
	for k, v := range current {
		next[k] = v
	}
	next[key] = m
	c.maps.Store(&next)

	return m
}

// Clear drops every memoized map. Subsequent Get calls rebuild from the
// source layers.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	empty := map[cacheKey]*Map{}
	c.maps.Store(&empty)

	if c.logger != nil {
		c.logger.Info("taxonomy cache cleared")
	}
}

func (c *Cache) build(orgID, industry string) *Map {
	static, industryLayer, custom := Layer{}, Layer{}, Layer{}
	if c.source.Static != nil {
		static = c.source.Static()
	}
	if c.source.Industry != nil {
		industryLayer = c.source.Industry(industry)
	}
	if c.source.Custom != nil {
		custom = c.source.Custom(orgID)
	}

	m := Merge(static, industryLayer, custom)
	m.OrgID = orgID
	m.Industry = industry

	if c.logger != nil {
		c.logger.Debug("taxonomy map built",
			zap.String(logger.FieldOrg, orgID),
			zap.String(logger.FieldIndustry, industry),
			zap.Int("canonical_skills", m.Len()),
		)
	}

	return m
}
