package cachemanager

import (
	"context"
	"fmt"
	"time"
)

// LineKey identifies one rendered view of a row. A row's revision changes
// whenever its highlights change, so stale entries are never looked up again
// and simply expire.
type LineKey struct {
	RowID  uint64
	Rev    uint64
	ColOff int
	Width  int
}

func (k LineKey) String() string {
	return fmt.Sprintf("%d:%d:%d:%d", k.RowID, k.Rev, k.ColOff, k.Width)
}

// LineCache is a read-through cache of styled row segments.
type LineCache struct {
	cache    CacheManager[string, string]
	ttl      time.Duration
	disabled bool

	hits   int
	misses int
}

// NewLineCache wraps cache. With enabled false every lookup renders.
func NewLineCache(cache CacheManager[string, string], ttl time.Duration, enabled bool) *LineCache {
	if ttl <= 0 {
		ttl = DefaultExpiration
	}
	return &LineCache{cache: cache, ttl: ttl, disabled: !enabled}
}

// Get returns the cached segment for key, calling render on a miss.
func (c *LineCache) Get(ctx context.Context, key LineKey, render func() string) string {
	if c == nil || c.disabled {
		return render()
	}
	k := key.String()
	if v, ok := c.cache.GetWithRefresh(ctx, k, c.ttl); ok {
		c.hits++
		return v
	}
	c.misses++
	v := render()
	c.cache.Set(ctx, k, v, c.ttl)
	return v
}

// Flush drops every entry, used when the theme or tab stop changes.
func (c *LineCache) Flush(ctx context.Context) {
	if c == nil {
		return
	}
	_ = c.cache.Flush(ctx)
}

// Stats returns lookup counters since creation.
func (c *LineCache) Stats() (hits, misses int) {
	if c == nil {
		return 0, 0
	}
	return c.hits, c.misses
}
