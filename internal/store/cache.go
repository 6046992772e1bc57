package store

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sadopc/reportr/internal/core"
)

// resultCache keeps query results keyed by their option set. Entries
// live until the next write; there is no TTL because the store is the
// only writer.
type resultCache struct {
	mu    sync.Mutex
	items map[string][]core.Entry
}

func newResultCache() *resultCache {
	return &resultCache{items: make(map[string][]core.Entry)}
}

// get returns a copy of the cached result so callers can sort or trim
// without poisoning later hits.
func (c *resultCache) get(key string) ([]core.Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, ok := c.items[key]
	if !ok {
		return nil, false
	}
	out := make([]core.Entry, len(entries))
	copy(out, entries)
	return out, true
}

func (c *resultCache) set(key string, entries []core.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entries
}

func (c *resultCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string][]core.Entry)
}

func (c *resultCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// cacheKey renders an option set into a stable string.
func cacheKey(opts core.Options) string {
	var b strings.Builder
	if opts.Year != nil {
		fmt.Fprintf(&b, "y=%d;", *opts.Year)
	}
	if opts.Month != nil {
		fmt.Fprintf(&b, "m=%d;", *opts.Month)
	}
	if opts.Project != "" {
		fmt.Fprintf(&b, "p=%s;", strings.ToLower(opts.Project))
	}
	if opts.From != nil {
		fmt.Fprintf(&b, "f=%s;", opts.From.Format("2006-01-02"))
	}
	if opts.To != nil {
		fmt.Fprintf(&b, "t=%s;", opts.To.Format("2006-01-02"))
	}
	if b.Len() == 0 {
		return "all"
	}
	return b.String()
}
