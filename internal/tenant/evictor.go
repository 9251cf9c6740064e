// evictor.go houses the eviction loop for Cache.  Every EvictInterval it
// scans the map and removes:
//
//   - tenants idle longer than idleTTL
//   - least-recently-used tenants when map size exceeds maxEntries
//
// Each eviction event is logged and updates Prometheus counters.
package tenant

import (
	"sort"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/urlkit/internal/metrics"
)

func (c *Cache) evictLoop() {
	for {
		select {
		case <-c.done:
			return
		case now := <-c.evictTicker.C:
			c.evict(now.UnixNano())
		}
	}
}

// evict runs one idle pass followed by one LRU pass.
func (c *Cache) evict(now int64) {
	var count int

	// ----------------------------------------------------------------
	// Idle eviction pass
	// ----------------------------------------------------------------
	c.m.Range(func(key, value any) bool {
		ent := value.(*entry)
		idle := time.Duration(now - atomic.LoadInt64(&ent.lastSeen))
		if idle > c.idleTTL {
			c.drop(key.(string), "idle", idle)
			return true
		}
		count++
		return true
	})

	// ----------------------------------------------------------------
	// LRU eviction pass
	// ----------------------------------------------------------------
	if c.maxEntries <= 0 || count <= c.maxEntries {
		return
	}
	type kv struct {
		key string
		at  int64
	}
	all := make([]kv, 0, count)
	c.m.Range(func(key, value any) bool {
		ent := value.(*entry)
		all = append(all, kv{key: key.(string), at: atomic.LoadInt64(&ent.lastSeen)})
		return true
	})
	sort.Slice(all, func(i, j int) bool { return all[i].at < all[j].at })
	for i := 0; i < len(all)-c.maxEntries; i++ {
		c.drop(all[i].key, "lru", 0)
	}
}

func (c *Cache) drop(host, reason string, idle time.Duration) {
	if _, loaded := c.m.LoadAndDelete(host); !loaded {
		return
	}
	c.size.Add(-1)
	metrics.TenantEvictTotal.Inc()
	metrics.ActiveTenants.Dec()
	zap.L().Info("tenant evicted",
		zap.String("host", host),
		zap.String("reason", reason),
		zap.Duration("idle", idle.Truncate(time.Second)))
}
