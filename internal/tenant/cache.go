package tenant

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/urlkit/internal/metrics"
)

// Static defaults.  Overridden by the `tenant` config block.
const (
	IdleTTL       = 30 * time.Minute
	MaxEntries    = 100
	EvictInterval = 5 * time.Minute
)

// ErrNotFound is returned when a host is not present in the site table.
var ErrNotFound = errors.New("tenant not found")

// Options tunes a Cache.  Zero fields take the package defaults.
type Options struct {
	IdleTTL       time.Duration
	MaxEntries    int
	EvictInterval time.Duration
}

// Cache lazily loads tenants, stores them in a sync.Map, and evicts them on
// idle TTL or LRU pressure.
type Cache struct {
	load        Loader
	sfg         singleflight.Group
	m           sync.Map
	size        atomic.Int64
	evictTicker *time.Ticker
	done        chan struct{}
	closeOnce   sync.Once
	idleTTL     time.Duration
	maxEntries  int
}

// New constructs a Cache and starts the background evictor.  Call Close to
// stop it.
func New(load Loader, opts Options) *Cache {
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = IdleTTL
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = MaxEntries
	}
	if opts.EvictInterval <= 0 {
		opts.EvictInterval = EvictInterval
	}
	c := &Cache{
		load:       load,
		idleTTL:    opts.IdleTTL,
		maxEntries: opts.MaxEntries,
		done:       make(chan struct{}),
	}
	c.evictTicker = time.NewTicker(opts.EvictInterval)
	go c.evictLoop()
	return c
}

// Close stops the evictor.  Cached tenants stay readable.
func (c *Cache) Close() {
	c.closeOnce.Do(func() {
		c.evictTicker.Stop()
		close(c.done)
	})
}

// Len reports the number of cached tenants.
func (c *Cache) Len() int { return int(c.size.Load()) }

// Get returns the Tenant for host, loading it on demand.  Concurrent misses
// for the same host share one load.
func (c *Cache) Get(ctx context.Context, host string) (*Tenant, error) {
	if ten, ok := c.hit(host); ok {
		return ten, nil
	}

	v, err, _ := c.sfg.Do(host, func() (interface{}, error) {
		// Double-check after singleflight barrier.
		if ten, ok := c.hit(host); ok {
			return ten, nil
		}
		ten, err := c.load(ctx, host)
		if err != nil {
			metrics.TenantLoadErrorsTotal.Inc()
			return nil, err
		}
		c.m.Store(host, &entry{
			tenant:   ten,
			lastSeen: time.Now().UnixNano(),
		})
		c.size.Add(1)
		metrics.TenantLoadTotal.Inc()
		metrics.ActiveTenants.Inc()
		zap.L().Info("tenant loaded", zap.String("host", host))
		return ten, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Tenant), nil
}

func (c *Cache) hit(host string) (*Tenant, bool) {
	v, ok := c.m.Load(host)
	if !ok {
		return nil, false
	}
	ent := v.(*entry)
	atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
	return ent.tenant, true
}
