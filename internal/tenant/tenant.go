// internal/tenant/tenant.go
//
// Tenant cache entry and aggregate.
//
// Context
// -------
// A live Tenant carries what the link helpers need to serve one host: its
// `site` row and the merged URL settings (global `url` defaults overlaid
// by the host's `site_config` rows).  The settings are validated once at
// load time, so BuilderFor never fails.
//
// The cache stores a pointer to Tenant inside `entry`, along with a
// `lastSeen` UnixNano timestamp used by the evictor for idle and LRU
// eviction.
//
// Notes
// -----
//   - Tenant is immutable after load.  Handlers must not edit Settings.
//   - Oxford commas, two spaces after periods.
package tenant

import (
	"net/http"

	"github.com/yanizio/urlkit/internal/site"
	"github.com/yanizio/urlkit/internal/urlgen"
)

//
// Cache entry
//

type entry struct {
	tenant   *Tenant
	lastSeen int64 // UnixNano
}

//
// Tenant aggregate
//

// Tenant groups the per-host data needed to build links.
type Tenant struct {
	Meta     site.Record
	Settings map[string]string // validated urlgen settings
}

// BuilderFor returns a Builder seeded from the request and overlaid with
// the tenant's settings, mirroring how a fresh front controller starts from
// what the request shows and then applies stored configuration.
func (t *Tenant) BuilderFor(r *http.Request, frontController string) *urlgen.Builder {
	b := urlgen.NewFromRequest(r, frontController)
	// Settings were validated by the loader.
	_ = b.Apply(t.Settings)
	return b
}
