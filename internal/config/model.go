// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                          – dotenv values,
//   • `conf/global.yaml`                       – primary static file,
//   • `URLKIT_`-prefixed environment overrides – highest precedence.
//
// The `url` block holds the global link defaults every site starts from.
// Per-site rows in `site_config` are merged on top by the tenant loader.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing or the URL style is unknown.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.

package config

import (
	"time"

	"github.com/yanizio/urlkit/internal/urlgen"
)

//
// HTTP section
//

// HTTP holds web-server tunables.  FrontController is the script path the
// router is mounted under ("/index.php"); it feeds request-derived URLs.
type HTTP struct {
	ListenAddr      string `koanf:"listen_addr"      validate:"required,hostname_port"`
	ForceHTTPS      bool   `koanf:"force_https"`
	FrontController string `koanf:"front_controller"`
}

//
// Database section
//

// Database is optional.  With an empty DSN the app runs without per-site
// settings and every host gets request-derived URLs.  A password of the
// form `vault:<path>#<key>` is resolved through Vault at startup.
type Database struct {
	GlobalDSN      string `koanf:"global_dsn"`
	GlobalPassword string `koanf:"global_password" validate:"required_with=GlobalDSN"`
}

//
// URL section
//

// URL carries the global link defaults.
type URL struct {
	SiteURL       string `koanf:"site_url"`
	BaseURL       string `koanf:"base_url"`
	StaticSiteURL string `koanf:"static_site_url"`
	StaticBaseURL string `koanf:"static_base_url"`
	ScriptName    string `koanf:"script_name"`
	Style         string `koanf:"style"           validate:"omitempty,oneof=clean append"`
}

// Settings flattens the non-empty fields into the key/value form accepted
// by urlgen.Builder.Apply.
func (u URL) Settings() map[string]string {
	out := make(map[string]string, 6)
	put := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	put(urlgen.KeySiteURL, u.SiteURL)
	put(urlgen.KeyBaseURL, u.BaseURL)
	put(urlgen.KeyStaticSiteURL, u.StaticSiteURL)
	put(urlgen.KeyStaticBaseURL, u.StaticBaseURL)
	put(urlgen.KeyScriptName, u.ScriptName)
	put(urlgen.KeyStyle, u.Style)
	return out
}

//
// Tenant and slug sections
//

// Tenant tunes the per-host builder cache.
type Tenant struct {
	IdleTTL       time.Duration `koanf:"idle_ttl"       validate:"gte=0"`
	EvictInterval time.Duration `koanf:"evict_interval" validate:"gte=0"`
	MaxEntries    int           `koanf:"max_entries"    validate:"gte=0"`
}

// Slug sizes the template-side slug memo.
type Slug struct {
	CacheSize int `koanf:"cache_size" validate:"gte=0"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // URLKIT_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load().
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	URL      URL      `koanf:"url"`
	Tenant   Tenant   `koanf:"tenant"`
	Slug     Slug     `koanf:"slug"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
