// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from three layers (highest
precedence last):

  1. Optional `.env` file at `<root>/conf/.env`.
  2. `conf/global.yaml`.
  3. Environment variables prefixed `URLKIT_`, where `__` maps to "."
     (e.g., `URLKIT_URL__STYLE → url.style`).

After merging, the tree is unmarshalled into strongly-typed structs,
defaulted, validated, and enriched with the runtime root path.  The caller
owns the result; cmd/web loads once at boot and passes sections down.

Instrumentation
---------------
  • DEBUG spans: root discovery, YAML read.
  • ERROR spans: YAML parse, env overlay, unmarshal, validation failures.
  • INFO  span:  final "config loaded" with key highlights.
  • Logs use the global *sugared* logger (`zap.S()`) so early boot issues
    surface even before the file logger is installed.

Notes
-----
  • `rootDir()` climbs the cwd tree until it finds `conf/global.yaml`, so
    `go run ./cmd/web` works from any sub-directory.
  • Oxford commas, two spaces after periods.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

const envPrefix = "URLKIT_"

// Defaults applied when the YAML and env layers leave a field at zero.
const (
	DefaultListenAddr    = ":8080"
	DefaultIdleTTL       = 30 * time.Minute
	DefaultEvictInterval = 5 * time.Minute
	DefaultMaxEntries    = 100
	DefaultSlugCacheSize = 1024
)

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves URLKIT_ROOT or climbs directories until conf/global.yaml
// is found.  Falls back to the executable heuristic for production layout.
func rootDir() string {
	if r := os.Getenv(envPrefix + "ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load discovers the root directory and calls LoadFrom.
func Load() (*Config, error) { return LoadFrom(rootDir()) }

// LoadFrom reads .env, YAML, and env overrides below root, validates, and
// caches the result.
func LoadFrom(root string) (*Config, error) {
	zap.S().Debugw("config root resolved", "root", root)

	// .env (optional, no error if missing)
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
		return nil, fmt.Errorf("config: read %s: %w", yamlPath, err)
	}
	zap.S().Debugw("config yaml loaded", "file", yamlPath)

	// Env overrides: URLKIT_URL__SITE_URL → url.site_url
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ToLower(strings.ReplaceAll(s, "__", "."))
	}), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, fmt.Errorf("config: env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	applyDefaults(&cfg)
	cfg.Paths.Root = root
	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"site_url", cfg.URL.SiteURL,
		"url_style", cfg.URL.Style,
		"database", cfg.Database.GlobalDSN != "",
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

func applyDefaults(c *Config) {
	if c.HTTP.ListenAddr == "" {
		c.HTTP.ListenAddr = DefaultListenAddr
	}
	if c.Tenant.IdleTTL == 0 {
		c.Tenant.IdleTTL = DefaultIdleTTL
	}
	if c.Tenant.EvictInterval == 0 {
		c.Tenant.EvictInterval = DefaultEvictInterval
	}
	if c.Tenant.MaxEntries == 0 {
		c.Tenant.MaxEntries = DefaultMaxEntries
	}
	if c.Slug.CacheSize == 0 {
		c.Slug.CacheSize = DefaultSlugCacheSize
	}
}

