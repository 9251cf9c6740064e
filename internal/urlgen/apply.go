// internal/urlgen/apply.go
//
// Key/value merge for Builder settings.
//
// Context
// -------
// Per-site settings arrive as a flat map (the `site_config` table, or the
// `url` block of global.yaml flattened by config.URL.Settings).  Apply maps
// the keys it recognises onto the Builder and ignores the rest, so sites
// can keep unrelated settings in the same table.
//
// Both snake_case and the legacy camelCase spellings are accepted.
//
// Notes
// -----
// • The style is validated before anything is swapped in; a bad style
//   leaves the Builder exactly as it was.
// • Oxford commas, two spaces after periods.
package urlgen

import (
	"go.uber.org/zap"

	"github.com/yanizio/urlkit/internal/uri"
)

// Recognised setting keys.
const (
	KeySiteURL       = "site_url"
	KeyBaseURL       = "base_url"
	KeyStaticSiteURL = "static_site_url"
	KeyStaticBaseURL = "static_base_url"
	KeyScriptName    = "script_name"
	KeyStyle         = "url_style"
)

var keyAliases = map[string]string{
	KeySiteURL:       KeySiteURL,
	KeyBaseURL:       KeyBaseURL,
	KeyStaticSiteURL: KeyStaticSiteURL,
	KeyStaticBaseURL: KeyStaticBaseURL,
	KeyScriptName:    KeyScriptName,
	KeyStyle:         KeyStyle,
	"siteUrl":        KeySiteURL,
	"baseUrl":        KeyBaseURL,
	"staticSiteUrl":  KeyStaticSiteURL,
	"staticBaseUrl":  KeyStaticBaseURL,
	"scriptName":     KeyScriptName,
	"urlType":        KeyStyle,
	"urlStyle":       KeyStyle,
}

// CanonicalKey maps a recognised spelling to its snake_case key.  Unknown
// keys come back unchanged with ok false.
func CanonicalKey(k string) (key string, ok bool) {
	if key, ok = keyAliases[k]; ok {
		return key, true
	}
	return k, false
}

// resolveKeys picks one value per canonical key.  The snake_case spelling
// wins over an alias; between two aliases the lexically greater one wins.
// Map order never decides.
func resolveKeys(settings map[string]string) map[string]string {
	src := make(map[string]string, len(settings))
	for k := range settings {
		key, ok := keyAliases[k]
		if !ok {
			continue
		}
		prev, seen := src[key]
		switch {
		case !seen:
			src[key] = k
		case prev == key:
		case k == key || k > prev:
			src[key] = k
		}
	}
	out := make(map[string]string, len(src))
	for key, k := range src {
		out[key] = settings[k]
	}
	return out
}

// Apply merges recognised keys from settings into b.  Unknown keys are
// ignored.  When a key appears under several spellings the snake_case one
// wins.  Returns an error wrapping ErrInvalidArgument when the style value
// is not "clean" or "append"; b is untouched in that case.
func (b *Builder) Apply(settings map[string]string) error {
	if len(settings) == 0 {
		return nil
	}
	resolved := resolveKeys(settings)

	b.mu.Lock()
	defer b.mu.Unlock()

	next := *b.snap.Load()
	for key, v := range resolved {
		switch key {
		case KeySiteURL:
			next.site = uri.New(v)
		case KeyBaseURL:
			next.base = uri.New(v)
		case KeyStaticSiteURL:
			next.staticSite = uri.New(v)
		case KeyStaticBaseURL:
			next.staticBase = uri.New(v)
		case KeyScriptName:
			next.script = uri.New(v)
		case KeyStyle:
			st, err := ParseStyle(v)
			if err != nil {
				zap.L().Warn("url settings rejected",
					zap.String("key", key),
					zap.String("value", v))
				return err
			}
			next.style = st
		}
	}

	b.snap.Store(&next)
	zap.L().Debug("url settings applied",
		zap.Int("recognised", len(resolved)),
		zap.Int("total", len(settings)))
	return nil
}
