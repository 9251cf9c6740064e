// internal/urlgen/request.go
//
// Request-derived defaults.
//
// When a host has no stored settings the front controller still needs
// working links.  NewFromRequest derives them from what the request shows:
//
//   - SiteURL        scheme://host  (https when TLS or X-Forwarded-Proto says so)
//   - BaseURL        SiteURL + directory of the front-controller path
//   - StaticSiteURL  same as SiteURL
//   - StaticBaseURL  same as BaseURL
//   - ScriptName     base name of the front-controller path
//
// Style stays at DefaultStyle; callers flip it with SetStyle or Apply.
package urlgen

import (
	"net/http"
	"path"
	"strings"
)

// NewFromRequest returns a Builder seeded from r.  frontController is the
// script path as mounted, e.g. "/index.php" or "/app/index.php"; empty means
// the controller sits at the site root with no script name.
func NewFromRequest(r *http.Request, frontController string) *Builder {
	site := requestScheme(r) + "://" + r.Host

	dir, script := "", ""
	if fc := strings.TrimSpace(frontController); fc != "" {
		dir = strings.Trim(path.Dir("/"+strings.TrimLeft(fc, "/")), "/")
		script = path.Base(fc)
	}

	base := site
	if dir != "" {
		base = site + "/" + dir
	}

	b := New()
	// Replace cannot fail here: Style is left empty.
	_ = b.Replace(Config{
		SiteURL:       site,
		BaseURL:       base,
		StaticSiteURL: site,
		StaticBaseURL: base,
		ScriptName:    script,
	})
	return b
}

func requestScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); strings.EqualFold(strings.TrimSpace(p), "https") {
		return "https"
	}
	return "http"
}
