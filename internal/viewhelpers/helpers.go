// internal/viewhelpers/helpers.go
//
// Template helpers that build links from the per-request *urlgen.Builder.
// Registered on the page templates at startup, so every template can call:
//
//	<a href="{{ url .Links "blog/index" }}">Blog</a>
//	<a href="{{ urlRel .Links "docs/" }}">Docs</a>
//	<link rel="stylesheet" href="{{ asset .Links "css/site.css" }}">
//	<a href="{{ url .Links (printf "tag/%s" (slug .Tag)) }}">{{ .Tag }}</a>
//
// A nil Builder passes the path through unchanged, so partials rendered
// outside the middleware still produce something usable.
package viewhelpers

import (
	"html/template"

	"github.com/yanizio/urlkit/internal/cache"
	"github.com/yanizio/urlkit/internal/metrics"
	"github.com/yanizio/urlkit/internal/urlgen"
)

// FuncMap returns the link helpers.  slugs memoises slug; nil disables the
// memo.
func FuncMap(slugs *cache.LRU[string, string]) template.FuncMap {
	return template.FuncMap{
		"url": func(b *urlgen.Builder, path string) string {
			return build("create", urlgen.Classify, b, path, (*urlgen.Builder).Create)
		},
		"urlRel": func(b *urlgen.Builder, path string) string {
			return build("relative", urlgen.ClassifyDirect, b, path, (*urlgen.Builder).CreateRelative)
		},
		"asset": func(b *urlgen.Builder, path string) string {
			return build("asset", urlgen.ClassifyDirect, b, path, (*urlgen.Builder).Asset)
		},
		"slug": func(text string) string {
			return Slug(slugs, text)
		},
	}
}

// build counts the call under the rule the op itself applies, then runs it.
func build(op string, classify func(string) urlgen.Kind, b *urlgen.Builder, path string, fn func(*urlgen.Builder, string) string) string {
	metrics.URLBuildTotal.WithLabelValues(op, classify(path).String()).Inc()
	if b == nil {
		return path
	}
	return fn(b, path)
}

// Slug returns urlgen.Slugify(text), consulting slugs first when non-nil.
func Slug(slugs *cache.LRU[string, string], text string) string {
	if slugs == nil {
		return urlgen.Slugify(text)
	}
	if s, ok := slugs.Get(text); ok {
		metrics.SlugCacheTotal.WithLabelValues("hit").Inc()
		return s
	}
	metrics.SlugCacheTotal.WithLabelValues("miss").Inc()
	s := urlgen.Slugify(text)
	slugs.Add(text, s)
	return s
}
