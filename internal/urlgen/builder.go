// internal/urlgen/builder.go
//
// Outbound URL builder for the front controller.
//
/*
Context
--------
Templates and handlers never hard-code links.  They ask a Builder, which
holds six settings (site URL, base URL, static site URL, static base URL,
script name, and URL style) and turns a short route such as
"blog/2025/index" into "https://example.com/base/index.php/blog/2025".

Classification (Create, first match wins)
-----------------------------------------
  1. http://, https://, //      → returned as is.
  2. #anchor, ?query            → returned as is.
  3. mailto: (raw or entity-decoded) → returned as is.
  4. /site/absolute             → SiteURL + uri.
  5. anything else              → BaseURL + extraBase + ScriptName + uri,
                                  with a trailing "index" segment removed
                                  and ScriptName only in append style.

Concurrency
-----------
The settings live in an immutable snapshot behind an atomic.Pointer.  A
construction call loads the pointer once, so it never sees a half-applied
update.  Setters copy, modify, and swap the snapshot under a mutex.

Notes
-----
  • Construction never fails.  Only SetStyle and Apply return errors.
  • Oxford commas, two spaces after periods.
*/
package urlgen

import (
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/net/html"

	"github.com/yanizio/urlkit/internal/uri"
)

/*──────────────────────────── configuration ────────────────────────────────*/

// Config is the plain-value form of a Builder's settings.
type Config struct {
	SiteURL       string // prefix for "/…" routes, e.g. http://site.se
	BaseURL       string // prefix for relative routes, e.g. http://site.se/base
	StaticSiteURL string // SiteURL for assets
	StaticBaseURL string // BaseURL for assets, falls back to BaseURL when empty
	ScriptName    string // front controller, e.g. index.php
	Style         Style  // StyleClean or StyleAppend
}

type snapshot struct {
	site       uri.Path
	base       uri.Path
	staticSite uri.Path
	staticBase uri.Path
	script     uri.Path
	style      Style
}

func (s *snapshot) config() Config {
	return Config{
		SiteURL:       s.site.String(),
		BaseURL:       s.base.String(),
		StaticSiteURL: s.staticSite.String(),
		StaticBaseURL: s.staticBase.String(),
		ScriptName:    s.script.String(),
		Style:         s.style,
	}
}

/*──────────────────────────── builder ──────────────────────────────────────*/

// Builder creates URLs from a configured site root.  Safe for concurrent use.
// Zero value is unusable; construct with New or FromConfig.
type Builder struct {
	mu   sync.Mutex // serialises writers
	snap atomic.Pointer[snapshot]
}

// New returns a Builder with every URL empty and the default style.
func New() *Builder {
	b := &Builder{}
	b.snap.Store(&snapshot{style: DefaultStyle})
	return b
}

// FromConfig returns a Builder seeded from cfg.  An empty Style means
// DefaultStyle.
func FromConfig(cfg Config) (*Builder, error) {
	b := New()
	if err := b.Replace(cfg); err != nil {
		return nil, err
	}
	return b, nil
}

// Config returns a copy of the current settings.
func (b *Builder) Config() Config { return b.snap.Load().config() }

// Replace swaps in cfg wholesale.  An invalid style leaves b unchanged.
func (b *Builder) Replace(cfg Config) error {
	style := cfg.Style
	if style == "" {
		style = DefaultStyle
	}
	if _, err := ParseStyle(string(style)); err != nil {
		return err
	}
	b.mu.Lock()
	b.snap.Store(&snapshot{
		site:       uri.New(cfg.SiteURL),
		base:       uri.New(cfg.BaseURL),
		staticSite: uri.New(cfg.StaticSiteURL),
		staticBase: uri.New(cfg.StaticBaseURL),
		script:     uri.New(cfg.ScriptName),
		style:      style,
	})
	b.mu.Unlock()
	return nil
}

// update applies fn to a copy of the current snapshot and swaps it in.
func (b *Builder) update(fn func(s *snapshot)) {
	b.mu.Lock()
	next := *b.snap.Load()
	fn(&next)
	b.snap.Store(&next)
	b.mu.Unlock()
}

func (b *Builder) SetSiteURL(u string) {
	b.update(func(s *snapshot) { s.site = uri.New(u) })
}

func (b *Builder) SetBaseURL(u string) {
	b.update(func(s *snapshot) { s.base = uri.New(u) })
}

func (b *Builder) SetStaticSiteURL(u string) {
	b.update(func(s *snapshot) { s.staticSite = uri.New(u) })
}

func (b *Builder) SetStaticBaseURL(u string) {
	b.update(func(s *snapshot) { s.staticBase = uri.New(u) })
}

// SetScriptName sets the front-controller name inserted in append style.
func (b *Builder) SetScriptName(name string) {
	b.update(func(s *snapshot) { s.script = uri.New(name) })
}

// SetStyle switches between "clean" and "append".  Any other value returns
// an error wrapping ErrInvalidArgument and keeps the previous style.
func (b *Builder) SetStyle(style string) error {
	st, err := ParseStyle(style)
	if err != nil {
		return err
	}
	b.update(func(s *snapshot) { s.style = st })
	return nil
}

/*──────────────────────────── classification ───────────────────────────────*/

var qualifiedPrefixes = []string{"http://", "https://", "//"}

const mailtoPrefix = "mailto:"

// Classify reports which rule Create applies to raw.
func Classify(raw string) Kind {
	p := uri.New(raw)
	switch {
	case p.StartsWith(qualifiedPrefixes...):
		return KindQualified
	case p.StartsWith("#", "?"):
		return KindFragment
	case isMailto(p):
		return KindMailto
	case p.StartsWith("/"):
		return KindAbsolute
	}
	return KindRelative
}

// ClassifyDirect reports which rule CreateRelative and Asset apply to raw.
// Only KindQualified, KindAbsolute, and KindRelative are possible; "#x" and
// "mailto:" inputs are plain relative paths to them.
func ClassifyDirect(raw string) Kind {
	p := uri.New(raw)
	switch {
	case p.StartsWith(qualifiedPrefixes...):
		return KindQualified
	case p.StartsWith("/"):
		return KindAbsolute
	}
	return KindRelative
}

// isMailto also accepts an entity-encoded colon ("mailto&#58;…"), which
// Markdown renderers emit when they obfuscate addresses.
func isMailto(p uri.Path) bool {
	if p.StartsWith(mailtoPrefix) {
		return true
	}
	return strings.HasPrefix(html.UnescapeString(p.String()), mailtoPrefix)
}

/*──────────────────────────── construction ─────────────────────────────────*/

// Create builds a routed URL.  An empty uri yields the front controller
// itself.
func (b *Builder) Create(raw string) string {
	return b.CreateWithBase(raw, "")
}

// CreateWithBase is Create with extraBase inserted between BaseURL and the
// script name.
func (b *Builder) CreateWithBase(raw, extraBase string) string {
	s := b.snap.Load()
	p := uri.New(raw)

	switch Classify(raw) {
	case KindQualified, KindFragment, KindMailto:
		return raw
	case KindAbsolute:
		return p.Prepend(s.site).String()
	}

	p = p.RemoveBasename("index")
	if s.style != StyleClean {
		p = p.Prepend(s.script)
	}
	return p.
		Prepend(uri.New(extraBase)).
		Prepend(s.base).
		String()
}

// CreateRelative builds a URL relative to the directory of the front
// controller.  No script name and no index stripping.
func (b *Builder) CreateRelative(raw string) string {
	s := b.snap.Load()
	p := uri.New(raw)

	switch ClassifyDirect(raw) {
	case KindQualified:
		return raw
	case KindAbsolute:
		return p.Prepend(s.site).String()
	}
	return p.Prepend(s.base).String()
}

// Asset builds a URL for a static file.
func (b *Builder) Asset(raw string) string {
	s := b.snap.Load()
	p := uri.New(raw)

	switch ClassifyDirect(raw) {
	case KindQualified:
		return raw
	case KindAbsolute:
		return p.Prepend(s.staticSite).String()
	}

	base := s.staticBase
	if base.IsEmpty() {
		base = s.base
	}
	return p.Prepend(base).String()
}

// Slugify is the method form of the package-level Slugify.
func (b *Builder) Slugify(text string) string { return Slugify(text) }
