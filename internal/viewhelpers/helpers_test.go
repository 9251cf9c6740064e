package viewhelpers

import (
	"html/template"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yanizio/urlkit/internal/cache"
	"github.com/yanizio/urlkit/internal/metrics"
	"github.com/yanizio/urlkit/internal/urlgen"
)

const page = `<a href="{{ url .Links "blog/index" }}">b</a>` +
	`<a href="{{ urlRel .Links "docs" }}">d</a>` +
	`<link href="{{ asset .Links "/css/site.css" }}">` +
	`<a href="{{ url .Links (printf "tag/%s" (slug .Tag)) }}">t</a>`

func TestTemplateHelpers(t *testing.T) {
	b, err := urlgen.FromConfig(urlgen.Config{
		SiteURL:       "http://site.se",
		BaseURL:       "http://site.se/base",
		StaticSiteURL: "http://cdn.site.se",
		ScriptName:    "index.php",
		Style:         urlgen.StyleClean,
	})
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}

	tpl := template.Must(template.New("page").Funcs(FuncMap(cache.New[string, string](8))).Parse(page))

	var sb strings.Builder
	if err := tpl.Execute(&sb, map[string]any{"Links": b, "Tag": "Ärlig Åsikt"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		`href="http://site.se/base/blog"`,
		`href="http://site.se/base/docs"`,
		`href="http://cdn.site.se/css/site.css"`,
		`href="http://site.se/base/tag/arlig-asikt"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s\n%s", want, out)
		}
	}
}

func TestNilBuilderPassesThrough(t *testing.T) {
	fn := FuncMap(nil)["url"].(func(*urlgen.Builder, string) string)
	if got := fn(nil, "blog"); got != "blog" {
		t.Fatalf("url(nil, blog) = %q", got)
	}
}

func TestSlugMemo(t *testing.T) {
	memo := cache.New[string, string](4)
	hits := testutil.ToFloat64(metrics.SlugCacheTotal.WithLabelValues("hit"))

	if got := Slug(memo, "Min Blogg"); got != "min-blogg" {
		t.Fatalf("Slug = %q", got)
	}
	if got := Slug(memo, "Min Blogg"); got != "min-blogg" {
		t.Fatalf("Slug (memo) = %q", got)
	}
	if d := testutil.ToFloat64(metrics.SlugCacheTotal.WithLabelValues("hit")) - hits; d != 1 {
		t.Fatalf("hit counter moved by %v, want 1", d)
	}
	if got := Slug(nil, "x y"); got != "x-y" {
		t.Fatalf("Slug(nil) = %q", got)
	}
}

func TestBuildCountsPerOpKind(t *testing.T) {
	b := urlgen.New()
	fm := FuncMap(nil)
	asset := fm["asset"].(func(*urlgen.Builder, string) string)
	url := fm["url"].(func(*urlgen.Builder, string) string)

	assetRel := testutil.ToFloat64(metrics.URLBuildTotal.WithLabelValues("asset", "relative"))
	assetFrag := testutil.ToFloat64(metrics.URLBuildTotal.WithLabelValues("asset", "fragment"))
	createFrag := testutil.ToFloat64(metrics.URLBuildTotal.WithLabelValues("create", "fragment"))

	asset(b, "#x")
	url(b, "#x")

	if d := testutil.ToFloat64(metrics.URLBuildTotal.WithLabelValues("asset", "relative")) - assetRel; d != 1 {
		t.Errorf("asset/relative moved by %v, want 1", d)
	}
	if d := testutil.ToFloat64(metrics.URLBuildTotal.WithLabelValues("asset", "fragment")) - assetFrag; d != 0 {
		t.Errorf("asset/fragment moved by %v, want 0", d)
	}
	if d := testutil.ToFloat64(metrics.URLBuildTotal.WithLabelValues("create", "fragment")) - createFrag; d != 1 {
		t.Errorf("create/fragment moved by %v, want 1", d)
	}
}
