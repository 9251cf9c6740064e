// internal/linkctx/linkctx_test.go
//
// Unit-tests for the link-builder middleware.
//
// fakeSource satisfies Source with a fixed host table and an injectable
// error, so the tests never touch the tenant loader or a database.
//
// Run: go test ./internal/linkctx -v

package linkctx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yanizio/urlkit/internal/tenant"
	"github.com/yanizio/urlkit/internal/urlgen"
)

type fakeSource struct {
	tenants map[string]*tenant.Tenant
	err     error
}

func (f *fakeSource) Get(_ context.Context, host string) (*tenant.Tenant, error) {
	if f.err != nil {
		return nil, f.err
	}
	if t, ok := f.tenants[host]; ok {
		return t, nil
	}
	return nil, tenant.ErrNotFound
}

func serve(t *testing.T, opts Options, target string) *urlgen.Builder {
	t.Helper()
	var got *urlgen.Builder
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	Middleware(opts)(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got == nil {
		t.Fatalf("no builder in request context")
	}
	return got
}

func TestTenantHit(t *testing.T) {
	src := &fakeSource{tenants: map[string]*tenant.Tenant{
		"blog.example.com": {Settings: map[string]string{
			urlgen.KeyBaseURL: "https://blog.example.com/b",
			urlgen.KeyStyle:   "clean",
		}},
	}}

	b := serve(t, Options{Source: src, FrontController: "/index.php"}, "http://blog.example.com:8080/x")
	if got := b.Create("post/index"); got != "https://blog.example.com/b/post" {
		t.Fatalf("Create = %q", got)
	}
}

func TestTenantMissUsesDefaults(t *testing.T) {
	src := &fakeSource{}
	opts := Options{
		Source:          src,
		Defaults:        map[string]string{urlgen.KeyStyle: "clean"},
		FrontController: "/app/index.php",
	}

	b := serve(t, opts, "http://other.example.com/")
	if got := b.Create("about"); got != "http://other.example.com/app/about" {
		t.Fatalf("Create = %q", got)
	}
}

func TestSourceErrorFallsBack(t *testing.T) {
	src := &fakeSource{err: errors.New("db down")}

	b := serve(t, Options{Source: src, FrontController: "/index.php"}, "http://x.example.com/")
	if got := b.Create("a"); got != "http://x.example.com/index.php/a" {
		t.Fatalf("Create = %q", got)
	}
}

func TestNoSource(t *testing.T) {
	b := serve(t, Options{}, "http://plain.example.com/")
	if got := b.Asset("css/site.css"); got != "http://plain.example.com/css/site.css" {
		t.Fatalf("Asset = %q", got)
	}
}

func TestFromContextWithoutMiddleware(t *testing.T) {
	if FromContext(context.Background()) != nil {
		t.Fatalf("expected nil builder")
	}
}

func TestStripPort(t *testing.T) {
	cases := map[string]string{
		"example.com":      "example.com",
		"example.com:8080": "example.com",
		"[::1]:8080":       "[::1]",
		"[::1]":            "[::1]",
	}
	for in, want := range cases {
		if got := stripPort(in); got != want {
			t.Errorf("stripPort(%q) = %q, want %q", in, got, want)
		}
	}
}
