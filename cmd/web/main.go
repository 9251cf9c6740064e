// cmd/web/main.go
//
// Demo front controller for the link builder.
//
// Request life-cycle
// ------------------
//
//  1. Load env vars (jail-wide file → .env fallback) and conf/global.yaml.
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Optionally open the control-plane DB (password may be a vault: ref)
//     and build the tenant cache on top of it, preloading active sites.
//
//  4. Mount chi routes:
//
//     • /metrics  – Prometheus
//     • /url      – plain-text Create(?path=)
//     • /slug     – plain-text Slugify(?text=)
//     • /         – small page rendered with the template link helpers
//
//  5. Serve until SIGINT / SIGTERM, then drain.
//
// Large comment blocks are framed by blank "//" lines; inline comments use
// a single "//".
package main

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/urlkit/internal/cache"
	"github.com/yanizio/urlkit/internal/config"
	"github.com/yanizio/urlkit/internal/database"
	"github.com/yanizio/urlkit/internal/linkctx"
	"github.com/yanizio/urlkit/internal/logger"
	"github.com/yanizio/urlkit/internal/middleware"
	"github.com/yanizio/urlkit/internal/server"
	"github.com/yanizio/urlkit/internal/tenant"
	"github.com/yanizio/urlkit/internal/urlgen"
	"github.com/yanizio/urlkit/internal/vault"
	"github.com/yanizio/urlkit/internal/viewhelpers"
)

const serverEnvPath = "/usr/local/etc/urlkit/global.env"

// loadEnv prefers the jail-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logOut, err := logger.New(cfg.Paths.Root, runningInTTY(), os.Getenv("URLKIT_LOG_LEVEL"))
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer logOut.Sync()

	//
	// ── 1.  Global link defaults ────────────────────────────────────────
	//
	defaults := cfg.URL.Settings()
	if err := urlgen.New().Apply(defaults); err != nil {
		logOut.Fatalw("invalid url defaults", "err", err)
	}

	//
	// ── 2.  Control-plane DB and tenant cache (optional) ────────────────
	//
	var source linkctx.Source
	if cfg.Database.GlobalDSN != "" {
		db, err := openGlobalDB(ctx, cfg.Database)
		if err != nil {
			logOut.Fatalw("connect global DB", "err", err)
		}
		defer db.Close()
		logOut.Infow("global DB online")

		tc := tenant.New(tenant.DBLoader(db, defaults), tenant.Options{
			IdleTTL:       cfg.Tenant.IdleTTL,
			MaxEntries:    cfg.Tenant.MaxEntries,
			EvictInterval: cfg.Tenant.EvictInterval,
		})
		defer tc.Close()
		if n, err := tenant.Preload(ctx, db, tc); err != nil {
			logOut.Warnw("tenant preload", "err", err)
		} else {
			logOut.Infow("tenants preloaded", "count", n)
		}
		source = tc
	} else {
		logOut.Infow("no global DB configured, using request-derived URLs")
	}

	//
	// ── 3.  Routes ──────────────────────────────────────────────────────
	//
	slugs := cache.New[string, string](cfg.Slug.CacheSize)
	page := template.Must(template.New("home").
		Funcs(viewhelpers.FuncMap(slugs)).
		Parse(homeTemplate))

	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.Recoverer)
	r.Use(middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(linkctx.Middleware(linkctx.Options{
			Source:          source,
			Defaults:        defaults,
			FrontController: cfg.HTTP.FrontController,
		}))
		r.Get("/url", urlHandler)
		r.Get("/slug", slugHandler(slugs))
		r.Get("/", homeHandler(page))
	})

	//
	// ── 4.  Serve ───────────────────────────────────────────────────────
	//
	if err := server.Run(ctx, server.New(cfg.HTTP.ListenAddr, r)); err != nil {
		logOut.Errorw("http server", "err", err)
	}
}

// openGlobalDB resolves a vault: password reference, fills the DSN template,
// and opens the pool.
func openGlobalDB(ctx context.Context, c config.Database) (*sqlx.DB, error) {
	pw := c.GlobalPassword
	if vault.IsRef(pw) {
		cli, err := vault.New()
		if err != nil {
			return nil, err
		}
		if pw, err = cli.Resolve(ctx, pw, 10*time.Minute); err != nil {
			return nil, err
		}
	}
	dsn, err := database.FormatDSN(c.GlobalDSN, pw)
	if err != nil {
		return nil, err
	}
	return database.Open(ctx, dsn)
}

func urlHandler(w http.ResponseWriter, r *http.Request) {
	b := linkctx.FromContext(r.Context())
	q := r.URL.Query()

	var out string
	switch q.Get("op") {
	case "relative":
		out = b.CreateRelative(q.Get("path"))
	case "asset":
		out = b.Asset(q.Get("path"))
	default:
		out = b.CreateWithBase(q.Get("path"), q.Get("base"))
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

func slugHandler(slugs *cache.LRU[string, string]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(viewhelpers.Slug(slugs, r.URL.Query().Get("text"))))
	}
}

func homeHandler(page *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"Links": linkctx.FromContext(r.Context()),
			"Tags":  []string{"Go", "Åre 2026", "Crème Brûlée"},
		}
		if err := page.Execute(w, data); err != nil {
			zap.S().Errorw("render error", "err", err)
			http.Error(w, "template error", http.StatusInternalServerError)
		}
	}
}

const homeTemplate = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<link rel="stylesheet" href="{{ asset .Links "css/site.css" }}">
</head>
<body>
<nav>
  <a href="{{ url .Links "index" }}">Home</a>
  <a href="{{ url .Links "blog/index" }}">Blog</a>
  <a href="{{ url .Links "/about" }}">About</a>
  <a href="{{ urlRel .Links "docs/" }}">Docs</a>
</nav>
<ul>
{{- range .Tags }}
  <li><a href="{{ url $.Links (printf "tag/%s" (slug .)) }}">{{ . }}</a></li>
{{- end }}
</ul>
</body>
</html>
`
