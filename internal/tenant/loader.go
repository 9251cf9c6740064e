package tenant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/urlkit/internal/site"
	"github.com/yanizio/urlkit/internal/urlgen"
)

// Loader turns host → *Tenant.  It returns ErrNotFound for unknown hosts.
type Loader func(ctx context.Context, host string) (*Tenant, error)

// DBLoader returns a Loader backed by the control-plane database.  Steps:
//
//  1. Fetch site row.
//  2. Fetch key-value config rows.
//  3. Overlay them on defaults and validate against a scratch Builder.
func DBLoader(db *sqlx.DB, defaults map[string]string) Loader {
	return func(ctx context.Context, host string) (*Tenant, error) {
		rec, err := site.ByHost(ctx, db, host)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("tenant %s: site row: %w", host, err)
		}

		cfg, err := site.ConfigBySite(ctx, db, rec.ID)
		if err != nil {
			return nil, fmt.Errorf("tenant %s: site config: %w", host, err)
		}

		settings, err := mergeSettings(defaults, cfg)
		if err != nil {
			return nil, fmt.Errorf("tenant %s: %w", host, err)
		}
		return &Tenant{Meta: *rec, Settings: settings}, nil
	}
}

// mergeSettings overlays the site rows on defaults and rejects values the builder
// would refuse.  Link keys are stored under their snake_case spelling, so a
// site row written as "baseUrl" replaces a "base_url" default.
func mergeSettings(defaults, overlay map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(defaults)+len(overlay))
	for k, v := range defaults {
		key, _ := urlgen.CanonicalKey(k)
		out[key] = v
	}
	for k, v := range overlay {
		key, _ := urlgen.CanonicalKey(k)
		out[key] = v
	}
	if err := urlgen.New().Apply(out); err != nil {
		return nil, err
	}
	return out, nil
}
