package tenant

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yanizio/urlkit/internal/site"
)

// Preload loads every active site into c so the first request per host
// skips the database and ActiveTenants is populated at boot.  A host that
// fails to load is logged and skipped.  Returns the number loaded.
func Preload(ctx context.Context, db *sqlx.DB, c *Cache) (int, error) {
	recs, err := site.AllActive(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("tenant preload: %w", err)
	}

	loaded := 0
	for _, rec := range recs {
		if ctx.Err() != nil {
			return loaded, ctx.Err()
		}
		if _, err := c.Get(ctx, rec.Host); err != nil {
			zap.L().Warn("tenant preload skipped",
				zap.String("host", rec.Host),
				zap.Error(err))
			continue
		}
		loaded++
	}
	return loaded, nil
}
