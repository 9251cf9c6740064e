package site

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const recordColumns = `id, host, title, suspended_at, deleted_at, created_at, updated_at`

// AllActive returns every site that is neither suspended nor deleted.  Used
// by tenant.Preload at boot, not by the per-request path.
func AllActive(ctx context.Context, db *sqlx.DB) ([]Record, error) {
	const q = `SELECT ` + recordColumns + ` FROM site WHERE suspended_at IS NULL AND deleted_at IS NULL`
	var rows []Record
	if err := db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// ByHost fetches a single site row that is not suspended or deleted.  The
// caller supplies a context so the lookup respects request deadlines.
func ByHost(ctx context.Context, db *sqlx.DB, host string) (*Record, error) {
	const q = `SELECT ` + recordColumns + ` FROM site WHERE host = ? AND suspended_at IS NULL AND deleted_at IS NULL LIMIT 1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, host); err != nil {
		zap.L().Debug("site lookup failed",
			zap.String("host", host),
			zap.Error(err))
		return nil, err
	}
	return &rec, nil
}
