// Package database centralises sqlx connection helpers for the control-plane
// database that stores `site` and `site_config`.  The driver is
// go-sql-driver/mysql, which also works with MariaDB.
//
// Public entry points:
//
//	FormatDSN(tpl, pw)            – fill the %s password verb of a DSN template.
//	Open(ctx, dsn)                – quick helper with conservative pool sizes.
//	OpenWithOptions(ctx, dsn, o)  – fine-grained control.
//
// Both Open helpers Ping the database before returning so callers can fail
// fast during bootstrap.  Callers should Close() the returned *sqlx.DB.
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// ErrDSNTemplate is returned when a DSN template does not hold exactly one
// %s verb for the password.
var ErrDSNTemplate = errors.New("dsn template must contain exactly one %s")

// Options tunes a pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultOptions suits the read-mostly settings lookups: 10 open, 3 idle,
// and a 30-minute connection lifetime.
var DefaultOptions = Options{MaxOpenConns: 10, MaxIdleConns: 3, ConnMaxLifetime: 30 * time.Minute}

// FormatDSN substitutes password into tpl, e.g.
// "app:%s@tcp(db:3306)/global?parseTime=true".
func FormatDSN(tpl, password string) (string, error) {
	if strings.Count(tpl, "%s") != 1 {
		return "", ErrDSNTemplate
	}
	return strings.Replace(tpl, "%s", password, 1), nil
}

// Open returns a *sqlx.DB with DefaultOptions.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	return OpenWithOptions(ctx, dsn, DefaultOptions)
}

// OpenWithOptions opens and pings a MySQL pool.
func OpenWithOptions(ctx context.Context, dsn string, o Options) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	db.SetMaxOpenConns(o.MaxOpenConns)
	db.SetMaxIdleConns(o.MaxIdleConns)
	db.SetConnMaxLifetime(o.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}
	return db, nil
}
