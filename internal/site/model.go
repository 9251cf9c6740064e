// internal/site/model.go
//
// `site` table row model.
//
// Schema reference
//
//	CREATE TABLE site (
//	    id            INT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
//	    host          VARCHAR(256)  NOT NULL UNIQUE,
//	    title         VARCHAR(256)  NOT NULL DEFAULT '',
//	    suspended_at  TIMESTAMP NULL,
//	    deleted_at    TIMESTAMP NULL,
//	    created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
//	    updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
//	);
//
//	CREATE TABLE site_config (
//	    site_id  INT UNSIGNED NOT NULL,
//	    `key`    VARCHAR(64)  NOT NULL,
//	    value    VARCHAR(512) NOT NULL,
//	    PRIMARY KEY (site_id, `key`)
//	);
//
// URL settings live in site_config under the keys urlgen.Apply recognises
// (site_url, base_url, static_site_url, static_base_url, script_name,
// url_style).
package site

import "time"

// Record mirrors one row in the `site` table.  Either nullable timestamp
// being non-NULL keeps the tenant loader from serving the host.
type Record struct {
	ID          uint64     `db:"id"`
	Host        string     `db:"host"`
	Title       string     `db:"title"`
	SuspendedAt *time.Time `db:"suspended_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}
