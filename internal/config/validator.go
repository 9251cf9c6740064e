// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `loader.go` calls `validateStruct` right after it unmarshals the merged
// Koanf tree.  Any failed rule aborts startup, so the binary never runs
// with an unknown URL style or a DSN that has no password.
//
// Rules in use: `required`, `required_with`, `hostname_port`, `oneof`,
// and `gte`.

package config

import "github.com/go-playground/validator/v10"

var v = validator.New()

// validateStruct returns the validation errors, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
