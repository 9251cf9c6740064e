package urlgen

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a configuration value is outside its
// accepted set.  Match with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// Style selects how routed URLs are generated.
//
//	StyleClean   controller/action/param1
//	StyleAppend  index.php/controller/action/param1
type Style string

const (
	StyleClean  Style = "clean"
	StyleAppend Style = "append"
)

// DefaultStyle is used by New and whenever a Config leaves Style empty.
const DefaultStyle = StyleAppend

// ParseStyle maps s onto a Style.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleClean, StyleAppend:
		return Style(s), nil
	}
	return "", fmt.Errorf("url style %q: %w", s, ErrInvalidArgument)
}

func (s Style) String() string { return string(s) }

// Kind is the classification Create applies to its input.
type Kind int

const (
	KindRelative  Kind = iota // controller/action
	KindQualified             // http://, https://, //
	KindFragment              // #anchor, ?query
	KindMailto                // mailto:
	KindAbsolute              // /from/site/root
)

var kindNames = [...]string{
	KindRelative:  "relative",
	KindQualified: "qualified",
	KindFragment:  "fragment",
	KindMailto:    "mailto",
	KindAbsolute:  "absolute",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}
