// internal/uri/uri.go
//
// Path value used by the URL builder.
//
// Context
// -------
// A Path wraps one raw URI-like string ("http://site.se/base",
// "controller/action", "/about", "") and offers the four operations the
// builder composes: prefix test, prepend, trailing-basename removal, and
// emptiness.  Values are immutable; every operation returns a new Path, so
// a Path can be shared freely between goroutines.
//
// Joining rules (Prepend)
// -----------------------
//  1. Empty prefix or empty receiver → the other side, byte for byte.
//  2. Receiver made only of slashes → prefix without trailing slashes.
//  3. Otherwise → prefix (trailing "/" trimmed) + "/" + receiver (leading
//     "/" trimmed).
//
// Notes
// -----
// • No decoding.  StartsWith is a byte-exact, case-sensitive compare.
// • Oxford commas, two spaces after periods.
package uri

import "strings"

// Path is an immutable URI-like value.  The zero value is the empty path.
type Path struct {
	raw string
}

// New wraps raw.  Empty input is valid and means "no path".
func New(raw string) Path {
	return Path{raw: raw}
}

// String returns the canonical output form.
func (p Path) String() string { return p.raw }

// IsEmpty reports whether the raw string has zero length.
func (p Path) IsEmpty() bool { return len(p.raw) == 0 }

// Equal compares two paths by string form.
func (p Path) Equal(o Path) bool { return p.raw == o.raw }

// StartsWith reports whether the raw string begins with any candidate.
func (p Path) StartsWith(candidates ...string) bool {
	for _, c := range candidates {
		if strings.HasPrefix(p.raw, c) {
			return true
		}
	}
	return false
}

// Segments returns the non-empty slash-separated parts.
func (p Path) Segments() []string {
	parts := strings.Split(p.raw, "/")
	out := parts[:0]
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Prepend returns prefix joined in front of p with exactly one separating
// slash.
func (p Path) Prepend(prefix Path) Path {
	switch {
	case prefix.IsEmpty():
		return p
	case p.IsEmpty():
		return prefix
	}

	head := strings.TrimRight(prefix.raw, "/")
	tail := strings.TrimLeft(p.raw, "/")

	if tail == "" {
		// receiver was only slashes
		if head == "" {
			return p
		}
		return Path{raw: head}
	}
	return Path{raw: head + "/" + tail}
}

// RemoveBasename drops the final segment when it equals name exactly.  The
// preceding slash goes with it.  Anything else is a no-op.
func (p Path) RemoveBasename(name string) Path {
	if name == "" {
		return p
	}
	i := strings.LastIndexByte(p.raw, '/')
	if p.raw[i+1:] != name {
		return p
	}
	if i < 0 {
		return Path{}
	}
	return Path{raw: p.raw[:i]}
}
