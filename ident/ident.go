// Package ident validates and normalizes the identifiers Elixir indexes
// and accepts in queries.
package ident

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// identRe matches what non_gen_update.py's isIdent treats as a worthwhile
// identifier: C/Kconfig/DTS-ish tokens, letters/digits/underscore plus the
// handful of extra characters that show up in macro-ish identifiers.
var identRe = regexp.MustCompile(`^[A-Za-z0-9_$.%?-]+$`)

// Valid reports whether s is worth indexing as an identifier: it must match
// identRe, be at least two characters, and not be purely numeric (numbers
// aren't useful cross-reference targets and would otherwise explode the
// index with every integer literal). Mirrors non_gen_update.py's isIdent.
func Valid(s string) bool {
	if len(s) < 2 || !identRe.MatchString(s) {
		return false
	}
	return !isAllDigits(s)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ConfigPrefix is prepended to Kconfig symbol names before they're stored,
// so `FOO` (as written in a Kconfig file) and `CONFIG_FOO` (as referenced
// from C/Makefiles) land on the same identifier. Mirrors get_refs's
// family-M handling in non_gen_update.py.
const ConfigPrefix = "CONFIG_"

// WithConfigPrefix adds ConfigPrefix if s doesn't already carry it.
func WithConfigPrefix(s string) string {
	if strings.HasPrefix(s, ConfigPrefix) {
		return s
	}
	return ConfigPrefix + s
}

// QuoteCompatible percent-encodes a DT compatible string for use as a
// store key, the Go analogue of data.py's QuotedStringConverter
// (urllib.parse.quote/unquote).
func QuoteCompatible(s string) string {
	return url.QueryEscape(s)
}

// UnquoteCompatible reverses QuoteCompatible; an undecodable string is
// returned unchanged rather than erroring, since stored keys are always
// produced by QuoteCompatible in the first place.
func UnquoteCompatible(s string) string {
	u, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return u
}
