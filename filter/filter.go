// Package filter re-architects the original per-project HTML transform
// pipeline (elixir/http/filters) as a Go interface: each Filter rewrites
// raw source text before highlighting and then rewrites the highlighted
// HTML back, replacing placeholders it left behind with links. Grounded on
// original_source/http/filters/{utils,ident,makefiledir,makefilefile,
// makefilesrctree,projects}.py.
package filter

import "regexp"

// Context carries everything a Filter needs to resolve a placeholder into
// a link: which tag/family/path it's running against, and callbacks
// to turn an identifier or project-relative path into a URL. Ported from
// FilterContext in http/filters/utils.py.
type Context struct {
	Tag    string
	Family string
	Path   string

	IdentURL           func(identifier string) string
	AbsoluteSourceURL  func(path string) string
	RelativeSourceURL  func(path, from string) string
	PathExists         func(path string) bool
}

// Filter transforms raw source code before syntax highlighting and then
// repairs the highlighted HTML, replacing any placeholder it embedded with
// a link. Ported from the Filter base class in http/filters/utils.py.
type Filter interface {
	// AppliesTo reports whether this filter should run against path,
	// typically checking basename/extension.
	AppliesTo(ctx *Context, path string) bool

	// TransformRawCode rewrites raw source text, embedding placeholders
	// for spans that should become links after highlighting.
	TransformRawCode(ctx *Context, code string) string

	// UntransformFormattedCode replaces placeholders left by
	// TransformRawCode with actual HTML links, after syntax
	// highlighting has run over the rest of the text.
	UntransformFormattedCode(ctx *Context, html string) string
}

// pathExceptionRe-style helpers mirroring filename_without_ext_matches /
// extension_matches from http/filters/utils.py.

func basenameWithoutExtMatches(path string, re *regexp.Regexp) bool {
	base := basename(path)
	if dot := lastDot(base); dot >= 0 {
		base = base[:dot]
	}
	return re.MatchString(base)
}

func extensionMatches(path string, re *regexp.Regexp) bool {
	base := basename(path)
	if dot := lastDot(base); dot >= 0 {
		return re.MatchString(base[dot+1:])
	}
	return re.MatchString("")
}

func basename(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}

func lastDot(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}
