package filter

import (
	"fmt"
	"regexp"
)

// ansiIdentRe matches an ANSI-red-marked identifier the collaborator's
// highlighter embeds in raw code, as a span to turn into a cross-reference
// link. CONFIG_-prefixed spans also match but are left as they are, ANSI
// markers included. Ported from http/filters/ident.py's IdentFilter.
var ansiIdentRe = regexp.MustCompile("\x1b\\[31m(?:CONFIG_)?[A-Za-z0-9_$.%?-]+\x1b\\[0m")
var ansiIdentExcludeConfigRe = regexp.MustCompile(`^\x1b\[31mCONFIG_`)
var ansiIdentStripRe = regexp.MustCompile(`\x1b\[31m|\x1b\[0m`)

// IdentFilter turns every non-CONFIG_ ANSI-red-marked span into a link to
// that identifier's cross-reference page.
type IdentFilter struct {
	idents []string
}

func (f *IdentFilter) AppliesTo(ctx *Context, path string) bool { return true }

func (f *IdentFilter) TransformRawCode(ctx *Context, code string) string {
	return ansiIdentRe.ReplaceAllStringFunc(code, func(m string) string {
		if ansiIdentExcludeConfigRe.MatchString(m) {
			return m
		}
		ident := ansiIdentStripRe.ReplaceAllString(m, "")
		f.idents = append(f.idents, ident)
		return placeholder("IDENT", len(f.idents)-1)
	})
}

func (f *IdentFilter) UntransformFormattedCode(ctx *Context, html string) string {
	return replacePlaceholders(html, "IDENT", func(i int) string {
		if i < 0 || i >= len(f.idents) {
			return ""
		}
		name := f.idents[i]
		url := ""
		if ctx.IdentURL != nil {
			url = ctx.IdentURL(name)
		}
		return fmt.Sprintf(`<a class="ident" href="%s">%s</a>`, url, name)
	})
}

var _ Filter = (*IdentFilter)(nil)
