package filter

import (
	"fmt"
	"path"
	"regexp"
)

var makefileBasenameRe = regexp.MustCompile(`^[Mm]akefile$`)

func isMakefile(p string) bool {
	return makefileBasenameRe.MatchString(basename(p))
}

// MakefileDirFilter links bare subdirectory references in a Makefile
// ("obj-y += subdir/") to that directory's listing, when the directory
// actually exists in the current tag. Ported from
// http/filters/makefiledir.py.
type MakefileDirFilter struct {
	name    string
	paths   []string
	current string
}

func NewMakefileDirFilter() *MakefileDirFilter { return &MakefileDirFilter{name: "MAKEFILEDIR"} }

var makefileDirRe = regexp.MustCompile(`(?m)^([A-Za-z0-9_-]+(?:-[ymn]))\s*(\+?=)\s*((?:[a-zA-Z0-9_./-]+/\s*)+)$`)
var makefileDirEntryRe = regexp.MustCompile(`[a-zA-Z0-9_./-]+/`)

func (f *MakefileDirFilter) AppliesTo(ctx *Context, p string) bool { return isMakefile(p) }

func (f *MakefileDirFilter) TransformRawCode(ctx *Context, code string) string {
	f.current = path.Dir(ctx.Path)
	return makefileDirRe.ReplaceAllStringFunc(code, func(m string) string {
		return makefileDirEntryRe.ReplaceAllStringFunc(m, func(entry string) string {
			full := path.Join(f.current, entry)
			if ctx.PathExists != nil && !ctx.PathExists(full) {
				return entry
			}
			f.paths = append(f.paths, full)
			return placeholder(f.name, len(f.paths)-1) + "/"
		})
	})
}

func (f *MakefileDirFilter) UntransformFormattedCode(ctx *Context, html string) string {
	return replacePlaceholders(html, f.name, func(i int) string {
		if i < 0 || i >= len(f.paths) {
			return ""
		}
		full := f.paths[i]
		url := ""
		if ctx.AbsoluteSourceURL != nil {
			url = ctx.AbsoluteSourceURL(full)
		}
		return fmt.Sprintf(`<a href="%s">%s</a>`, url, path.Base(full))
	})
}

var _ Filter = (*MakefileDirFilter)(nil)

// MakefileFileFilter links bare filename references in a Makefile
// ("obj-y += foo.o" implying foo.c) to that file. Ported from
// http/filters/makefilefile.py.
type MakefileFileFilter struct {
	name    string
	paths   []string
	current string
}

func NewMakefileFileFilter() *MakefileFileFilter { return &MakefileFileFilter{name: "MAKEFILEFILE"} }

var makefileFileRe = regexp.MustCompile(`\b[a-zA-Z0-9_./-]+\.(?:c|h|S|o)\b`)

func (f *MakefileFileFilter) AppliesTo(ctx *Context, p string) bool { return isMakefile(p) }

func (f *MakefileFileFilter) TransformRawCode(ctx *Context, code string) string {
	f.current = path.Dir(ctx.Path)
	return makefileFileRe.ReplaceAllStringFunc(code, func(m string) string {
		candidate := m
		if len(candidate) > 2 && candidate[len(candidate)-2:] == ".o" {
			candidate = candidate[:len(candidate)-2] + ".c"
		}
		full := path.Join(f.current, candidate)
		if ctx.PathExists != nil && !ctx.PathExists(full) {
			return m
		}
		f.paths = append(f.paths, full)
		return placeholder(f.name, len(f.paths)-1)
	})
}

func (f *MakefileFileFilter) UntransformFormattedCode(ctx *Context, html string) string {
	return replacePlaceholders(html, f.name, func(i int) string {
		if i < 0 || i >= len(f.paths) {
			return ""
		}
		full := f.paths[i]
		url := ""
		if ctx.AbsoluteSourceURL != nil {
			url = ctx.AbsoluteSourceURL(full)
		}
		return fmt.Sprintf(`<a href="%s">%s</a>`, url, path.Base(full))
	})
}

var _ Filter = (*MakefileFileFilter)(nil)

// MakefileSrcTreeFilter links "$(srctree)/path/to/thing" references.
// Ported from http/filters/makefilesrctree.py.
type MakefileSrcTreeFilter struct {
	name  string
	paths []string
}

func NewMakefileSrcTreeFilter() *MakefileSrcTreeFilter {
	return &MakefileSrcTreeFilter{name: "MAKEFILESRCTREE"}
}

var srctreeRe = regexp.MustCompile(`\$\(srctree\)/([a-zA-Z0-9_./-]+)`)

func (f *MakefileSrcTreeFilter) AppliesTo(ctx *Context, p string) bool { return isMakefile(p) }

func (f *MakefileSrcTreeFilter) TransformRawCode(ctx *Context, code string) string {
	return srctreeRe.ReplaceAllStringFunc(code, func(m string) string {
		sub := srctreeRe.FindStringSubmatch(m)
		full := sub[1]
		if ctx.PathExists != nil && !ctx.PathExists(full) {
			return m
		}
		f.paths = append(f.paths, full)
		return "$(srctree)/" + placeholder(f.name, len(f.paths)-1)
	})
}

func (f *MakefileSrcTreeFilter) UntransformFormattedCode(ctx *Context, html string) string {
	return replacePlaceholders(html, f.name, func(i int) string {
		if i < 0 || i >= len(f.paths) {
			return ""
		}
		full := f.paths[i]
		url := ""
		if ctx.AbsoluteSourceURL != nil {
			url = ctx.AbsoluteSourceURL(full)
		}
		return fmt.Sprintf(`<a href="%s">%s</a>`, url, full)
	})
}

var _ Filter = (*MakefileSrcTreeFilter)(nil)
