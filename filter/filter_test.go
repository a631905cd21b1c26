package filter

import (
	"strings"
	"testing"
)

func TestIdentFilterRoundTrip(t *testing.T) {
	ctx := &Context{
		IdentURL: func(id string) string { return "/ident/" + id },
	}
	f := &IdentFilter{}

	code := "int \x1b[31mfoo\x1b[0m(void) { return \x1b[31mCONFIG_BAR\x1b[0m; }"
	transformed := f.TransformRawCode(ctx, code)
	if strings.Contains(transformed, "\x1b[31mfoo") {
		t.Fatalf("expected ANSI-marked non-CONFIG_ identifier to be replaced: %q", transformed)
	}
	if !strings.Contains(transformed, "CONFIG_BAR") {
		t.Fatalf("expected CONFIG_ identifier to be left alone: %q", transformed)
	}

	html := f.UntransformFormattedCode(ctx, transformed)
	if !strings.Contains(html, `<a class="ident" href="/ident/foo">foo</a>`) {
		t.Fatalf("expected a link for foo, got %q", html)
	}
}

func TestMakefileFileFilterOnlyAppliesToMakefiles(t *testing.T) {
	f := NewMakefileFileFilter()
	ctx := &Context{Path: "Makefile"}
	if !f.AppliesTo(ctx, "Makefile") {
		t.Fatalf("expected filter to apply to Makefile")
	}
	if f.AppliesTo(ctx, "main.c") {
		t.Fatalf("expected filter to not apply to main.c")
	}
}

func TestMakefileFileFilterSkipsMissingPaths(t *testing.T) {
	ctx := &Context{
		Path:              "drivers/net/Makefile",
		PathExists:        func(string) bool { return false },
		AbsoluteSourceURL: func(p string) string { return "/source/" + p },
	}
	f := NewMakefileFileFilter()
	code := "obj-y += foo.o\n"
	out := f.TransformRawCode(ctx, code)
	if out != code {
		t.Fatalf("expected no transform when PathExists is false, got %q", out)
	}
}

func TestMakefileSrcTreeFilterRoundTrip(t *testing.T) {
	ctx := &Context{
		Path:              "Makefile",
		PathExists:        func(string) bool { return true },
		AbsoluteSourceURL: func(p string) string { return "/source/" + p },
	}
	f := NewMakefileSrcTreeFilter()
	code := "include $(srctree)/scripts/Kbuild.include\n"
	transformed := f.TransformRawCode(ctx, code)
	html := f.UntransformFormattedCode(ctx, transformed)
	if !strings.Contains(html, `/source/scripts/Kbuild.include`) {
		t.Fatalf("expected a resolved link, got %q", html)
	}
}
