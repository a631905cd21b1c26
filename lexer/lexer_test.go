package lexer

import (
	"strings"
	"testing"
)

// concatenating every token's text reproduces the input exactly (modulo the
// trailing-newline normalization Run performs on inputs missing one).
func assertConcatenation(t *testing.T, code string, tokens []Token) {
	t.Helper()
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Text)
	}
	want := code
	if len(want) == 0 || want[len(want)-1] != '\n' {
		want += "\n"
	}
	if got := b.String(); got != want {
		t.Fatalf("token concatenation mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func assertMonotonicLines(t *testing.T, tokens []Token) {
	t.Helper()
	last := 1
	for i, tok := range tokens {
		if tok.Line < last {
			t.Fatalf("token %d (%q) line %d goes backwards from %d", i, tok.Text, tok.Line, last)
		}
		last = tok.Line
	}
}

func assertSpans(t *testing.T, code string, tokens []Token) {
	t.Helper()
	if len(code) == 0 || code[len(code)-1] != '\n' {
		code += "\n"
	}
	for i, tok := range tokens {
		if tok.Start < 0 || tok.End > len(code) || tok.Start > tok.End {
			t.Fatalf("token %d has invalid span [%d,%d) in code of length %d", i, tok.Start, tok.End, len(code))
		}
		if code[tok.Start:tok.End] != tok.Text {
			t.Fatalf("token %d span text mismatch: span=%q text=%q", i, code[tok.Start:tok.End], tok.Text)
		}
	}
}

func TestCLexerConcatenationAndSpans(t *testing.T) {
	code := `#include <linux/kernel.h>
/* a comment */
int foo(int x) {
	return x + 1; // trailing
}
`
	tokens := Run(CRules(), code)
	assertConcatenation(t, code, tokens)
	assertMonotonicLines(t, tokens)
	assertSpans(t, code, tokens)

	foundIdent := false
	for _, tok := range tokens {
		if tok.Type == Identifier && tok.Text == "foo" {
			foundIdent = true
		}
	}
	if !foundIdent {
		t.Fatalf("expected to find identifier 'foo' among tokens: %+v", tokens)
	}
}

func TestCLexerPreprocOnlyFirstInLine(t *testing.T) {
	code := "x = 1 #define Y\n#define Z 1\n"
	tokens := Run(CRules(), code)
	assertConcatenation(t, code, tokens)

	var specials []string
	for _, tok := range tokens {
		if tok.Type == Special {
			specials = append(specials, tok.Text)
		}
	}
	if len(specials) != 1 || specials[0] != "#define Z 1" {
		t.Fatalf("expected only the line-initial #define to be Special, got %v", specials)
	}
}

func TestKconfigHelpBlockBoundary(t *testing.T) {
	code := `config FOO
	bool "Foo"
	help
	  This is the help text.
	  Second line of help.
	more text outdented

config BAR
	bool "Bar"
`
	tokens := Run(KconfigRules(), code)
	assertConcatenation(t, code, tokens)
	assertMonotonicLines(t, tokens)

	var comment Token
	found := false
	for _, tok := range tokens {
		if tok.Type == Comment && strings.Contains(tok.Text, "help text") {
			comment = tok
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a comment token containing the help body, got %+v", tokens)
	}
	if strings.Contains(comment.Text, "config BAR") {
		t.Fatalf("help block should not swallow the next config stanza: %q", comment.Text)
	}
}

func TestDTSNodeReference(t *testing.T) {
	code := `&{/soc/uart@0/child} {
	status = "okay";
};
`
	tokens := Run(DTSRules(), code)
	assertConcatenation(t, code, tokens)
	assertSpans(t, code, tokens)

	var idents []string
	for _, tok := range tokens {
		if tok.Type == Identifier {
			idents = append(idents, tok.Text)
		}
	}
	wantSubset := []string{"soc", "uart", "0", "child", "status"}
	for _, w := range wantSubset {
		has := false
		for _, i := range idents {
			if i == w {
				has = true
			}
		}
		if !has {
			t.Fatalf("expected identifier %q among %v", w, idents)
		}
	}
}

func TestDTSLabelReferenceAndDefinition(t *testing.T) {
	code := "label1: node { foo = <&label1>; };\n"
	tokens := Run(DTSRules(), code)
	assertConcatenation(t, code, tokens)

	var sawDef, sawRef bool
	for i, tok := range tokens {
		if tok.Type == Identifier && tok.Text == "label1" && i+1 < len(tokens) && tokens[i+1].Text == ":" {
			sawDef = true
		}
		if tok.Type == Punctuation && tok.Text == "&" && i+1 < len(tokens) && tokens[i+1].Text == "label1" {
			sawRef = true
		}
	}
	if !sawDef {
		t.Fatalf("expected a label definition token pair, got %+v", tokens)
	}
	if !sawRef {
		t.Fatalf("expected a label reference token pair, got %+v", tokens)
	}
}

func TestGasArm32FirstInLineComment(t *testing.T) {
	code := "mov r0, #1 @ comment\n# not a comment here\n"
	tokens := Run(GasRules("arm32"), code)
	assertConcatenation(t, code, tokens)

	for _, tok := range tokens {
		if tok.Text == "# not a comment here" && tok.Type == Comment {
			return
		}
	}
	t.Fatalf("expected '#' to start a comment at the start of a line on arm32: %+v", tokens)
}

func TestGasArm32HashNotCommentMidLine(t *testing.T) {
	code := "mov r0, #1\n"
	tokens := Run(GasRules("arm32"), code)
	assertConcatenation(t, code, tokens)
	for _, tok := range tokens {
		if tok.Type == Comment {
			t.Fatalf("did not expect mid-line '#' to start a comment on arm32: %+v", tokens)
		}
	}
}

func TestMakeLexer(t *testing.T) {
	code := "CFLAGS := -O2 $(EXTRA)\nall:\n\t$(CC) $(CFLAGS) -o out main.c\n"
	tokens := Run(MakeRules(), code)
	assertConcatenation(t, code, tokens)
	assertMonotonicLines(t, tokens)
}

func TestDispatchByPath(t *testing.T) {
	cases := []struct {
		path string
		want int
	}{
		{"kernel/sched/core.c", len(CRules())},
		{"arch/arm/boot/dts/foo.dts", len(DTSRules())},
		{"drivers/net/Kconfig", len(KconfigRules())},
		{"Makefile", len(MakeRules())},
		{"arch/arm/kernel/head.S", len(GasRules("arm32"))},
	}
	for _, c := range cases {
		got := RulesFor(c.path)
		if len(got) != c.want {
			t.Errorf("RulesFor(%q) = %d rules, want %d", c.path, len(got), c.want)
		}
	}
}
