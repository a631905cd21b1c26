package compat

import (
	"testing"

	"github.com/bootlin/elixir/lexer"
)

func TestExtractSingleCompatible(t *testing.T) {
	code := `uart0: serial@101f0000 {
	compatible = "arm,pl011", "arm,primecell";
	status = "okay";
};
`
	tokens := lexer.Run(lexer.DTSRules(), code)
	occs := Extract(tokens)
	if len(occs) != 2 {
		t.Fatalf("got %d occurrences, want 2: %+v", len(occs), occs)
	}
	if occs[0].Value != "arm,pl011" || occs[1].Value != "arm,primecell" {
		t.Fatalf("got %+v", occs)
	}
}

func TestExtractNoCompatible(t *testing.T) {
	code := "node { status = \"okay\"; };\n"
	tokens := lexer.Run(lexer.DTSRules(), code)
	occs := Extract(tokens)
	if len(occs) != 0 {
		t.Fatalf("got %+v, want none", occs)
	}
}
