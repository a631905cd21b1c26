// Package compat extracts device-tree "compatible" property values from a
// DTS token stream, in-process. The original implementation shelled out to
// a separate find_compatible_dts helper (referenced from
// non_gen_update.py's get_comps/get_comps_docs but not present in the
// retrieved source pack); Design Note in spec.md §9 allows inlining it, so
// this package scans lexer.DTS tokens directly instead of re-deriving the
// external helper's exact CLI contract.
package compat

import "github.com/bootlin/elixir/lexer"

// Occurrence is one "compatible = \"...\";" string value found on Line.
type Occurrence struct {
	Value string
	Line  int
}

// Extract scans tokens (as produced by lexer.Run(lexer.DTSRules(), code))
// for "compatible" property assignments and returns every quoted string
// value assigned, in source order. A DTS property can list more than one
// compatible string ("compatible = "a", "b";"), so every string token up to
// the terminating ';' is collected.
func Extract(tokens []lexer.Token) []Occurrence {
	var out []Occurrence

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Type != lexer.Identifier || tok.Text != "compatible" {
			continue
		}
		// expect '=' next (skipping whitespace/comments), then one or
		// more quoted strings separated by ',', terminated by ';'.
		j := skipTrivia(tokens, i+1)
		if j >= len(tokens) || tokens[j].Type != lexer.Punctuation || tokens[j].Text != "=" {
			continue
		}
		j = skipTrivia(tokens, j+1)
		for j < len(tokens) {
			if tokens[j].Type == lexer.String {
				out = append(out, Occurrence{Value: unquote(tokens[j].Text), Line: tokens[j].Line})
				j = skipTrivia(tokens, j+1)
				// The DTS node-name rule admits ',', so a lone separator
				// may arrive as an Identifier token rather than Punctuation.
				if j < len(tokens) && tokens[j].Text == "," {
					j = skipTrivia(tokens, j+1)
					continue
				}
			}
			break
		}
	}
	return out
}

func skipTrivia(tokens []lexer.Token, i int) int {
	for i < len(tokens) && (tokens[i].Type == lexer.Whitespace || tokens[i].Type == lexer.Comment) {
		i++
	}
	return i
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
