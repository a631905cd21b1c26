package lexer

import "github.com/bootlin/elixir/family"

// RulesFor selects the rule table that should tokenize path, following the
// same precedence as family.Of plus the Gas carve-out for assembly sources.
// Mirrors elixir/lexers/__init__.py's get_lexer.
func RulesFor(path string) []Rule {
	if family.IsAssembly(path) {
		return GasRules(family.GasArch(path))
	}
	switch family.Of(path) {
	case family.C:
		return CRules()
	case family.DTS:
		return DTSRules()
	case family.Kconfig:
		return KconfigRules()
	case family.Make:
		return MakeRules()
	default:
		return DefaultRules()
	}
}

// Tokenize runs the rule table selected for path over code.
func Tokenize(path, code string) []Token {
	return Run(RulesFor(path), code)
}
