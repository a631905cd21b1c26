package lexer

// DefaultRules builds the fallback lexer rule table used for source files
// that don't match any recognized family, following C-like comment/string
// conventions with a permissive identifier/punctuation split. Ported from
// DefaultLexer in elixir/lexers/lexers.py.
func DefaultRules() []Rule {
	return []Rule{
		Simple("whitespace", whitespaceRe, Whitespace),
		Simple("comment", commonSlashCommentRe, Comment),
		Simple("string", commonStringAndCharRe, String),
		Simple("number", cNumberRe, Number),
		Simple("identifier", `[a-zA-Z_][a-zA-Z_0-9]*`, Identifier),
		Simple("punctuation", RegexOr(cPunctuationRe, cPunctuationExtraRe), Punctuation),
	}
}
