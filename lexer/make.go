package lexer

const (
	makeIdentifierRe      = `[A-Z_][A-Z0-9_]*`
	makeMinorIdentifierRe = `[a-zA-Z_][a-zA-Z0-9_]*`
	makeVariableRe        = `\$[({][a-zA-Z0-9_.-]+[})]|\$.`
	makeStringRe          = commonStringAndCharRe
	makeEscapeRe          = `\\\n`
	makePunctuationRe     = `[:=+?!$(){}\[\]\\/.%-]`
	makeCommentRe         = `(?:[^\\\n]|\\.)*#(?:\\\s*\n|[^\n])*\n`
)

// MakeRules builds the Makefile family lexer rule table. Ported from
// MakefileLexer in elixir/lexers/lexers.py.
func MakeRules() []Rule {
	return []Rule{
		Simple("whitespace", whitespaceRe, Whitespace),
		Simple("escape", makeEscapeRe, Whitespace),
		Simple("comment", `#(?:\\\s*\n|[^\n])*\n`, Comment),
		Simple("variable", makeVariableRe, Identifier),
		Simple("string", makeStringRe, String),
		Simple("identifier", makeIdentifierRe, Identifier),
		Simple("minor-identifier", makeMinorIdentifierRe, Identifier),
		Simple("punctuation", makePunctuationRe, Punctuation),
	}
}
