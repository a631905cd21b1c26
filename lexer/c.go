package lexer

// cPreprocIgnoreRe matches a leading preprocessor directive line so it can
// be tagged Special instead of falling through to identifier/punctuation
// rules; only tried when FirstInLine. Ported from CLexer's
// c_preproc_ignore rule in elixir/lexers/lexers.py.
const cPreprocIgnoreRe = `#[ \t]*(?:include|define|undef|if|ifdef|ifndef|else|elif|endif|error|warning|pragma|line)[^\n]*`

// CRules builds the C/C++ family lexer rule table.
func CRules() []Rule {
	return []Rule{
		Simple("whitespace", whitespaceRe, Whitespace),
		Simple("comment", commonSlashCommentRe, Comment),
		Simple("string", commonStringAndCharRe, String),
		Simple("number", cNumberRe, Number),
		FirstInLine(Simple("preproc", cPreprocIgnoreRe, Special)),
		Simple("identifier", cIdentifierRe, Identifier),
		Simple("punctuation", RegexOr(cPunctuationRe, cPunctuationExtraRe), Punctuation),
	}
}
