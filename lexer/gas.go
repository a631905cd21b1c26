package lexer

import "regexp"

// gasCommentChars maps an architecture name (family.GasArch) to the set of
// characters that start a line comment, and for each one whether it's only
// special at the start of a line. Ported from GasLexer's
// gasm_comment_chars_map in elixir/lexers/lexers.py, where a leading '^' in
// the Python tuple marked "first in line only".
type gasCommentChar struct {
	Char        byte
	FirstInLine bool
}

var gasCommentCharsMap = map[string][]gasCommentChar{
	"generic":    {{'#', false}},
	"alpha":      {{'!', false}},
	"arc":        {{'#', false}, {';', false}},
	"arm32":      {{'@', false}, {'#', true}},
	"csky":       {{'#', false}},
	"m68k":       {{'|', false}, {'#', false}},
	"microblaze": {{'#', false}},
	"mips":       {{'#', false}},
	"openrisc":   {{'#', false}},
	"parisc":     {{';', false}},
	"riscv":      {{'#', false}},
	"s390":       {{'#', false}},
	"sh":         {{'!', false}, {'#', true}},
	"sparc":      {{'!', false}, {'#', false}},
	"x86":        {{'#', false}},
	"xtensa":     {{'#', false}},
}

const (
	gasIdentifierRe = `[a-zA-Z_.$][a-zA-Z0-9_.$]*`
	gasFlonumRe     = `[0-9]+\.[0-9]+(?:[eE][+-]?[0-9]+)?`
	gasPreprocRe    = `#[ \t]*(?:include|define|undef|if|ifdef|ifndef|else|elif|endif)[^\n]*`
)

// GasRules builds the assembler family lexer rule table for one
// architecture, selecting that architecture's comment-character rules.
// Mirrors GasLexer.get_arch_rules — rules_before_comments, then the
// per-arch comment rules, then rules_after_comments.
func GasRules(arch string) []Rule {
	chars, ok := gasCommentCharsMap[arch]
	if !ok {
		chars = gasCommentCharsMap["generic"]
	}

	rules := []Rule{
		Simple("whitespace", whitespaceRe, Whitespace),
		Simple("block-comment", `##`, Punctuation),
		Simple("or-or", `\|\|`, Punctuation),
		FirstInLine(Simple("preproc", gasPreprocRe, Special)),
		Simple("comment", commonSlashCommentRe, Comment),
	}

	for _, c := range chars {
		pattern := regexp.QuoteMeta(string(c.Char)) + `[^\n]*`
		r := Simple("arch-comment", pattern, Comment)
		if c.FirstInLine {
			r = FirstInLine(r)
		}
		rules = append(rules, r)
	}

	rules = append(rules,
		Simple("string", commonStringAndCharRe, String),
		Simple("flonum", gasFlonumRe, Number),
		Simple("number", cNumberRe, Number),
		Simple("identifier", gasIdentifierRe, Identifier),
		Simple("punctuation", cPunctuationRe, Punctuation),
	)
	return rules
}
