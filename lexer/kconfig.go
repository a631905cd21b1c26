package lexer

import (
	"regexp"
	"strings"
)

const (
	kconfigHashCommentRe      = `#[^\n]*\n`
	kconfigIdentifierRe       = `[A-Z0-9_][A-Z0-9a-z_a-]*`
	kconfigMinorIdentifierRe  = `[a-z_][a-zA-Z0-9_]*`
	kconfigPunctuationRe      = `[=!<>|&()$+-]`
	kconfigStringRe           = `"[^"\n]*"|'[^'\n]*'`
	kconfigHelpKeywordRe      = `(?:help|---help---|-\+help-\+)`
)

// KconfigRules builds the Kconfig family lexer rule table.
func KconfigRules() []Rule {
	return []Rule{
		Simple("whitespace", whitespaceRe, Whitespace),
		Simple("comment", kconfigHashCommentRe, Comment),
		Simple("string", kconfigStringRe, String),
		Simple("number", cNumberRe, Number),
		FirstInLine(Callback("help", kconfigHelpKeywordRe, parseKconfigHelpText)),
		Simple("identifier", kconfigIdentifierRe, Identifier),
		Simple("minor-identifier", kconfigMinorIdentifierRe, Identifier),
		Simple("punctuation", kconfigPunctuationRe, Punctuation),
	}
}

var kconfigHelpKeywordOnly = regexp.MustCompile(`^` + kconfigHelpKeywordRe)
var kconfigTrailingWSRe = regexp.MustCompile(`^[ \t]*\n`)

// kconfigIndentWidth counts leading whitespace the way the original scanner
// does: a tab counts as 8 columns, any other whitespace byte as 1. Ported
// from count_kconfig_help_whitespace.
func kconfigIndentWidth(line string) int {
	width := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\t':
			width += 8
		case ' ':
			width++
		default:
			return width
		}
	}
	return width
}

func leadingWhitespaceLen(line string) int {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}

// parseKconfigHelpText emits the help/---help---/-+help-+ keyword as a
// Special token, then the trailing whitespace+newline as a Whitespace token,
// then scans
// forward accumulating every following line into a single Comment token
// until it finds a non-blank line indented strictly less than the first
// non-blank body line — that line (and everything after) is left for the
// next rule to process. Ported from the newer parse_kconfig_help_text in
// elixir/lexers/lexers.py (keyword -> Special, unlike the older root-level
// elixir/lexers.py variant which tagged it Identifier).
func parseKconfigHelpText(ctx *Context, m Match) []Token {
	keyword := m.Groups[0]
	pos := m.Start
	line := m.Line
	var tokens []Token

	tokens = append(tokens, Token{Type: Special, Text: keyword, Start: pos, End: pos + len(keyword), Line: line})
	pos += len(keyword)

	rest := ctx.Code[pos:]
	if ws := kconfigTrailingWSRe.FindString(rest); ws != "" {
		tokens = append(tokens, Token{Type: Whitespace, Text: ws, Start: pos, End: pos + len(ws), Line: line})
		pos += len(ws)
		line++
	}

	bodyStart := pos
	bodyLine := line
	baseIndent := -1
	cursor := pos
	curLine := line

	for cursor < len(ctx.Code) {
		nl := strings.IndexByte(ctx.Code[cursor:], '\n')
		var lineText string
		var lineEnd int
		if nl == -1 {
			lineText = ctx.Code[cursor:]
			lineEnd = len(ctx.Code)
		} else {
			lineText = ctx.Code[cursor : cursor+nl]
			lineEnd = cursor + nl + 1
		}

		trimmed := strings.TrimRight(lineText, " \t\r")
		if trimmed == "" {
			cursor = lineEnd
			curLine++
			if nl == -1 {
				break
			}
			continue
		}

		indent := kconfigIndentWidth(lineText)
		if baseIndent == -1 {
			baseIndent = indent
		} else if indent < baseIndent {
			break
		}

		cursor = lineEnd
		curLine++
		if nl == -1 {
			break
		}
	}

	if cursor > bodyStart {
		body := ctx.Code[bodyStart:cursor]
		tokens = append(tokens, Token{Type: Comment, Text: body, Start: bodyStart, End: cursor, Line: bodyLine})
	}
	return tokens
}
