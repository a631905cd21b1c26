package lexer

import (
	"regexp"
	"strings"
)

// Context is the mutable cursor a Rule's Action observes and may advance.
// It mirrors elixir/lexers/utils.py's LexerContext namedtuple, folded into
// one struct since Go actions mutate it in place rather than returning a
// replacement tuple.
type Context struct {
	Code string
	Pos  int
	Line int
}

// Match describes one regex match handed to a callback Action: Groups[0] is
// the whole match, Groups[1:] are submatches (empty string for a group that
// didn't participate).
type Match struct {
	Groups []string
	Start  int
	Line   int
}

// Action produces zero or more tokens from a match; Run then moves
// ctx.Pos/ctx.Line to the end of the last emitted token (or past the match
// when none is emitted). The tokens may cover more than the triggering
// match (elixir/lexers/lexers.py's DTS node-reference and Kconfig help-text
// rules both do this).
type Action func(ctx *Context, m Match) []Token

// Rule is one entry in a lexer's ordered rule table. Exactly one of
// TokenType (for a Simple rule, emitting the whole match verbatim) or
// Action (for a Callback rule) applies.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	TokenType   TokenType
	Action      Action
	firstInLine bool
}

// Simple builds a rule that emits the entire match as one token of type t.
func Simple(name, pattern string, t TokenType) Rule {
	return Rule{Name: name, Pattern: regexp.MustCompile("^(?:" + pattern + ")"), TokenType: t}
}

// Callback builds a rule whose Action decides what tokens (if any) to emit
// and how far to advance the cursor.
func Callback(name, pattern string, action Action) Rule {
	return Rule{Name: name, Pattern: regexp.MustCompile("^(?:" + pattern + ")"), Action: action}
}

// FirstInLine restricts a rule to only be tried when the cursor sits at the
// start of a source line (i.e. when only whitespace has been consumed since
// the last '\n' or since offset 0). Mirrors
// elixir/lexers/utils.py's FirstInLine wrapper — C preprocessor directives,
// Kconfig help blocks and most Gas comment markers are only special at the
// start of a line.
func FirstInLine(r Rule) Rule {
	r.firstInLine = true
	return r
}

// updateFirstInLine advances the running "first-in-line" state across a
// chunk of just-consumed text: true means every byte since the last
// newline — including bytes from chunks consumed earlier — is whitespace.
// Mirrors elixir/lexers/utils.py's FirstInLine.update_after_match, which
// inspects the suffix after the match's last '\n' rather than whether the
// match merely ends in one; a whitespace rule that swallows a trailing
// newline together with the next line's indentation (lexer/shared.go's
// `\s+`) would otherwise never register as ending at start-of-line.
func updateFirstInLine(firstInLine bool, text string) bool {
	if idx := strings.LastIndexByte(text, '\n'); idx != -1 {
		return isBlank(text[idx+1:])
	}
	return firstInLine && isBlank(text)
}

func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\v', '\f':
		default:
			return false
		}
	}
	return true
}

// Run tokenizes code against rules in order: at each position the first
// rule in the table whose pattern matches (non-empty match) wins. A
// zero-length match is treated as a non-match so the engine tries the next
// rule instead of looping forever. A position no rule matches emits a
// single-byte Error token. Mirrors elixir/lexers/utils.py's simple_lexer.
func Run(rules []Rule, code string) []Token {
	if len(code) == 0 || code[len(code)-1] != '\n' {
		code += "\n"
	}
	ctx := &Context{Code: code, Pos: 0, Line: 1}
	firstInLine := true
	var tokens []Token

	for ctx.Pos < len(ctx.Code) {
		matched := false
		for _, r := range rules {
			if r.firstInLine && !firstInLine {
				continue
			}
			rest := ctx.Code[ctx.Pos:]
			loc := r.Pattern.FindStringSubmatchIndex(rest)
			if loc == nil || loc[1] == 0 {
				continue
			}
			matched = true
			matchLen := loc[1]
			matchText := rest[:matchLen]

			if r.Action != nil {
				m := Match{Groups: submatchStrings(rest, loc), Start: ctx.Pos, Line: ctx.Line}
				emitted := r.Action(ctx, m)
				tokens = append(tokens, emitted...)
				if len(emitted) > 0 {
					last := emitted[len(emitted)-1]
					ctx.Pos = last.End
					ctx.Line = last.Line + strings.Count(last.Text, "\n")
					for _, t := range emitted {
						firstInLine = updateFirstInLine(firstInLine, t.Text)
					}
				} else {
					ctx.Pos += matchLen
					ctx.Line += strings.Count(matchText, "\n")
					firstInLine = updateFirstInLine(firstInLine, matchText)
				}
			} else {
				tok := Token{Type: r.TokenType, Text: matchText, Start: ctx.Pos, End: ctx.Pos + matchLen, Line: ctx.Line}
				tokens = append(tokens, tok)
				ctx.Line += strings.Count(matchText, "\n")
				ctx.Pos += matchLen
				firstInLine = updateFirstInLine(firstInLine, matchText)
			}
			break
		}
		if !matched {
			b := ctx.Code[ctx.Pos]
			tok := Token{Type: Error, Text: string(b), Start: ctx.Pos, End: ctx.Pos + 1, Line: ctx.Line}
			tokens = append(tokens, tok)
			if b == '\n' {
				ctx.Line++
			}
			firstInLine = updateFirstInLine(firstInLine, string(b))
			ctx.Pos++
		}
	}
	return tokens
}

func submatchStrings(s string, loc []int) []string {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		start, end := loc[2*i], loc[2*i+1]
		if start < 0 || end < 0 {
			continue
		}
		groups[i] = s[start:end]
	}
	return groups
}

// RegexOr joins alternatives with a non-capturing group, the Go analogue of
// elixir/lexers.py's regex_or.
func RegexOr(parts ...string) string {
	return "(?:" + strings.Join(parts, "|") + ")"
}

// RegexConcat concatenates fragments, the Go analogue of regex_concat.
func RegexConcat(parts ...string) string {
	return strings.Join(parts, "")
}

// SplitByGroups builds an Action that turns one match's capture groups into
// one token apiece, skipping groups that didn't participate or are empty.
// Mirrors elixir/lexers/utils.py's split_by_groups, used by DTS label
// reference/definition rules ("(&)(label)" -> Punctuation, Identifier).
func SplitByGroups(types ...TokenType) Action {
	return func(ctx *Context, m Match) []Token {
		var tokens []Token
		pos := m.Start
		line := m.Line
		for i, t := range types {
			g := m.Groups[i+1]
			if g == "" {
				continue
			}
			tokens = append(tokens, Token{Type: t, Text: g, Start: pos, End: pos + len(g), Line: line})
			line += strings.Count(g, "\n")
			pos += len(g)
		}
		return tokens
	}
}
