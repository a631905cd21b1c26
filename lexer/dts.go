package lexer

import "strings"

// Device-tree source rule fragments. Ported from DTSLexer in
// elixir/lexers/lexers.py.
const (
	dtsLabelNameRe   = `[a-zA-Z_][a-zA-Z0-9_]*`
	dtsUnitAddressRe = `[a-zA-Z0-9,@]*`

	dtsLabelReferenceRe = `(&)(` + dtsLabelNameRe + `)`
	dtsLabelDefinitionRe = `(` + dtsLabelNameRe + `)(:)`

	dtsNodeNameWithAddressRe = `([a-zA-Z0-9,._+-]+)(@)(` + dtsUnitAddressRe + `)`
	dtsNodeNameRe            = `[a-zA-Z0-9,._+-]+`

	dtsPropertyEmptyRe      = `([a-zA-Z0-9,._+?#-]+)(;)`
	dtsPropertyAssignmentRe = `([a-zA-Z0-9,._+?#-]+)(=)`

	dtsNodeReferenceRe = `(&)({)([^}]*)(})`

	dtsDirectiveRe       = `/(?:dts-v1|include|memreserve|incbin)/`
	dtsDeleteNodeRe      = `/delete-node/`
	dtsDeletePropertyRe  = `/delete-property/`

	dtsPunctuationRe = `[#@:;{}\[\]()^<>=+*/%&\\|~!?,-]`
)

// DTSRules builds the device-tree-source family lexer rule table.
func DTSRules() []Rule {
	return []Rule{
		Simple("whitespace", whitespaceRe, Whitespace),
		Simple("comment", commonSlashCommentRe, Comment),
		Simple("string", commonStringAndCharRe, String),
		Simple("number", cNumberRe, Number),
		Simple("delete-node", dtsDeleteNodeRe, Special),
		Simple("delete-property", dtsDeletePropertyRe, Special),
		Simple("directive", dtsDirectiveRe, Special),
		Callback("label-reference", dtsLabelReferenceRe, SplitByGroups(Punctuation, Identifier)),
		Callback("label-definition", dtsLabelDefinitionRe, SplitByGroups(Identifier, Punctuation)),
		Callback("node-reference", dtsNodeReferenceRe, parseDTSNodeReference),
		Callback("node-name-with-address", dtsNodeNameWithAddressRe, SplitByGroups(Identifier, Punctuation, Identifier)),
		Callback("property-empty", dtsPropertyEmptyRe, SplitByGroups(Identifier, Punctuation)),
		Callback("property-assignment", dtsPropertyAssignmentRe, SplitByGroups(Identifier, Punctuation)),
		Simple("node-name", dtsNodeNameRe, Identifier),
		Simple("punctuation", dtsPunctuationRe, Punctuation),
	}
}

// parseDTSNodeReference handles "&{/path/to@0/node}" phandle path
// references: the '&' and braces are punctuation, and the path inside is
// walked segment by segment (split on '/'), each segment further split on
// '@' into a name identifier and a unit-address identifier, with the
// separators emitted as punctuation. Ported from DTSLexer's
// parse_dts_node_reference static method.
func parseDTSNodeReference(ctx *Context, m Match) []Token {
	amp := m.Groups[1]
	openBrace := m.Groups[2]
	path := m.Groups[3]
	closeBrace := m.Groups[4]

	pos := m.Start
	line := m.Line
	var tokens []Token

	push := func(t TokenType, s string) {
		if s == "" {
			return
		}
		tokens = append(tokens, Token{Type: t, Text: s, Start: pos, End: pos + len(s), Line: line})
		line += strings.Count(s, "\n")
		pos += len(s)
	}

	push(Punctuation, amp)
	push(Punctuation, openBrace)

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if i > 0 {
			push(Punctuation, "/")
		}
		if seg == "" {
			continue
		}
		if at := strings.IndexByte(seg, '@'); at >= 0 {
			push(Identifier, seg[:at])
			push(Punctuation, "@")
			push(Identifier, seg[at+1:])
		} else {
			push(Identifier, seg)
		}
	}

	push(Punctuation, closeBrace)
	return tokens
}
