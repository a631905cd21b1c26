package lexer

// Regex fragments shared by more than one family lexer. Ported from
// elixir/lexers.py (the fragments the newer elixir/lexers/lexers.py module
// imports from a `shared` module not present in the retrieved source pack).

const (
	whitespaceRe = `\s+`

	cMultilineCommentRe  = `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`
	cSinglelineCommentRe = `//[^\n]*`
	commonSlashCommentRe = `(?:` + cMultilineCommentRe + `|` + cSinglelineCommentRe + `)`

	cStringRe          = `"(\\.|[^"\\\n])*"`
	singleQuoteCharRe  = `'(\\.|[^'\\\n])*'`
	commonStringAndCharRe = `(?:` + cStringRe + `|` + singleQuoteCharRe + `)`

	cNumberSuffixRe = `[uUlLfF]*`

	cDecimalIntegerRe     = `[0-9]+`
	cHexidecimalIntegerRe = `0[xX][0-9a-fA-F]+`
	cOctalIntegerRe       = `0[0-7]+`
	cBinaryIntegerRe      = `0[bB][01]+`

	cExponentRe           = `[eE][+-]?[0-9]+`
	cHexidecimalExponentRe = `[pP][+-]?[0-9]+`

	cDecimalDoublePartRe     = `(?:[0-9]*\.[0-9]+|[0-9]+\.)(?:` + cExponentRe + `)?|[0-9]+(?:` + cExponentRe + `)`
	cHexidecimalDoublePartRe = `0[xX](?:[0-9a-fA-F]*\.[0-9a-fA-F]+|[0-9a-fA-F]+\.?)` + cHexidecimalExponentRe

	cNumberRe = `(?:` + cHexidecimalDoublePartRe + `|` + cDecimalDoublePartRe + `|` +
		cHexidecimalIntegerRe + `|` + cBinaryIntegerRe + `|` + cOctalIntegerRe + `|` + cDecimalIntegerRe +
		`)` + cNumberSuffixRe

	cIdentifierRe = `[a-zA-Z_][a-zA-Z_0-9]*`

	cPunctuationRe      = "[!#%&`()*+,./:;<=>?\\[\\]\\\\^_{|}~-]"
	cPunctuationExtraRe = `[$\\@]`
)
