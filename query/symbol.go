// Package query implements Elixir's named-query engine: joining a tag's
// blob manifest against the identifier index tables to answer "where is X
// defined/referenced/documented in version Y" and related browsing
// questions. Grounded on the query call sites implicit in
// original_source/elixir/api.py and http/web.py (HTTP plumbing omitted, as
// it's out of scope here).
package query

import (
	"github.com/bootlin/elixir/family"
)

// SymbolInstance is one occurrence of an identifier resolved to a path
// (rather than a bare BlobId), ready to hand to a caller.
type SymbolInstance struct {
	Path   string
	Line   int
	Type   family.DefType // zero value for non-definition occurrences
	Family family.Family
}

// SymbolResult bundles every kind of occurrence a full identifier lookup
// ("ident" query) returns.
type SymbolResult struct {
	Definitions []SymbolInstance
	References  []SymbolInstance
	DocComments []SymbolInstance
}
