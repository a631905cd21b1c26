package updater

import (
	"context"

	"github.com/bootlin/elixir/family"
	"github.com/bootlin/elixir/ident"
	"github.com/bootlin/elixir/record"
	"github.com/bootlin/elixir/store"
)

type lineKey struct {
	blobID int
	line   int
}

// mergeState is stage 3's single-threaded ordered merge: it folds every
// blob's extracted occurrences into the store, tracking (per identifier)
// which (BlobId, line) pairs were recorded as definitions this tag, so that
// add_refs can exclude a definition site from also being counted as a
// reference. Ported from non_gen_update.py's UpdatePartialState.
type mergeState struct {
	db        *store.DB
	defIdents map[string][]lineKey
}

func newMergeState(db *store.DB) *mergeState {
	return &mergeState{db: db, defIdents: map[string][]lineKey{}}
}

// addDefs merges one blob's definitions for identifier id, tagging every
// entry with the file's Family.
func (m *mergeState) addDefs(ctx context.Context, blobID int, fam family.Family, id string, occs []defOccurrence) error {
	existing, _, err := m.db.Definitions.Get(ctx, []byte(id))
	if err != nil {
		return err
	}
	dl := record.DecodeDefList(existing)
	for _, occ := range occs {
		dl.Append(blobID, occ.Type, occ.Line, fam)
		m.defIdents[id] = append(m.defIdents[id], lineKey{blobID: blobID, line: occ.Line})
	}
	return m.db.Definitions.Put(ctx, []byte(id), dl.Pack())
}

func deflistExists(keys []lineKey, blobID, line int) bool {
	for _, k := range keys {
		if k.blobID == blobID && k.line == line {
			return true
		}
	}
	return false
}

// addRefs merges one blob's references for identifier id, dropping any
// occurrence whose (blobID,line) is already recorded as a definition site
// for id this tag, and skipping id entirely if no tag indexed so far (this
// one included) defines it. Skipped references are not revisited later: a
// blob's references are extracted only by the tag that first adds the blob.
// Ported from non_gen_update.py's add_refs.
func (m *mergeState) addRefs(ctx context.Context, blobID int, id string, occ refOccurrence) error {
	deflist, ok := m.defIdents[id]
	if !ok {
		defined, err := m.db.Definitions.Exists(ctx, []byte(id))
		if err != nil {
			return err
		}
		if !defined {
			return nil
		}
	}
	var filtered []int
	for _, line := range occ.Lines {
		if !deflistExists(deflist, blobID, line) {
			filtered = append(filtered, line)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return addToRefList(ctx, m.db.References, id, blobID, filtered, occ.Family)
}

// addDocs merges one blob's doc-comment occurrences for identifier id.
func (m *mergeState) addDocs(ctx context.Context, blobID int, fam family.Family, id string, lines []int) error {
	return addToRefList(ctx, m.db.DocComments, id, blobID, lines, fam)
}

// addComps merges one blob's DT compatible-string occurrences.
func (m *mergeState) addComps(ctx context.Context, blobID int, fam family.Family, compatible string, lines []int) error {
	key := ident.QuoteCompatible(compatible)
	return addToRefList(ctx, m.db.CompatibleDTS, key, blobID, lines, fam)
}

// addCompsDocs merges one blob's binding-documentation occurrences for a
// compatible string, but only if that string already has at least one
// device-tree-source occurrence recorded — documentation for a compatible
// string nobody's DTS ever uses isn't useful to cross-reference. Ported
// from non_gen_update.py's add_comps_docs.
func (m *mergeState) addCompsDocs(ctx context.Context, blobID int, compatible string, lines []int) error {
	key := ident.QuoteCompatible(compatible)
	exists, err := m.db.CompatibleDTS.Exists(ctx, []byte(key))
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return addToRefList(ctx, m.db.CompatibleDTSDocs, key, blobID, lines, family.Binding)
}

// addToRefList is the generic "decode-or-new RefList, append, put"
// operation shared by references, doc-comments and compatible-string
// tables. Ported from non_gen_update.py's add_to_reflist.
func addToRefList(ctx context.Context, s store.Store, key string, blobID int, lines []int, fam family.Family) error {
	existing, _, err := s.Get(ctx, []byte(key))
	if err != nil {
		return err
	}
	rl := record.DecodeRefList(existing)
	rl.Append(blobID, lines, fam)
	return s.Put(ctx, []byte(key), rl.Pack())
}
