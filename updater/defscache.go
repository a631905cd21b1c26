package updater

import (
	"context"

	"github.com/bootlin/elixir/family"
	"github.com/bootlin/elixir/record"
	"github.com/bootlin/elixir/store"
)

// generateDefsCaches rebuilds the presence-only per-family autocomplete
// index by walking every identifier in Definitions and, for each family a
// defs-cache table exists for, recording the identifier there if it was
// ever defined in a file of that family. Ported from non_gen_update.py's
// generate_defs_caches; run after every tag commit, same as the original.
func generateDefsCaches(ctx context.Context, db *store.DB) error {
	return db.Definitions.IterateFromPrefix(ctx, nil, func(key, value []byte) (bool, error) {
		dl := record.DecodeDefList(value)
		fams := dl.Families()
		for fam, cache := range db.DefsCache {
			if compatibleFamily(fams, fam) {
				if err := cache.Put(ctx, key, []byte{}); err != nil {
					return false, err
				}
			}
		}
		return true, nil
	})
}

// compatibleFamily reports whether target is among fams.
func compatibleFamily(fams []family.Family, target family.Family) bool {
	for _, f := range fams {
		if f == target {
			return true
		}
	}
	return false
}
