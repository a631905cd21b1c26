// Package updater implements the four-stage incremental index update
// pipeline: blob enumeration and BlobId reservation, parallel extraction,
// single-threaded ordered merge, and atomic commit. Grounded on
// non_gen_update.py's UpdatePartialState/build_partial_state/
// apply_partial_state/update_version.
package updater

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/bootlin/elixir/collaborator"
	"github.com/bootlin/elixir/record"
	"github.com/bootlin/elixir/store"
)

const numBlobsKey = "numBlobs"

// blobRef is one line of a tag's blob manifest as reported by the
// collaborator's "list-blobs" subcommand: a content hash and the filename
// it was found under in that tag.
type blobRef struct {
	Hash     string
	Filename string
}

// partialState is the in-memory result of stage 1 (enumeration and BlobId
// reservation): which blobs are new to this tag (and therefore need
// extraction), and the full ordered manifest the tag will commit to.
type partialState struct {
	tag string

	newBlobIdx []int            // BlobIds newly assigned for this tag, in assignment order
	idxToBlob  map[int]blobRef  // every newly assigned BlobId's (hash, filename)
	hashToIdx  map[string]int   // every newly assigned hash's BlobId
	allBlobs   []blobRef        // the tag's full blob list, in collaborator output order
}

func idxKey(idx int) []byte {
	return []byte(strconv.Itoa(idx))
}

// buildPartialState enumerates tag's blobs, assigning a fresh BlobId to
// every one the store hasn't seen before, and immediately persists the
// advanced numBlobs high-water mark — a reservation checkpoint that is
// never rolled back even if the rest of the update fails, matching
// build_partial_state's behavior in non_gen_update.py.
func buildPartialState(ctx context.Context, db *store.DB, collab collaborator.Collaborator, tag string) (*partialState, error) {
	numBlobs, err := readNumBlobs(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("read numBlobs: %w", err)
	}

	lines, err := collab.ScriptLines(ctx, "list-blobs", "-f", tag)
	if err != nil {
		return nil, fmt.Errorf("list-blobs %s: %w", tag, err)
	}

	st := &partialState{
		tag:       tag,
		idxToBlob: map[int]blobRef{},
		hashToIdx: map[string]int{},
	}

	for _, line := range lines {
		hash, filename, ok := splitHashBasename(line)
		if !ok {
			continue
		}
		st.allBlobs = append(st.allBlobs, blobRef{Hash: hash, Filename: filename})

		exists, err := db.Blobs.Exists(ctx, []byte(hash))
		if err != nil {
			return nil, fmt.Errorf("check blob %s: %w", hash, err)
		}
		if exists {
			continue
		}
		idx := numBlobs
		numBlobs++
		st.newBlobIdx = append(st.newBlobIdx, idx)
		st.idxToBlob[idx] = blobRef{Hash: hash, Filename: filename}
		st.hashToIdx[hash] = idx
	}

	if err := writeNumBlobs(ctx, db, numBlobs); err != nil {
		return nil, fmt.Errorf("write numBlobs: %w", err)
	}
	return st, nil
}

func splitHashBasename(line string) (hash, filename string, ok bool) {
	for i := 0; i < len(line); i++ {
		if line[i] == ' ' {
			return line[:i], line[i+1:], true
		}
	}
	return "", "", false
}

func readNumBlobs(ctx context.Context, db *store.DB) (int, error) {
	v, ok, err := db.Variables.Get(ctx, []byte(numBlobsKey))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(string(v))
	if err != nil {
		return 0, err
	}
	return n, nil
}

func writeNumBlobs(ctx context.Context, db *store.DB, n int) error {
	return db.Variables.Put(ctx, []byte(numBlobsKey), []byte(strconv.Itoa(n)))
}

// applyPartialState is stage 4's commit: it writes the hash/filename/blob
// index entries for every newly assigned BlobId, builds the tag's full
// manifest (resolving already-known blobs through db.Blobs), and performs
// the single durable write — db.Versions.Put + Sync — that is the sole
// signal a tag is fully indexed. Ported from apply_partial_state.
func applyPartialState(ctx context.Context, db *store.DB, st *partialState) error {
	for _, idx := range st.newBlobIdx {
		b := st.idxToBlob[idx]
		if err := db.Hashes.Put(ctx, idxKey(idx), []byte(b.Hash)); err != nil {
			return err
		}
		if err := db.Filenames.Put(ctx, idxKey(idx), []byte(b.Filename)); err != nil {
			return err
		}
	}
	for hash, idx := range st.hashToIdx {
		if err := db.Blobs.Put(ctx, []byte(hash), idxKey(idx)); err != nil {
			return err
		}
	}

	pl := record.NewPathList()
	type idxPath struct {
		idx  int
		path string
	}
	var entries []idxPath
	for _, b := range st.allBlobs {
		idx, ok := st.hashToIdx[b.Hash]
		if !ok {
			v, found, err := db.Blobs.Get(ctx, []byte(b.Hash))
			if err != nil {
				return fmt.Errorf("resolve known blob %s: %w", b.Hash, err)
			}
			if !found {
				return fmt.Errorf("blob %s missing from index after stage 1", b.Hash)
			}
			idx, err = strconv.Atoi(string(v))
			if err != nil {
				return err
			}
		}
		entries = append(entries, idxPath{idx: idx, path: b.Filename})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].idx < entries[j].idx })
	for _, e := range entries {
		pl.Append(e.idx, e.path)
	}

	if err := db.Versions.Put(ctx, []byte(st.tag), pl.Pack()); err != nil {
		return err
	}
	return db.Versions.Sync()
}
