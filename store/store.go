// Package store defines the ordered embedded key-value abstraction the
// index is built on, and a Badger-backed implementation of it. Ported from
// the interface shape of elixir/data.py's BsdDB (itself a thin wrapper over
// bsddb3) and the teacher's storagedriver.StorageDriver abstraction.
package store

import "context"

// Table names one physical keyspace. Each Table gets its own underlying
// Badger instance, mirroring data.py's DB opening one *.db file per
// concern (variables.db, blobs.db, hashes.db, ...).
type Table string

const (
	// Variables holds small scalar bookkeeping values, keyed by name —
	// the "numBlobs" high-water mark per data.py's usage, and "latestTag".
	Variables Table = "variables"
	// Blobs maps a content hash to the BlobId assigned to it.
	Blobs Table = "blobs"
	// Hashes maps a BlobId back to its content hash.
	Hashes Table = "hashes"
	// Filenames maps a BlobId to the filename it was first seen under.
	Filenames Table = "filenames"
	// Versions maps a tag to its packed record.PathList manifest. A tag
	// key existing here is the sole "this tag is fully indexed" signal.
	Versions Table = "versions"
	// Definitions maps an identifier to its packed record.DefList.
	Definitions Table = "definitions"
	// References maps an identifier to its packed record.RefList of
	// non-definition occurrences.
	References Table = "references"
	// DocComments maps an identifier to its packed record.RefList of
	// documentation-comment occurrences.
	DocComments Table = "doccomments"
	// CompatibleDTS maps a quoted DT compatible string to its packed
	// record.RefList of device-tree source occurrences.
	CompatibleDTS Table = "compatibledts"
	// CompatibleDTSDocs maps a quoted DT compatible string to its packed
	// record.RefList of binding-documentation occurrences.
	CompatibleDTSDocs Table = "compatibledts_docs"
)

// DefsCacheTable names the presence-only autocomplete index for one
// record-Family (see data.py's generate_defs_caches / db.defs_cache[family]).
func DefsCacheTable(famLetter string) Table {
	return Table("defs_cache_" + famLetter)
}

// Store is the ordered key-value abstraction every table is accessed
// through. Implementations must support a prefix-seek iterator ("smallest
// key >= prefix", the same semantics as BsdDB.iterate_from's
// DB_SET_RANGE cursor) since the query engine relies on it for range scans
// (versions, family and keys listings).
type Store interface {
	Exists(ctx context.Context, key []byte) (bool, error)
	Get(ctx context.Context, key []byte) ([]byte, bool, error)
	Put(ctx context.Context, key, value []byte) error

	// IterateFromPrefix calls fn for every key >= prefix in ascending
	// order, starting from the smallest such key, until fn returns false
	// or an error, or the keyspace is exhausted.
	IterateFromPrefix(ctx context.Context, prefix []byte, fn func(key, value []byte) (bool, error)) error

	// Sync forces buffered writes to durable storage. The updater calls
	// this once, on the Versions table, as the final step of a tag
	// commit (data.py's db.vers.put(tag, obj, sync=True)).
	Sync() error

	Close() error
}
