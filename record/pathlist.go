// Package record implements the packed, self-delimiting, append-only byte
// encodings used as values in the index store: PathList (a tag's blob
// manifest), DefList (per-identifier definition sites) and RefList
// (per-identifier reference/doc-comment/compatible-string sites). Ported
// byte-for-byte from elixir/data.py's PathList/DefList/RefList so existing
// index dumps from the original implementation stay readable.
package record

import (
	"strconv"
	"strings"
)

// PathEntry is one (BlobId, path) pair in a tag's manifest.
type PathEntry struct {
	BlobID int
	Path   string
}

// PathList is the packed encoding of a tag's full blob manifest: lines of
// "<blobid> <path>\n". Ported from data.py's PathList.
type PathList struct {
	entries []PathEntry
}

// NewPathList returns an empty PathList, ready to Append to.
func NewPathList() *PathList {
	return &PathList{}
}

// DecodePathList parses a packed PathList. An empty input decodes to an
// empty list.
func DecodePathList(data []byte) *PathList {
	pl := &PathList{}
	s := string(data)
	if s == "" {
		return pl
	}
	lines := strings.Split(s, "\n")
	for _, line := range lines {
		if line == "" {
			continue
		}
		sp := strings.IndexByte(line, ' ')
		if sp < 0 {
			continue
		}
		id, err := strconv.Atoi(line[:sp])
		if err != nil {
			continue
		}
		pl.entries = append(pl.entries, PathEntry{BlobID: id, Path: line[sp+1:]})
	}
	return pl
}

// Append adds one (id, path) pair. Order of appends is preserved; callers
// that need BlobId-ascending order (as the updater does when building a
// final tag manifest) must sort before appending.
func (pl *PathList) Append(id int, path string) {
	pl.entries = append(pl.entries, PathEntry{BlobID: id, Path: path})
}

// Iter returns every entry in append order.
func (pl *PathList) Iter() []PathEntry {
	return pl.entries
}

// Pack serializes the list back to its wire format.
func (pl *PathList) Pack() []byte {
	var b strings.Builder
	for _, e := range pl.entries {
		b.WriteString(strconv.Itoa(e.BlobID))
		b.WriteByte(' ')
		b.WriteString(e.Path)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
