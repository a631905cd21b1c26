package record

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bootlin/elixir/family"
)

// RefEntry is one blob's worth of reference (or doc-comment, or DT
// compatible-string) sites for one identifier: the line numbers it occurs
// on within BlobID, classified under Family.
type RefEntry struct {
	BlobID int
	Lines  []int
	Family family.Family
}

// RefList is the packed encoding used for references, doc-comments and DT
// compatible-string occurrences alike: lines of
// "<blobid>:<line>,<line>,...:<family>\n". Ported from data.py's RefList
// (also backing docs/comps/comps_docs, which reuse the same format).
type RefList struct {
	entries []RefEntry
}

// NewRefList returns an empty RefList.
func NewRefList() *RefList {
	return &RefList{}
}

// DecodeRefList parses a packed RefList, sorted by BlobId ascending.
func DecodeRefList(data []byte) *RefList {
	rl := &RefList{}
	s := string(data)
	if s == "" {
		return rl
	}
	for _, line := range strings.Split(s, "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ":", 3)
		if len(parts) != 3 {
			continue
		}
		id, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		var lines []int
		for _, ls := range strings.Split(parts[1], ",") {
			if ls == "" {
				continue
			}
			n, err := strconv.Atoi(ls)
			if err == nil {
				lines = append(lines, n)
			}
		}
		rl.entries = append(rl.entries, RefEntry{BlobID: id, Lines: lines, Family: family.Family(parts[2])})
	}
	sort.SliceStable(rl.entries, func(i, j int) bool { return rl.entries[i].BlobID < rl.entries[j].BlobID })
	return rl
}

// Append adds one blob's worth of line occurrences. A call with no lines is
// a no-op, mirroring add_to_reflist's "append remaining non-empty line
// lists" behavior in non_gen_update.py.
func (rl *RefList) Append(id int, lines []int, fam family.Family) {
	if len(lines) == 0 {
		return
	}
	rl.entries = append(rl.entries, RefEntry{BlobID: id, Lines: lines, Family: fam})
}

// Iter returns every entry sorted by BlobId ascending.
func (rl *RefList) Iter() []RefEntry {
	out := make([]RefEntry, len(rl.entries))
	copy(out, rl.entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].BlobID < out[j].BlobID })
	return out
}

// Pack serializes the list back to its wire format.
func (rl *RefList) Pack() []byte {
	var b strings.Builder
	for _, e := range rl.entries {
		b.WriteString(strconv.Itoa(e.BlobID))
		b.WriteByte(':')
		for i, l := range e.Lines {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(l))
		}
		b.WriteByte(':')
		b.WriteString(string(e.Family))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
