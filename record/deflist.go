package record

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bootlin/elixir/family"
)

// DefEntry is one definition site: an identifier was defined as Type at
// Line in blob BlobID, in a file classified under Family.
type DefEntry struct {
	BlobID int
	Type   family.DefType
	Line   int
	Family family.Family
}

// DefList is the packed encoding of one identifier's definition sites:
// "<blobid><type-letter><line><family-letter>,"-joined entries, a literal
// '#', then a deduplicated comma-joined list of family letters that lets
// Families() answer in O(1) without decoding the entry list. Ported from
// data.py's DefList.
type DefList struct {
	entries  []DefEntry
	families map[family.Family]struct{}
}

// NewDefList returns an empty DefList.
func NewDefList() *DefList {
	return &DefList{families: map[family.Family]struct{}{}}
}

// DecodeDefList parses a packed DefList.
func DecodeDefList(data []byte) *DefList {
	dl := &DefList{families: map[family.Family]struct{}{}}
	parts := strings.SplitN(string(data), "#", 2)
	entryData := parts[0]
	if len(parts) == 2 {
		for _, f := range strings.Split(parts[1], ",") {
			if f != "" {
				dl.families[family.Family(f)] = struct{}{}
			}
		}
	}
	if entryData == "" {
		return dl
	}
	for _, raw := range strings.Split(entryData, ",") {
		if raw == "" {
			continue
		}
		e, ok := parseDefEntry(raw)
		if !ok {
			continue
		}
		dl.entries = append(dl.entries, e)
	}
	sort.SliceStable(dl.entries, func(i, j int) bool { return dl.entries[i].BlobID < dl.entries[j].BlobID })
	return dl
}

// parseDefEntry decodes "<digits><letter><digits><letter>" (the form
// captured by data.py's deflist_regex).
func parseDefEntry(raw string) (DefEntry, bool) {
	i := 0
	for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
		i++
	}
	if i == 0 || i == len(raw) {
		return DefEntry{}, false
	}
	blobID, err := strconv.Atoi(raw[:i])
	if err != nil {
		return DefEntry{}, false
	}
	typeLetter := raw[i]
	i++
	lineStart := i
	for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
		i++
	}
	if i == len(raw) {
		return DefEntry{}, false
	}
	line, err := strconv.Atoi(raw[lineStart:i])
	if err != nil {
		return DefEntry{}, false
	}
	famLetter := raw[i]

	defType, ok := family.DefTypeFromLetter(typeLetter)
	if !ok {
		return DefEntry{}, false
	}
	return DefEntry{BlobID: blobID, Type: defType, Line: line, Family: family.Family(famLetter)}, true
}

// Append adds one definition site, skipping unknown DefTypes the way
// data.py's DefList.append silently no-ops on an unrecognized type.
func (dl *DefList) Append(id int, t family.DefType, line int, fam family.Family) {
	if _, ok := t.Letter(); !ok {
		return
	}
	dl.entries = append(dl.entries, DefEntry{BlobID: id, Type: t, Line: line, Family: fam})
	dl.families[fam] = struct{}{}
}

// Iter returns every entry sorted by BlobId ascending.
func (dl *DefList) Iter() []DefEntry {
	out := make([]DefEntry, len(dl.entries))
	copy(out, dl.entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].BlobID < out[j].BlobID })
	return out
}

// Families returns the set of families this identifier was defined in,
// without decoding the entry list — the packed trailer after '#' already
// holds it.
func (dl *DefList) Families() []family.Family {
	out := make([]family.Family, 0, len(dl.families))
	for f := range dl.families {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Exists reports whether (blobID, line) is present among the entries,
// without caring about type/family — used by the updater's stage-3 merge
// to exclude a tag's own definition sites from that tag's reference list.
func (dl *DefList) Exists(blobID, line int) bool {
	for _, e := range dl.entries {
		if e.BlobID == blobID && e.Line == line {
			return true
		}
	}
	return false
}

// Pack serializes the list back to its wire format.
func (dl *DefList) Pack() []byte {
	var b strings.Builder
	for i, e := range dl.entries {
		letter, ok := e.Type.Letter()
		if !ok {
			continue
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(e.BlobID))
		b.WriteByte(letter)
		b.WriteString(strconv.Itoa(e.Line))
		b.WriteString(string(e.Family))
	}
	b.WriteByte('#')
	families := dl.Families()
	for i, f := range families {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(string(f))
	}
	return []byte(b.String())
}
