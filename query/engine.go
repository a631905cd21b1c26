package query

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bootlin/elixir/collaborator"
	"github.com/bootlin/elixir/family"
	"github.com/bootlin/elixir/ident"
	"github.com/bootlin/elixir/record"
	"github.com/bootlin/elixir/store"
)

const latestTagKey = "latestTag"

// Engine answers the named queries spec.md's query surface defines:
// latest, versions, type, dir, file, family, dts-comp, keys, ident.
type Engine struct {
	DB       *store.DB
	Collab   collaborator.Collaborator
	manifest *manifestCache
}

// NewEngine builds a query engine over db, using collab to answer the
// queries (type, dir, file) that read straight through to the repository
// collaborator instead of the index.
func NewEngine(db *store.DB, collab collaborator.Collaborator) *Engine {
	return &Engine{DB: db, Collab: collab, manifest: newManifestCache()}
}

// manifestIndex is a tag's decoded PathList, indexed BlobId -> path for the
// occurrence-record queries (Ident/definitions/references/DTSComp) that
// start from a BlobId and need the path it resolves to within this tag.
type manifestIndex struct {
	byID map[int]string
}

func buildManifestIndex(pl *record.PathList) *manifestIndex {
	idx := &manifestIndex{byID: map[int]string{}}
	for _, e := range pl.Iter() {
		idx.byID[e.BlobID] = e.Path
	}
	return idx
}

// manifestIndex loads (and caches) tag's decoded manifest index.
func (e *Engine) manifestIndex(ctx context.Context, tag string) (*manifestIndex, error) {
	if pl, ok := e.manifest.get(tag); ok {
		manifestCacheHits.Inc(1)
		return buildManifestIndex(pl), nil
	}
	manifestCacheMisses.Inc(1)
	raw, ok, err := e.DB.Versions.Get(ctx, []byte(tag))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("tag %q is not indexed", tag)
	}
	pl := record.DecodePathList(raw)
	e.manifest.put(tag, pl)
	return buildManifestIndex(pl), nil
}

// Latest returns the most recently indexed tag, as tracked by the updater.
func (e *Engine) Latest(ctx context.Context) (string, bool, error) {
	queriesServed.WithValues("latest").Inc(1)
	v, ok, err := e.DB.Variables.Get(ctx, []byte(latestTagKey))
	if err != nil || !ok {
		return "", ok, err
	}
	return string(v), true, nil
}

// Versions returns every fully indexed tag.
func (e *Engine) Versions(ctx context.Context) ([]string, error) {
	queriesServed.WithValues("versions").Inc(1)
	var tags []string
	err := e.DB.Versions.IterateFromPrefix(ctx, nil, func(k, v []byte) (bool, error) {
		tags = append(tags, string(k))
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(tags)
	return tags, nil
}

// File returns tag's decoded text contents of path, read straight through
// the collaborator's `file` subcommand (spec.md §6). Bytes are never
// persisted; invalid UTF-8 is replaced with the Unicode replacement
// character only here, at display time.
func (e *Engine) File(ctx context.Context, tag, path string) (string, error) {
	queriesServed.WithValues("file").Inc(1)
	raw, err := e.Collab.Script(ctx, "file", tag, path)
	if err != nil {
		return "", err
	}
	s := string(raw)
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "�")
	}
	return s, nil
}

// PathType is the collaborator's classification of a path within a tag's
// tree: a directory, a file, or nonexistent.
type PathType string

const (
	PathTree   PathType = "tree"
	PathBlob   PathType = "blob"
	PathAbsent PathType = "absent"
)

// DirEntry is one child of a directory listing, as the collaborator's
// `dir` subcommand reports it.
type DirEntry struct {
	Type PathType
	Name string
	Size int64
	Mode uint32 // POSIX file mode bits, as parsed from the subcommand's octal column
}

// Dir lists the immediate children of path within tag, via the
// collaborator's `dir` subcommand (spec.md §6: `<tree|blob> <name> <size>
// <octal-mode>` per line).
func (e *Engine) Dir(ctx context.Context, tag, path string) ([]DirEntry, error) {
	queriesServed.WithValues("dir").Inc(1)
	lines, err := e.Collab.ScriptLines(ctx, "dir", tag, path)
	if err != nil {
		return nil, err
	}
	entries := make([]DirEntry, 0, len(lines))
	for _, line := range lines {
		fields := strings.SplitN(line, " ", 4)
		if len(fields) != 4 {
			return nil, fmt.Errorf("dir %s %s: malformed collaborator output line %q", tag, path, line)
		}
		var kind PathType
		switch fields[0] {
		case "tree":
			kind = PathTree
		case "blob":
			kind = PathBlob
		default:
			return nil, fmt.Errorf("dir %s %s: unexpected entry type %q", tag, path, fields[0])
		}
		size, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("dir %s %s: bad size %q: %w", tag, path, fields[2], err)
		}
		mode, err := strconv.ParseUint(fields[3], 8, 32)
		if err != nil {
			return nil, fmt.Errorf("dir %s %s: bad mode %q: %w", tag, path, fields[3], err)
		}
		entries = append(entries, DirEntry{Type: kind, Name: fields[1], Size: size, Mode: uint32(mode)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Type classifies path within tag as a directory ("tree"), a file
// ("blob"), or nonexistent ("absent"), via the collaborator's `type`
// subcommand (spec.md §6).
func (e *Engine) Type(ctx context.Context, tag, path string) (PathType, error) {
	queriesServed.WithValues("type").Inc(1)
	out, err := e.Collab.Script(ctx, "type", tag, path)
	if err != nil {
		return "", err
	}
	switch strings.TrimSpace(string(out)) {
	case "tree":
		return PathTree, nil
	case "blob":
		return PathBlob, nil
	case "":
		return PathAbsent, nil
	default:
		return "", fmt.Errorf("type %s %s: unexpected collaborator output %q", tag, path, out)
	}
}

// definitions returns every definition site of identifier that falls
// within tag's manifest (a DefList can carry entries from many tags'
// blobs; only the ones reachable from this tag's manifest are relevant
// to it). Backs the `ident` query's definitions half.
func (e *Engine) definitions(ctx context.Context, tag, identifier string) ([]SymbolInstance, error) {
	idx, err := e.manifestIndex(ctx, tag)
	if err != nil {
		return nil, err
	}
	raw, ok, err := e.DB.Definitions.Get(ctx, []byte(identifier))
	if err != nil || !ok {
		return nil, err
	}
	dl := record.DecodeDefList(raw)
	var out []SymbolInstance
	for _, entry := range dl.Iter() {
		path, ok := idx.byID[entry.BlobID]
		if !ok {
			continue
		}
		out = append(out, SymbolInstance{Path: path, Line: entry.Line, Type: entry.Type, Family: entry.Family})
	}
	return out, nil
}

// references resolves a RefList table (References or DocComments) for
// identifier against tag's manifest.
func (e *Engine) references(ctx context.Context, s store.Store, idx *manifestIndex, identifier string) ([]SymbolInstance, error) {
	raw, ok, err := s.Get(ctx, []byte(identifier))
	if err != nil || !ok {
		return nil, err
	}
	rl := record.DecodeRefList(raw)
	var out []SymbolInstance
	for _, entry := range rl.Iter() {
		path, ok := idx.byID[entry.BlobID]
		if !ok {
			continue
		}
		for _, line := range entry.Lines {
			out = append(out, SymbolInstance{Path: path, Line: line, Family: entry.Family})
		}
	}
	return out, nil
}

// Ident runs the full identifier lookup: definitions, references and
// doc-comments, all scoped to tag.
func (e *Engine) Ident(ctx context.Context, tag, identifier string) (*SymbolResult, error) {
	queriesServed.WithValues("ident").Inc(1)
	idx, err := e.manifestIndex(ctx, tag)
	if err != nil {
		return nil, err
	}
	defs, err := e.definitions(ctx, tag, identifier)
	if err != nil {
		return nil, err
	}
	refs, err := e.references(ctx, e.DB.References, idx, identifier)
	if err != nil {
		return nil, err
	}
	docs, err := e.references(ctx, e.DB.DocComments, idx, identifier)
	if err != nil {
		return nil, err
	}
	return &SymbolResult{Definitions: defs, References: refs, DocComments: docs}, nil
}

// Family lists every identifier ever defined in a file of fam, using the
// presence-only defs-cache table — this is a global (not tag-scoped)
// listing, matching generate_defs_caches's own scope in the original
// implementation.
func (e *Engine) Family(ctx context.Context, fam family.Family) ([]string, error) {
	queriesServed.WithValues("family").Inc(1)
	cache, ok := e.DB.DefsCache[fam]
	if !ok {
		return nil, fmt.Errorf("no defs cache for family %q", fam)
	}
	var out []string
	err := cache.IterateFromPrefix(ctx, nil, func(k, v []byte) (bool, error) {
		out = append(out, string(k))
		return true, nil
	})
	return out, err
}

// Keys returns every identifier with the given family that starts with
// prefix, for autocomplete.
func (e *Engine) Keys(ctx context.Context, fam family.Family, prefix string) ([]string, error) {
	queriesServed.WithValues("keys").Inc(1)
	cache, ok := e.DB.DefsCache[fam]
	if !ok {
		return nil, fmt.Errorf("no defs cache for family %q", fam)
	}
	var out []string
	err := cache.IterateFromPrefix(ctx, []byte(prefix), func(k, v []byte) (bool, error) {
		if !strings.HasPrefix(string(k), prefix) {
			return false, nil
		}
		out = append(out, string(k))
		return true, nil
	})
	return out, err
}

// DTSComp resolves a device-tree compatible string to every DTS occurrence
// (and, if present, binding-documentation occurrence) within tag.
func (e *Engine) DTSComp(ctx context.Context, tag, compatible string) (*SymbolResult, error) {
	queriesServed.WithValues("dts-comp").Inc(1)
	idx, err := e.manifestIndex(ctx, tag)
	if err != nil {
		return nil, err
	}
	if e.DB.CompatibleDTS == nil {
		return nil, fmt.Errorf("dts-comp support is not enabled for this index")
	}
	key := ident.QuoteCompatible(compatible)
	refs, err := e.references(ctx, e.DB.CompatibleDTS, idx, key)
	if err != nil {
		return nil, err
	}
	var docs []SymbolInstance
	if e.DB.CompatibleDTSDocs != nil {
		docs, err = e.references(ctx, e.DB.CompatibleDTSDocs, idx, key)
		if err != nil {
			return nil, err
		}
	}
	return &SymbolResult{References: refs, DocComments: docs}, nil
}
