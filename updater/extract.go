package updater

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bootlin/elixir/collaborator"
	"github.com/bootlin/elixir/compat"
	"github.com/bootlin/elixir/family"
	"github.com/bootlin/elixir/ident"
	"github.com/bootlin/elixir/lexer"
)

// defOccurrence is one definition site extracted for a single blob, not yet
// merged into the store.
type defOccurrence struct {
	Type family.DefType
	Line int
}

// getDefs asks the collaborator to parse definitions out of one blob.
// Skipped for families the definition extractor doesn't understand ("None"
// in the original, and Make — Makefiles don't define identifiers). Ported
// from non_gen_update.py's get_defs.
func getDefs(ctx context.Context, collab collaborator.Collaborator, hash, filename string, fam family.Family) (map[string][]defOccurrence, error) {
	if fam == family.Unknown || fam == family.Make {
		return nil, nil
	}
	lines, err := collab.ScriptLines(ctx, "parse-defs", hash, filename, string(fam))
	if err != nil {
		return nil, fmt.Errorf("parse-defs %s: %w", filename, err)
	}

	out := map[string][]defOccurrence{}
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			continue
		}
		id, typeName, lineStr := fields[0], fields[1], fields[2]
		if !ident.Valid(id) {
			continue
		}
		lineNum, err := strconv.Atoi(lineStr)
		if err != nil {
			continue
		}
		out[id] = append(out[id], defOccurrence{Type: family.DefType(typeName), Line: lineNum})
	}
	return out, nil
}

// refOccurrence groups the lines one blob+family pair mentioned an
// identifier on.
type refOccurrence struct {
	Family family.Family
	Lines  []int
}

// getRefs asks the collaborator to tokenize one blob and returns every
// identifier it mentions along with the lines it occurs on. Kconfig
// symbols are stored CONFIG_-prefixed so they line up with how they're
// referenced from C/Makefiles; conversely, when scanning a Makefile only
// tokens that are already CONFIG_-prefixed are kept; every other token in
// a Makefile is build-system plumbing, not a useful cross-reference
// target. Ported from non_gen_update.py's get_refs.
func getRefs(ctx context.Context, collab collaborator.Collaborator, hash string, fam family.Family) (map[string]refOccurrence, error) {
	if fam == family.Unknown {
		return nil, nil
	}
	lines, err := collab.ScriptLines(ctx, "tokenize-file", "-b", hash, string(fam))
	if err != nil {
		return nil, fmt.Errorf("tokenize-file %s: %w", hash, err)
	}

	out := map[string][]int{}
	lineNum := 1
	// The collaborator always emits a leading separator run (possibly
	// empty) before the first identifier, so the first line is odd.
	even := false
	for _, l := range lines {
		if even {
			id := l
			if fam == family.Kconfig {
				id = ident.WithConfigPrefix(id)
			}
			if fam == family.Make && !strings.HasPrefix(id, ident.ConfigPrefix) {
				even = !even
				continue
			}
			if ident.Valid(id) {
				out[id] = append(out[id], lineNum)
			}
		} else {
			lineNum += strings.Count(l, "\x01")
		}
		even = !even
	}

	result := make(map[string]refOccurrence, len(out))
	for id, lns := range out {
		result[id] = refOccurrence{Family: fam, Lines: lns}
	}
	return result, nil
}

// getDocs asks the collaborator to parse doc-comments out of one blob.
// Ported from non_gen_update.py's get_docs.
func getDocs(ctx context.Context, collab collaborator.Collaborator, hash, filename string, fam family.Family) (map[string][]int, error) {
	if fam == family.Unknown || fam == family.Make {
		return nil, nil
	}
	lines, err := collab.ScriptLines(ctx, "parse-docs", hash, filename)
	if err != nil {
		return nil, fmt.Errorf("parse-docs %s: %w", filename, err)
	}
	return collectIdentLinePairs(lines), nil
}

func collectIdentLinePairs(lines []string) map[string][]int {
	out := map[string][]int{}
	for _, line := range lines {
		sp := strings.IndexByte(line, ' ')
		if sp < 0 {
			continue
		}
		id := line[:sp]
		n, err := strconv.Atoi(line[sp+1:])
		if err != nil {
			continue
		}
		out[id] = append(out[id], n)
	}
	return out
}

// compatibleCSourceRe matches driver of_device_id-style compatible-string
// table entries in C source (e.g. `.compatible = "vendor,chip"`).
var compatibleCSourceRe = `\.compatible\s*=\s*"([^"]*)"`

// getComps extracts DT compatible-string occurrences from a blob's raw
// content, in-process (see package compat's doc comment for why this
// doesn't shell out to find_compatible_dts). Runs for C source (driver
// match tables) and device-tree source alike; skipped for Kconfig and
// Makefiles, which don't carry compatible strings. Ported from
// non_gen_update.py's get_comps.
func getComps(ctx context.Context, collab collaborator.Collaborator, hash string, fam family.Family) (map[string][]int, error) {
	if fam == family.Unknown || fam == family.Kconfig || fam == family.Make {
		return nil, nil
	}
	content, err := collab.Script(ctx, "get-blob", hash)
	if err != nil {
		return nil, fmt.Errorf("get-blob %s: %w", hash, err)
	}

	var occs []compat.Occurrence
	if fam == family.DTS {
		tokens := lexer.Run(lexer.DTSRules(), string(content))
		occs = compat.Extract(tokens)
	} else {
		occs = extractFromRegex(string(content), compatibleCSourceRe)
	}

	out := map[string][]int{}
	for _, o := range occs {
		out[o.Value] = append(out[o.Value], o.Line)
	}
	return out, nil
}

// compatibleDocRe matches a DT-binding documentation line naming a
// compatible string (YAML "const:" entries, "- vendor,chip" list items such
// as those under "enum:", or legacy .txt "compatible: \"...\"" lines).
var compatibleDocRe = `(?m)(?:(?:compatible|const)\s*[:=]\s*|^\s*-\s*)"?([a-zA-Z0-9,._+-]+,[a-zA-Z0-9,._+-]+)"?`

// getCompsDocs extracts compatible-string mentions from DT-binding
// documentation. Always tagged family.Binding, since binding docs aren't
// device-tree source themselves. Ported from non_gen_update.py's
// get_comps_docs; the exact original extraction grammar (FindCompatibleDTS,
// not in the retrieved source pack) is approximated here with a
// line-oriented regex scan.
func getCompsDocs(ctx context.Context, collab collaborator.Collaborator, hash string) (map[string][]int, error) {
	content, err := collab.Script(ctx, "get-blob", hash)
	if err != nil {
		return nil, fmt.Errorf("get-blob %s: %w", hash, err)
	}
	occs := extractFromRegex(string(content), compatibleDocRe)
	out := map[string][]int{}
	for _, o := range occs {
		out[o.Value] = append(out[o.Value], o.Line)
	}
	return out, nil
}
