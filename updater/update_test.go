package updater

import (
	"context"
	"strings"
	"testing"

	"github.com/bootlin/elixir/store"
)

type fakeCollaborator struct {
	lines    map[string][]string
	blobs    map[string][]byte
	calls    map[string]int
}

func newFakeCollaborator() *fakeCollaborator {
	return &fakeCollaborator{lines: map[string][]string{}, blobs: map[string][]byte{}, calls: map[string]int{}}
}

func argsKey(args []string) string {
	return strings.Join(args, " ")
}

func (f *fakeCollaborator) Script(ctx context.Context, args ...string) ([]byte, error) {
	f.calls[argsKey(args)]++
	return f.blobs[argsKey(args)], nil
}

func (f *fakeCollaborator) ScriptLines(ctx context.Context, args ...string) ([]string, error) {
	f.calls[argsKey(args)]++
	return f.lines[argsKey(args)], nil
}

func TestUpdateIndexesNewTagAndIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	db, err := store.Open(dir, false)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer db.Close()

	fc := newFakeCollaborator()
	fc.lines["list-blobs -f v1.0"] = []string{"hash1 kernel/sched/core.c"}
	fc.lines["parse-defs hash1 kernel/sched/core.c C"] = []string{"schedule function 10"}
	fc.lines["parse-docs hash1 kernel/sched/core.c"] = nil
	fc.lines["tokenize-file -b hash1 C"] = []string{"", "schedule"}

	u := &Updater{DB: db, Collab: fc, Workers: 2}
	ctx := context.Background()

	if err := u.Update(ctx, "v1.0"); err != nil {
		t.Fatalf("Update: %v", err)
	}

	exists, err := db.Versions.Exists(ctx, []byte("v1.0"))
	if err != nil || !exists {
		t.Fatalf("expected v1.0 to be fully indexed: exists=%v err=%v", exists, err)
	}

	defsRaw, ok, err := db.Definitions.Get(ctx, []byte("schedule"))
	if err != nil || !ok {
		t.Fatalf("expected a definitions entry for 'schedule': ok=%v err=%v", ok, err)
	}
	if len(defsRaw) == 0 {
		t.Fatalf("expected non-empty definitions entry")
	}

	callsBefore := fc.calls["list-blobs -f v1.0"]
	if err := u.Update(ctx, "v1.0"); err != nil {
		t.Fatalf("second Update: %v", err)
	}
	if fc.calls["list-blobs -f v1.0"] != callsBefore {
		t.Fatalf("expected re-indexing an already-indexed tag to be a no-op, but list-blobs was called again")
	}
}

func TestUpdateSkipsDefSitesInRefs(t *testing.T) {
	dir := t.TempDir()
	db, err := store.Open(dir, false)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer db.Close()

	fc := newFakeCollaborator()
	fc.lines["list-blobs -f v1.0"] = []string{"hash1 kernel/sched/core.c"}
	fc.lines["parse-defs hash1 kernel/sched/core.c C"] = []string{"schedule function 10"}
	fc.lines["parse-docs hash1 kernel/sched/core.c"] = nil
	// "schedule" token appears at line 10 (the def site, should be
	// excluded from refs) via one leading separator run advancing to
	// line 10, then the identifier, then another occurrence later.
	fc.lines["tokenize-file -b hash1 C"] = []string{
		strings.Repeat("\x01", 9), "schedule", "\x01", "schedule",
	}

	u := &Updater{DB: db, Collab: fc, Workers: 1}
	ctx := context.Background()
	if err := u.Update(ctx, "v1.0"); err != nil {
		t.Fatalf("Update: %v", err)
	}

	refsRaw, ok, err := db.References.Get(ctx, []byte("schedule"))
	if err != nil {
		t.Fatalf("Get refs: %v", err)
	}
	if !ok {
		t.Fatalf("expected a references entry for 'schedule' (the second occurrence at line 11)")
	}
	if strings.Contains(string(refsRaw), "10") {
		t.Fatalf("expected line 10 (the def site) to be excluded from refs, got %q", refsRaw)
	}
}
