package query

import (
	"context"
	"fmt"
	"testing"

	"github.com/bootlin/elixir/family"
	"github.com/bootlin/elixir/record"
	"github.com/bootlin/elixir/store"
)

func setupDB(t *testing.T) *store.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := store.Open(dir, true)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// fakeCollaborator answers the type/dir/file subcommands the way spec.md
// §6's table says the real collaborator does, from canned per-call tables
// keyed by "tag\x00path".
type fakeCollaborator struct {
	types map[string]string
	dirs  map[string][]string
	files map[string]string
}

func (f *fakeCollaborator) Script(ctx context.Context, args ...string) ([]byte, error) {
	key := args[1] + "\x00" + args[2]
	switch args[0] {
	case "type":
		return []byte(f.types[key]), nil
	case "file":
		out, ok := f.files[key]
		if !ok {
			return nil, fmt.Errorf("no such file: %s", key)
		}
		return []byte(out), nil
	}
	return nil, fmt.Errorf("unexpected script %v", args)
}

func (f *fakeCollaborator) ScriptLines(ctx context.Context, args ...string) ([]string, error) {
	if args[0] != "dir" {
		return nil, fmt.Errorf("unexpected script %v", args)
	}
	return f.dirs[args[1]+"\x00"+args[2]], nil
}

func TestEngineTypeAndDirAndFile(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	collab := &fakeCollaborator{
		types: map[string]string{
			"v1.0\x00kernel/sched/core.c": "blob",
			"v1.0\x00kernel":              "tree",
			"v1.0\x00no/such/path":        "",
		},
		dirs: map[string][]string{
			"v1.0\x00kernel": {
				"tree sched 4096 40755",
				"blob Kconfig 128 100644",
			},
		},
		files: map[string]string{
			"v1.0\x00kernel/sched/core.c": "#define FOO 1\n",
		},
	}
	e := NewEngine(db, collab)

	pt, err := e.Type(ctx, "v1.0", "kernel/sched/core.c")
	if err != nil || pt != PathBlob {
		t.Fatalf("Type(core.c) = %v, %v; want blob, nil", pt, err)
	}
	pt, err = e.Type(ctx, "v1.0", "no/such/path")
	if err != nil || pt != PathAbsent {
		t.Fatalf("Type(no/such/path) = %v, %v; want absent, nil", pt, err)
	}

	entries, err := e.Dir(ctx, "v1.0", "kernel")
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	want := []DirEntry{
		{Type: PathBlob, Name: "Kconfig", Size: 128, Mode: 0o100644},
		{Type: PathTree, Name: "sched", Size: 4096, Mode: 0o40755},
	}
	if len(entries) != len(want) {
		t.Fatalf("Dir(kernel) = %+v, want %+v", entries, want)
	}
	for i, entry := range entries {
		if entry != want[i] {
			t.Fatalf("Dir(kernel)[%d] = %+v, want %+v", i, entry, want[i])
		}
	}

	content, err := e.File(ctx, "v1.0", "kernel/sched/core.c")
	if err != nil || content != "#define FOO 1\n" {
		t.Fatalf("File = %q, %v; want %q, nil", content, err, "#define FOO 1\n")
	}
}

func TestEngineVersionsAndLatest(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	for _, tag := range []string{"v1.0", "v2.0"} {
		pl := record.NewPathList()
		pl.Append(1, "Makefile")
		if err := db.Versions.Put(ctx, []byte(tag), pl.Pack()); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	if err := db.Variables.Put(ctx, []byte("latestTag"), []byte("v2.0")); err != nil {
		t.Fatalf("Put latestTag: %v", err)
	}

	e := NewEngine(db, nil)
	tags, err := e.Versions(ctx)
	if err != nil {
		t.Fatalf("Versions: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("got %v, want 2 tags", tags)
	}

	latest, ok, err := e.Latest(ctx)
	if err != nil || !ok || latest != "v2.0" {
		t.Fatalf("Latest = %q, %v, %v; want v2.0, true, nil", latest, ok, err)
	}
}

func TestEngineIdentExcludesOutOfTagBlobs(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	pl := record.NewPathList()
	pl.Append(1, "kernel/sched/core.c")
	if err := db.Versions.Put(ctx, []byte("v1.0"), pl.Pack()); err != nil {
		t.Fatalf("Put: %v", err)
	}

	dl := record.NewDefList()
	dl.Append(1, family.DefFunction, 1, family.C)
	dl.Append(999, family.DefFunction, 1, family.C) // blob not in v1.0's manifest
	if err := db.Definitions.Put(ctx, []byte("foo"), dl.Pack()); err != nil {
		t.Fatalf("Put: %v", err)
	}

	e := NewEngine(db, nil)
	result, err := e.Ident(ctx, "v1.0", "foo")
	if err != nil {
		t.Fatalf("Ident: %v", err)
	}
	if len(result.Definitions) != 1 {
		t.Fatalf("got %d definitions, want 1 (blob 999 isn't in v1.0's manifest): %+v", len(result.Definitions), result.Definitions)
	}
}

func TestEngineFamilyAndKeys(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	for _, id := range []string{"alpha", "alphabet", "beta"} {
		if err := db.DefsCache[family.C].Put(ctx, []byte(id), []byte{}); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	e := NewEngine(db, nil)
	all, err := e.Family(ctx, family.C)
	if err != nil {
		t.Fatalf("Family: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %v, want 3 identifiers", all)
	}

	matches, err := e.Keys(ctx, family.C, "alpha")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %v, want [alpha alphabet]", matches)
	}
}
