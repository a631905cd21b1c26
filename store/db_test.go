package store

import (
	"context"
	"testing"

	"github.com/bootlin/elixir/store/storetest"
)

func TestBadgerStoreConformance(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenBadger(dir, Variables)
	if err != nil {
		t.Fatalf("OpenBadger: %v", err)
	}
	defer s.Close()
	storetest.Run(t, s)
}

func TestOpenOpensAllTablesAndClosesCleanly(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir, true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	ctx := context.Background()
	if err := db.Versions.Put(ctx, []byte("v1.0"), []byte("manifest")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if db.CompatibleDTS == nil || db.CompatibleDTSDocs == nil {
		t.Fatalf("expected DT-compatible tables to be opened when dtsComp=true")
	}
	for _, f := range defsCacheFamilies {
		if db.DefsCache[f] == nil {
			t.Fatalf("expected defs cache for family %v", f)
		}
	}

	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOpenWithoutDTSComp(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()
	if db.CompatibleDTS != nil || db.CompatibleDTSDocs != nil {
		t.Fatalf("expected DT-compatible tables to stay nil when dtsComp=false")
	}
}
