package record

import (
	"reflect"
	"testing"

	"github.com/bootlin/elixir/family"
)

func TestPathListRoundTrip(t *testing.T) {
	pl := NewPathList()
	pl.Append(3, "include/linux/sched.h")
	pl.Append(1, "kernel/sched/core.c")
	pl.Append(2, "Makefile")

	decoded := DecodePathList(pl.Pack())
	got := decoded.Iter()
	want := []PathEntry{
		{BlobID: 3, Path: "include/linux/sched.h"},
		{BlobID: 1, Path: "kernel/sched/core.c"},
		{BlobID: 2, Path: "Makefile"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestDefListRoundTripAndOrdering(t *testing.T) {
	dl := NewDefList()
	dl.Append(5, family.DefFunction, 10, family.C)
	dl.Append(1, family.DefFunction, 20, family.C)
	dl.Append(3, family.DefMacro, 5, family.C)

	packed := dl.Pack()
	decoded := DecodeDefList(packed)

	entries := decoded.Iter()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].BlobID < entries[i-1].BlobID {
			t.Fatalf("entries not sorted ascending by BlobId: %+v", entries)
		}
	}

	families := decoded.Families()
	if len(families) != 1 || families[0] != family.C {
		t.Fatalf("got families %v, want [C]", families)
	}
}

func TestDefListFamiliesIsO1NoDecode(t *testing.T) {
	dl := NewDefList()
	dl.Append(1, family.DefVariable, 1, family.C)
	dl.Append(2, family.DefConfig, 1, family.Kconfig)

	// Families() must reflect both families even though Pack()+decode
	// never re-walks the entry list to compute it.
	decoded := DecodeDefList(dl.Pack())
	fams := decoded.Families()
	has := map[family.Family]bool{}
	for _, f := range fams {
		has[f] = true
	}
	if !has[family.C] || !has[family.Kconfig] {
		t.Fatalf("expected both C and K families, got %v", fams)
	}
}

func TestDefListExists(t *testing.T) {
	dl := NewDefList()
	dl.Append(7, family.DefStruct, 42, family.C)
	decoded := DecodeDefList(dl.Pack())
	if !decoded.Exists(7, 42) {
		t.Fatalf("expected Exists(7,42) true")
	}
	if decoded.Exists(7, 43) {
		t.Fatalf("expected Exists(7,43) false")
	}
}

func TestDefListUnknownTypeSkipped(t *testing.T) {
	dl := NewDefList()
	dl.Append(1, family.DefType("bogus"), 1, family.C)
	if len(dl.Iter()) != 0 {
		t.Fatalf("expected unknown DefType to be silently dropped")
	}
}

func TestRefListRoundTrip(t *testing.T) {
	rl := NewRefList()
	rl.Append(4, []int{10, 20, 30}, family.C)
	rl.Append(2, []int{5}, family.Kconfig)
	rl.Append(9, nil, family.C) // no-op: empty lines

	decoded := DecodeRefList(rl.Pack())
	entries := decoded.Iter()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (empty-lines append should be a no-op)", len(entries))
	}
	if entries[0].BlobID != 2 || entries[1].BlobID != 4 {
		t.Fatalf("entries not sorted by BlobId ascending: %+v", entries)
	}
	if !reflect.DeepEqual(entries[1].Lines, []int{10, 20, 30}) {
		t.Fatalf("got lines %v, want [10 20 30]", entries[1].Lines)
	}
}
