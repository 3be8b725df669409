package fofio

import (
	"errors"
	"testing"

	"github.com/phil-mansfield/fofcat/lib/eq"
)

// writeCatalog writes a tab and ids catalog where particle j of the ids
// files has ID 1000 + j.
func writeCatalog(
	t *testing.T, dir string, tabCounts, idCounts []int,
) (*fakeGroups, []uint64) {
	t.Helper()
	g := writeTabCatalog(t, dir, testSnap, HostOrder(), false, tabCounts)
	ids := make([]uint64, g.nIDs())
	for j := range ids { ids[j] = uint64(1000 + j) }

	// The last ids segment gets whatever the others don't.
	counts := append([]int{}, idCounts...)
	last := len(ids)
	for _, n := range idCounts[:len(idCounts) - 1] { last -= n }
	counts[len(counts) - 1] = last

	writeIDsCatalog(t, dir, testSnap, HostOrder(), counts, ids)
	return g, ids
}

func TestReadCatalog(t *testing.T) {
	dir := t.TempDir()
	g, ids := writeCatalog(t, dir, []int{ 2, 0, 3 }, []int{ 17, 0 })
	c := Config{ IDWidth: IDWidth64, ReadIDs: true }

	cat, err := ReadCatalog(dir, testSnap, c)
	if err != nil { t.Fatalf("Expected read to succeed, got '%s'.", err) }
	checkGroups(t, cat.GroupCatalog, g)

	if cat.IDs == nil {
		t.Fatalf("Expected IDs to be read.")
	} else if !eq.Slices(cat.IDs.ID64, ids) {
		t.Errorf("Expected IDs %d, got %d.", ids, cat.IDs.ID64)
	}

	for i := 0; i < cat.N(); i++ {
		members, err := cat.Members(i)
		start, end := int(g.offset[i]), int(g.offset[i] + g.len[i])
		if err != nil {
			t.Errorf("%d) Expected Members to succeed, got '%s'.", i, err)
		} else if !eq.Slices(members, ids[start: end]) {
			t.Errorf("%d) Expected members %d, got %d.",
				i, ids[start: end], members)
		}
	}

	for _, i := range []int{ -1, cat.N() } {
		if _, err := cat.Members(i); err == nil {
			t.Errorf("Expected Members(%d) to fail for %d halos.", i, cat.N())
		}
	}
}

func TestReadCatalogNoIDs(t *testing.T) {
	dir := t.TempDir()
	g := writeTabCatalog(t, dir, testSnap, HostOrder(), false, []int{ 4 })

	cat, err := ReadCatalog(dir, testSnap, Config{ ReadIDs: false })
	if err != nil { t.Fatalf("Expected read to succeed, got '%s'.", err) }
	checkGroups(t, cat.GroupCatalog, g)

	if cat.IDs != nil {
		t.Errorf("Expected IDs to be skipped.")
	}
	if _, err := cat.Members(0); err == nil {
		t.Errorf("Expected Members to fail without IDs.")
	}
}

func TestReadCatalogConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	g := writeTabCatalog(t, dir, testSnap, HostOrder(), false, []int{ 2 })
	writeIDsCatalog(t, dir, testSnap, HostOrder(), []int{ g.nIDs() },
		make([]uint32, g.nIDs()))

	tests := []struct{
		config []Config
		ids bool
	} {
		{nil, true},
		{[]Config{ DefaultConfig }, true},
		{[]Config{ { } }, false},
		{[]Config{ { Swap: false } }, false},
		{[]Config{ { ReadIDs: true } }, true},
	}

	for i := range tests {
		cat, err := ReadCatalog(dir, testSnap, tests[i].config...)
		if err != nil {
			t.Errorf("%d) Expected read to succeed, got '%s'.", i, err)
		} else if (cat.IDs != nil) != tests[i].ids {
			t.Errorf("%d) Expected IDs read = %v, got %v.",
				i, tests[i].ids, cat.IDs != nil)
		}
	}
}

func TestReadCatalogMissingIDs(t *testing.T) {
	dir := t.TempDir()
	writeTabCatalog(t, dir, testSnap, HostOrder(), false, []int{ 4 })

	_, err := ReadCatalog(dir, testSnap)
	segErr := &SegmentError{ }
	if !errors.Is(err, ErrMissingFile) {
		t.Errorf("Expected ErrMissingFile, got %v.", err)
	} else if !errors.As(err, &segErr) || segErr.Kind != IDs {
		t.Errorf("Expected the error to name an ids segment, got %v.", err)
	}
}

func TestMembersOutOfRange(t *testing.T) {
	dir := t.TempDir()
	g := writeTabCatalog(t, dir, testSnap, HostOrder(), false, []int{ 3 })
	// One ID short of what the last halo needs.
	ids := make([]uint32, g.nIDs() - 1)
	writeIDsCatalog(t, dir, testSnap, HostOrder(), []int{ len(ids) }, ids)

	cat, err := ReadCatalog(dir, testSnap)
	if err != nil { t.Fatalf("Expected read to succeed, got '%s'.", err) }

	if _, err := cat.Members(1); err != nil {
		t.Errorf("Expected Members(1) to succeed, got '%s'.", err)
	}
	if _, err := cat.Members(2); err == nil {
		t.Errorf("Expected Members(2) to run past the end of the IDs.")
	}
}
