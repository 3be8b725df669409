package fofio

import (
	"errors"
	"os"
	"testing"

	"github.com/phil-mansfield/fofcat/lib/eq"
)

func TestReadGroupIDs32(t *testing.T) {
	tests := []struct{
		counts []int
	} {
		{[]int{ 6 }},
		{[]int{ 2, 4 }},
		{[]int{ 3, 0, 3 }},
		{[]int{ 0, 0, 6 }},
		{[]int{ 1, 1, 1, 1, 1, 1 }},
	}

	ids := []uint32{ 17, 3, 99, 1<<31, 42, 0xffffffff }

	for i := range tests {
		dir := t.TempDir()
		writeIDsCatalog(t, dir, testSnap, HostOrder(), tests[i].counts, ids)

		cat, err := ReadGroupIDs(dir, testSnap)
		if err != nil {
			t.Errorf("%d) Expected counts = %d to be read, got error '%s'.",
				i, tests[i].counts, err.Error())
			continue
		}

		if cat.Width != IDWidth32 || cat.ID64 != nil {
			t.Errorf("%d) Expected 32-bit catalog, got width %d.",
				i, cat.Width)
		} else if !eq.Slices(cat.ID32, ids) {
			t.Errorf("%d) Expected IDs %d, got %d.", i, ids, cat.ID32)
		} else if cat.Len() != len(ids) {
			t.Errorf("%d) Expected Len() = %d, got %d.", i, len(ids), cat.Len())
		}
	}
}

func TestReadGroupIDs64(t *testing.T) {
	ids := []uint64{ 1, 1<<32, 1<<32 + 7, 1<<40 | 3, 0xffffffffffffffff }

	for _, swap := range []bool{ false, true } {
		dir := t.TempDir()
		writeIDsCatalog(t, dir, testSnap, FileOrder(swap),
			[]int{ 2, 0, 3 }, ids)

		cat, err := ReadGroupIDs(dir, testSnap,
			Config{ IDWidth: IDWidth64, Swap: swap })
		if err != nil {
			t.Errorf("swap = %v) Expected read to succeed, got '%s'.",
				swap, err.Error())
			continue
		}

		if !eq.Slices(cat.ID64, ids) {
			t.Errorf("swap = %v) Expected IDs %d, got %d.", swap, ids, cat.ID64)
		}
		for i := range ids {
			if cat.At(i) != ids[i] {
				t.Errorf("swap = %v) Expected At(%d) = %d, got %d.",
					swap, i, ids[i], cat.At(i))
			}
		}
	}
}

func TestReadGroupIDsSwap32(t *testing.T) {
	dir := t.TempDir()
	ids := []uint32{ 0x01020304, 0xa0b0c0d0, 5 }
	writeIDsCatalog(t, dir, testSnap, FileOrder(true), []int{ 1, 2 }, ids)

	cat, err := ReadGroupIDs(dir, testSnap, Config{ Swap: true })
	if err != nil { t.Fatalf("Expected read to succeed, got '%s'.", err) }
	if !eq.Slices(cat.ID32, ids) {
		t.Errorf("Expected IDs %x, got %x.", ids, cat.ID32)
	}
}

func TestReadGroupIDsHeader(t *testing.T) {
	dir := t.TempDir()
	ids := []uint32{ 1, 2, 3, 4, 5 }
	writeIDsCatalog(t, dir, testSnap, HostOrder(), []int{ 2, 3 }, ids)

	cat, err := ReadGroupIDs(dir, testSnap)
	if err != nil { t.Fatalf("Expected read to succeed, got '%s'.", err) }

	hd := cat.Header
	if hd.Kind != IDs || hd.IDCount != 2 || hd.TotalIDCount != 5 ||
		hd.SegmentFileCount != 2 || hd.SendOffset != 0 {
		t.Errorf("Segment 0 header read incorrectly: %+v", hd)
	}
}

func TestReadGroupIDsWrongWidth(t *testing.T) {
	dir := t.TempDir()
	writeIDsCatalog(t, dir, testSnap, HostOrder(), []int{ 2, 2 },
		[]uint32{ 1, 2, 3, 4 })

	_, err := ReadGroupIDs(dir, testSnap, Config{ IDWidth: IDWidth64 })
	if !errors.Is(err, ErrTruncatedSegment) {
		t.Errorf("Expected reading 32-bit IDs as 64-bit to give " +
			"ErrTruncatedSegment, got %v.", err)
	}
}

func TestReadGroupIDsTruncated(t *testing.T) {
	counts := []int{ 3, 2 }
	ids := []uint64{ 10, 20, 30, 40, 50 }

	for seg := range counts {
		dir := t.TempDir()
		writeIDsCatalog(t, dir, testSnap, HostOrder(), counts, ids)

		fileName := FileName(IDs, dir, testSnap, seg)
		data, err := os.ReadFile(fileName)
		if err != nil { t.Fatal(err.Error()) }
		writeFile(t, fileName, data[:len(data) - 1])

		_, err = ReadGroupIDs(dir, testSnap, Config{ IDWidth: IDWidth64 })
		segErr := &SegmentError{ }
		if !errors.Is(err, ErrTruncatedSegment) {
			t.Errorf("segment %d) Expected ErrTruncatedSegment, got %v.",
				seg, err)
		} else if !errors.As(err, &segErr) || segErr.Segment != seg ||
			segErr.Kind != IDs {
			t.Errorf("segment %d) Expected error to name ids segment %d, " +
				"got %v.", seg, seg, err)
		}
	}
}

func TestReadGroupIDsCountMismatch(t *testing.T) {
	dir := t.TempDir()
	order := HostOrder()
	writeFile(t, FileName(IDs, dir, testSnap, 0), encodeIDs(order,
		rawIDsHeader{ NIDs: 2, TotNIDs: 4, NFiles: 2 }, []uint32{ 1, 2 }))
	writeFile(t, FileName(IDs, dir, testSnap, 1), encodeIDs(order,
		rawIDsHeader{ NIDs: 1, TotNIDs: 4, NFiles: 2 }, []uint32{ 3 }))

	if _, err := ReadGroupIDs(dir, testSnap); !errors.Is(err,
		ErrCountMismatch) {
		t.Errorf("Expected ErrCountMismatch, got %v.", err)
	}
}

func TestIDCatalogSlice(t *testing.T) {
	c32 := &IDCatalog{ Width: IDWidth32, ID32: []uint32{ 5, 6, 7, 8 } }
	c64 := &IDCatalog{ Width: IDWidth64, ID64: []uint64{ 5, 6, 1<<33, 8 } }

	if s := c32.Slice(1, 3); !eq.Slices(s, []uint64{ 6, 7 }) {
		t.Errorf("Expected 32-bit Slice(1, 3) = [6 7], got %d.", s)
	}
	if s := c64.Slice(1, 3); !eq.Slices(s, []uint64{ 6, 1<<33 }) {
		t.Errorf("Expected 64-bit Slice(1, 3) = [6 %d], got %d.", uint64(1<<33), s)
	}
}

func TestReadGroupIDsHugeTotal(t *testing.T) {
	order := HostOrder()
	tests := []struct{
		hd rawIDsHeader
		width IDWidth
	} {
		{rawIDsHeader{ NIDs: 0, TotNIDs: 1<<61, NFiles: 1 }, IDWidth32},
		{rawIDsHeader{ NIDs: 0, TotNIDs: 1<<61, NFiles: 1 }, IDWidth64},
		{rawIDsHeader{ NIDs: 0, TotNIDs: 1<<64 - 1, NFiles: 1 }, IDWidth32},
	}

	for i := range tests {
		dir := t.TempDir()
		writeFile(t, FileName(IDs, dir, testSnap, 0),
			encodeIDs(order, tests[i].hd, []uint32{ }))

		_, err := ReadGroupIDs(dir, testSnap, Config{ IDWidth: tests[i].width })
		if !errors.Is(err, ErrCountMismatch) {
			t.Errorf("%d) Expected ErrCountMismatch, got %v.", i, err)
		}
	}
}
