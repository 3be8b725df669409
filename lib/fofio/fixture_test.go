package fofio

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/phil-mansfield/fofcat/lib/eq"
)

// fakeGroups holds tab catalog columns for building test segments.
type fakeGroups struct {
	len, offset []int32
	mass []float32
	pos, vel [][3]float32
	typeLen, typeMass [][6]float32
	sfr []float32
}

// newFakeGroups creates n halos with distinct, easy-to-recognize values.
// Offsets are cumulative lengths, like a real catalog.
func newFakeGroups(n int, sfr bool) *fakeGroups {
	g := &fakeGroups{
		len: make([]int32, n), offset: make([]int32, n),
		mass: make([]float32, n),
		pos: make([][3]float32, n), vel: make([][3]float32, n),
		typeLen: make([][6]float32, n), typeMass: make([][6]float32, n),
	}
	if sfr { g.sfr = make([]float32, n) }

	off := int32(0)
	for i := 0; i < n; i++ {
		g.len[i] = int32(20 + 3*i)
		g.offset[i] = off
		off += g.len[i]
		g.mass[i] = float32(g.len[i]) * 0.25
		for k := 0; k < 3; k++ {
			g.pos[i][k] = 1000*float32(i) + float32(k) + 0.5
			g.vel[i][k] = -100*float32(i) - float32(k) - 0.125
		}
		g.typeLen[i][1] = float32(g.len[i])
		g.typeMass[i][1] = g.mass[i]
		g.typeMass[i][5] = float32(i) + 1e-3
		if sfr { g.sfr[i] = float32(i)*1.5 + 0.75 }
	}
	return g
}

// slice returns the halos in [start, end).
func (g *fakeGroups) slice(start, end int) *fakeGroups {
	out := &fakeGroups{
		len: g.len[start: end], offset: g.offset[start: end],
		mass: g.mass[start: end],
		pos: g.pos[start: end], vel: g.vel[start: end],
		typeLen: g.typeLen[start: end], typeMass: g.typeMass[start: end],
	}
	if g.sfr != nil { out.sfr = g.sfr[start: end] }
	return out
}

func (g *fakeGroups) nIDs() int {
	n := 0
	for _, l := range g.len { n += int(l) }
	return n
}

// write encodes x into buf with the given byte order.
func write(buf *bytes.Buffer, order binary.ByteOrder, x interface{}) {
	if err := binary.Write(buf, order, x); err != nil { panic(err.Error()) }
}

// encodeTab encodes a tab segment with the given header and halos.
func encodeTab(
	order binary.ByteOrder, hd rawTabHeader, g *fakeGroups,
) []byte {
	buf := &bytes.Buffer{ }
	write(buf, order, hd)
	write(buf, order, g.len)
	write(buf, order, g.offset)
	write(buf, order, g.mass)
	write(buf, order, g.pos)
	write(buf, order, g.vel)
	write(buf, order, g.typeLen)
	write(buf, order, g.typeMass)
	if g.sfr != nil { write(buf, order, g.sfr) }
	return buf.Bytes()
}

// encodeIDs encodes an ids segment with the given header and IDs, which
// must be []uint32 or []uint64.
func encodeIDs(
	order binary.ByteOrder, hd rawIDsHeader, ids interface{},
) []byte {
	buf := &bytes.Buffer{ }
	write(buf, order, hd)
	write(buf, order, ids)
	return buf.Bytes()
}

// writeFile writes data to fileName, creating directories as needed.
func writeFile(t *testing.T, fileName string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(fileName), 0755); err != nil {
		t.Fatalf("Couldn't create directory for %s: %s", fileName, err.Error())
	}
	if err := os.WriteFile(fileName, data, 0644); err != nil {
		t.Fatalf("Couldn't write %s: %s", fileName, err.Error())
	}
}

// writeTabCatalog writes a tab catalog with counts[k] halos in segment k and
// returns the full set of halos that were written.
func writeTabCatalog(
	t *testing.T, dir string, snap int, order binary.ByteOrder,
	sfr bool, counts []int,
) *fakeGroups {
	t.Helper()

	tot := 0
	for _, n := range counts { tot += n }
	g := newFakeGroups(tot, sfr)

	start := 0
	for k, n := range counts {
		part := g.slice(start, start + n)
		hd := rawTabHeader{
			NGroups: int32(n), TotNGroups: int32(tot),
			NIDs: int32(part.nIDs()), TotNIDs: uint64(g.nIDs()),
			NFiles: uint32(len(counts)),
		}
		writeFile(t, FileName(Tab, dir, snap, k), encodeTab(order, hd, part))
		start += n
	}

	return g
}

// writeIDsCatalog writes an ids catalog with counts[k] IDs in segment k.
func writeIDsCatalog[T uint32 | uint64](
	t *testing.T, dir string, snap int, order binary.ByteOrder,
	counts []int, ids []T,
) {
	t.Helper()

	start := 0
	for k, n := range counts {
		hd := rawIDsHeader{
			NGroups: uint32(k + 1), TotNGroups: uint32(10*len(counts)),
			NIDs: uint32(n), TotNIDs: uint64(len(ids)),
			NFiles: uint32(len(counts)), SendOffset: uint32(start),
		}
		data := encodeIDs(order, hd, ids[start: start + n])
		writeFile(t, FileName(IDs, dir, snap, k), data)
		start += n
	}
}

// checkGroups returns false and reports an error if cat doesn't contain
// exactly the halos in g.
func checkGroups(t *testing.T, cat *GroupCatalog, g *fakeGroups) bool {
	t.Helper()
	ok := true
	check := func(name string, res bool) {
		if !res {
			t.Errorf("Field %s of the catalog doesn't match what was written.",
				name)
			ok = false
		}
	}

	check("Len", eq.Slices(cat.Len, g.len))
	check("Offset", eq.Slices(cat.Offset, g.offset))
	check("Mass", eq.Slices(cat.Mass, g.mass))
	check("Pos", eq.Slices(cat.Pos, g.pos))
	check("Vel", eq.Slices(cat.Vel, g.vel))
	check("TypeLen", eq.Slices(cat.TypeLen, g.typeLen))
	check("TypeMass", eq.Slices(cat.TypeMass, g.typeMass))
	if g.sfr == nil {
		check("SFR", cat.SFR == nil)
	} else {
		check("SFR", eq.Slices(cat.SFR, g.sfr))
	}
	return ok
}
