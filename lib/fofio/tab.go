package fofio

import (
	"encoding/binary"

	"github.com/phil-mansfield/fofcat/lib/logging"
)

// GroupCatalog is the assembled tab catalog. Every array has one element per
// halo, in the order the halos appear in the segment files. SFR is nil
// unless Config.SFR was set.
type GroupCatalog struct {
	// Header is the header of segment 0.
	Header *SegmentHeader

	Len, Offset []int32 // Number of particles, index of first ID.
	Mass []float32
	Pos, Vel [][3]float32
	TypeLen, TypeMass [][6]float32 // Per particle type.
	SFR []float32
}

// Group is a single halo from a GroupCatalog.
type Group struct {
	Len, Offset int32
	Mass float32
	Pos, Vel [3]float32
	TypeLen, TypeMass [6]float32
	SFR float32
}

// N returns the number of halos in the catalog.
func (cat *GroupCatalog) N() int { return len(cat.Len) }

// Group returns halo i. SFR is zero if the catalog doesn't have one.
func (cat *GroupCatalog) Group(i int) Group {
	g := Group{
		Len: cat.Len[i], Offset: cat.Offset[i], Mass: cat.Mass[i],
		Pos: cat.Pos[i], Vel: cat.Vel[i],
		TypeLen: cat.TypeLen[i], TypeMass: cat.TypeMass[i],
	}
	if cat.SFR != nil { g.SFR = cat.SFR[i] }
	return g
}

// block is one field's slice of the catalog arrays, viewed as raw bytes.
type block struct {
	name string
	b []byte
	width int // Size of the scalars in the block, for swapping.
}

// blocks returns the catalog's blocks over the range [start, end) in the
// order they're stored on disk.
func (cat *GroupCatalog) blocks(start, end int) []block {
	bl := []block{
		{ "Len", asBytes(cat.Len[start: end]), 4 },
		{ "Offset", asBytes(cat.Offset[start: end]), 4 },
		{ "Mass", asBytes(cat.Mass[start: end]), 4 },
		{ "Pos", asBytes(cat.Pos[start: end]), 4 },
		{ "Vel", asBytes(cat.Vel[start: end]), 4 },
		{ "TypeLen", asBytes(cat.TypeLen[start: end]), 4 },
		{ "TypeMass", asBytes(cat.TypeMass[start: end]), 4 },
	}
	if cat.SFR != nil {
		bl = append(bl, block{ "SFR", asBytes(cat.SFR[start: end]), 4 })
	}
	return bl
}

// tabRecordSize returns the number of bytes a single halo takes up in a tab
// segment.
func tabRecordSize(sfr bool) int {
	size := 4 + 4 + 4 + 12 + 12 + 24 + 24
	if sfr { size += 4 }
	return size
}

func newGroupCatalog(hd *SegmentHeader, sfr bool) *GroupCatalog {
	n := int(hd.TotalGroupCount)
	cat := &GroupCatalog{
		Header: hd,
		Len: make([]int32, n), Offset: make([]int32, n),
		Mass: make([]float32, n),
		Pos: make([][3]float32, n), Vel: make([][3]float32, n),
		TypeLen: make([][6]float32, n), TypeMass: make([][6]float32, n),
	}
	if sfr { cat.SFR = make([]float32, n) }
	return cat
}

// ReadGroupTab reads every tab segment of snapshot snap in baseDir and
// assembles them into a single GroupCatalog. An optional Config may be
// given, otherwise DefaultConfig is used. Either the whole catalog is
// returned or an error is; errors from individual files are *SegmentError.
//
// Segment 0's total is only trusted once CheckCatalog has confirmed that the
// files on disk hold exactly that many halos, so a corrupt header can't
// trigger an allocation larger than the catalog.
func ReadGroupTab(
	baseDir string, snap int, config ...Config,
) (*GroupCatalog, error) {
	c, err := getConfig(config)
	if err != nil { return nil, err }
	order := FileOrder(c.Swap)

	if _, err := CheckCatalog(Tab, baseDir, snap, c); err != nil {
		return nil, err
	}

	var cat *GroupCatalog
	start, files := 0, 1
	for i := 0; i < files; i++ {
		fileName := FileName(Tab, baseDir, snap, i, c)
		hd, err := readTabSegment(&cat, fileName, i, start, &c, order)
		if err != nil { return nil, err }

		// Only segment 0's file count matters.
		if i == 0 { files = int(hd.SegmentFileCount) }

		logging.L().Debug().Str("file", fileName).Int("segment", i).
			Uint32("groups", hd.GroupCount).Int("start", start).
			Msg("read tab segment")
		start += int(hd.GroupCount)
	}

	if start != cat.N() {
		return nil, segmentErrorf(Tab, files - 1,
			FileName(Tab, baseDir, snap, files - 1, c), ErrCountMismatch, nil,
			"Segment 0 declares %d groups in %d files, but the files only " +
			"contain %d groups.", cat.N(), files, start)
	}

	logging.L().Info().Str("dir", GroupDir(baseDir, snap, c)).
		Int("groups", cat.N()).Int("files", files).
		Msg("read tab catalog")

	return cat, nil
}

// readTabSegment reads tab segment i into *cat, starting at index start. If
// i is 0, *cat is allocated from the segment's header first.
func readTabSegment(
	cat **GroupCatalog, fileName string, i, start int,
	c *Config, order binary.ByteOrder,
) (*SegmentHeader, error) {
	seg, err := openSegment(Tab, i, fileName)
	if err != nil { return nil, err }
	defer seg.Close()

	hd, err := ReadSegmentHeader(seg, Tab, order)
	if err != nil { return nil, seg.errorf(nil, err, "%s", err.Error()) }

	n := int(hd.GroupCount)
	if err := seg.checkSize(n, tabRecordSize(c.SFR)); err != nil {
		return nil, err
	}

	if i == 0 { *cat = newGroupCatalog(hd, c.SFR) }
	if start + n > (*cat).N() {
		return nil, seg.errorf(ErrCountMismatch, nil, "The segment has %d " +
			"groups starting at group %d, but segment 0 declares only %d " +
			"groups in total.", n, start, (*cat).N())
	}

	if n > 0 {
		blocks := (*cat).blocks(start, start + n)
		for _, bl := range blocks {
			if err := seg.readBlock(bl.name, bl.b); err != nil {
				return nil, err
			}
		}

		if c.Swap {
			for _, bl := range blocks { SwapWords(bl.b, bl.width) }
		}
	}

	if err := seg.checkEOF(); err != nil { return nil, err }
	return hd, nil
}
