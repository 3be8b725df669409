package fofio

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/phil-mansfield/fofcat/lib/logging"
)

// IDCatalog is the assembled ids catalog: the particle IDs of every halo,
// laid end to end in halo order. Exactly one of ID32 and ID64 is set,
// depending on Width.
type IDCatalog struct {
	// Header is the header of segment 0.
	Header *SegmentHeader
	Width IDWidth
	ID32 []uint32
	ID64 []uint64
}

// Len returns the number of IDs in the catalog.
func (cat *IDCatalog) Len() int {
	if cat.Width == IDWidth64 { return len(cat.ID64) }
	return len(cat.ID32)
}

// At returns ID i, widened to 64 bits.
func (cat *IDCatalog) At(i int) uint64 {
	if cat.Width == IDWidth64 { return cat.ID64[i] }
	return uint64(cat.ID32[i])
}

// Slice returns a copy of the IDs in [start, end) widened to 64 bits.
func (cat *IDCatalog) Slice(start, end int) []uint64 {
	out := make([]uint64, end - start)
	if cat.Width == IDWidth64 {
		copy(out, cat.ID64[start: end])
		return out
	}
	for i, id := range cat.ID32[start: end] { out[i] = uint64(id) }
	return out
}

// ReadGroupIDs reads every ids segment of snapshot snap in baseDir and
// assembles them into a single IDCatalog. The ID width comes from the
// Config, which is optional (DefaultConfig has 32-bit IDs). Like
// ReadGroupTab, nothing is allocated until CheckCatalog has matched segment
// 0's total against the files.
func ReadGroupIDs(
	baseDir string, snap int, config ...Config,
) (*IDCatalog, error) {
	c, err := getConfig(config)
	if err != nil { return nil, err }

	if _, err := CheckCatalog(IDs, baseDir, snap, c); err != nil {
		return nil, err
	}

	cat := &IDCatalog{ Width: c.IDWidth }
	switch c.IDWidth {
	case IDWidth32:
		cat.ID32, cat.Header, err = readIDs[uint32](baseDir, snap, &c)
	case IDWidth64:
		cat.ID64, cat.Header, err = readIDs[uint64](baseDir, snap, &c)
	}
	if err != nil { return nil, err }

	logging.L().Info().Str("dir", GroupDir(baseDir, snap, c)).
		Int("ids", cat.Len()).Int("width", int(c.IDWidth)).
		Uint32("files", cat.Header.SegmentFileCount).
		Msg("read ids catalog")

	return cat, nil
}

// readIDs does the work of ReadGroupIDs for one ID type.
func readIDs[T uint32 | uint64](
	baseDir string, snap int, c *Config,
) ([]T, *SegmentHeader, error) {
	order := FileOrder(c.Swap)

	var (
		ids []T
		hd0 *SegmentHeader
	)
	start, files := 0, 1
	for i := 0; i < files; i++ {
		fileName := FileName(IDs, baseDir, snap, i, *c)
		hd, err := readIDsSegment(&ids, fileName, i, start, c.Swap, order)
		if err != nil { return nil, nil, err }

		if i == 0 {
			hd0 = hd
			files = int(hd.SegmentFileCount)
		}

		logging.L().Debug().Str("file", fileName).Int("segment", i).
			Uint32("ids", hd.IDCount).Uint32("send_offset", hd.SendOffset).
			Int("start", start).Msg("read ids segment")
		start += int(hd.IDCount)
	}

	if start != len(ids) {
		return nil, nil, segmentErrorf(IDs, files - 1,
			FileName(IDs, baseDir, snap, files - 1, *c), ErrCountMismatch, nil,
			"Segment 0 declares %d IDs in %d files, but the files only " +
			"contain %d IDs.", len(ids), files, start)
	}

	return ids, hd0, nil
}

// readIDsSegment reads ids segment i into *ids, starting at index start. If
// i is 0, *ids is allocated from the segment's header first.
func readIDsSegment[T uint32 | uint64](
	ids *[]T, fileName string, i, start int,
	swap bool, order binary.ByteOrder,
) (*SegmentHeader, error) {
	seg, err := openSegment(IDs, i, fileName)
	if err != nil { return nil, err }
	defer seg.Close()

	hd, err := ReadSegmentHeader(seg, IDs, order)
	if err != nil { return nil, seg.errorf(nil, err, "%s", err.Error()) }

	var zero T
	width := int(unsafe.Sizeof(zero))
	n := int(hd.IDCount)
	if err := seg.checkSize(n, width); err != nil { return nil, err }

	if i == 0 {
		if hd.TotalIDCount > math.MaxInt {
			return nil, seg.errorf(ErrMalformedHeader, nil, "The catalog " +
				"has %d IDs, which is too many to hold on this machine.",
				hd.TotalIDCount)
		}
		*ids = make([]T, hd.TotalIDCount)
	}

	if start + n > len(*ids) {
		return nil, seg.errorf(ErrCountMismatch, nil, "The segment has %d " +
			"IDs starting at ID %d, but segment 0 declares only %d IDs in " +
			"total.", n, start, len(*ids))
	}

	if n > 0 {
		b := asBytes((*ids)[start: start + n])
		err := seg.readBlock(fmt.Sprintf("ID (u%d)", 8*width), b)
		if err != nil { return nil, err }
		if swap { SwapWords(b, width) }
	}

	if err := seg.checkEOF(); err != nil { return nil, err }
	return hd, nil
}
