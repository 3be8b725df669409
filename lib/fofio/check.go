package fofio

import (
	"encoding/binary"
)

// CheckCatalog checks that every segment of the given kind exists, has a
// readable header, and is exactly as long as its header says it should be,
// without reading any records. It returns the header of segment 0. Any
// catalog that passes will also pass ReadGroupTab or ReadGroupIDs's size
// and count checks.
func CheckCatalog(
	kind Kind, baseDir string, snap int, config ...Config,
) (*SegmentHeader, error) {
	c, err := getConfig(config)
	if err != nil { return nil, err }
	order := FileOrder(c.Swap)

	recordSize := tabRecordSize(c.SFR)
	if kind == IDs { recordSize = int(c.IDWidth) / 8 }

	var hd0 *SegmentHeader
	total, files := uint64(0), 1
	for i := 0; i < files; i++ {
		fileName := FileName(kind, baseDir, snap, i, c)
		hd, err := checkSegment(kind, fileName, i, recordSize, order)
		if err != nil { return nil, err }

		if i == 0 {
			hd0 = hd
			files = int(hd.SegmentFileCount)
		}
		total += recordCount(hd)
	}

	if exp := totalCount(hd0); exp != total {
		return nil, segmentErrorf(kind, files - 1,
			FileName(kind, baseDir, snap, files - 1, c), ErrCountMismatch, nil,
			"Segment 0 declares %d records in %d files, but the files " +
			"contain %d records.", exp, files, total)
	}

	return hd0, nil
}

// recordCount returns the number of records in the segment.
func recordCount(hd *SegmentHeader) uint64 {
	if hd.Kind == IDs { return uint64(hd.IDCount) }
	return uint64(hd.GroupCount)
}

// totalCount returns the number of records in the whole catalog.
func totalCount(hd *SegmentHeader) uint64 {
	if hd.Kind == IDs { return hd.TotalIDCount }
	return uint64(hd.TotalGroupCount)
}

func checkSegment(
	kind Kind, fileName string, i, recordSize int, order binary.ByteOrder,
) (*SegmentHeader, error) {
	seg, err := openSegment(kind, i, fileName)
	if err != nil { return nil, err }
	defer seg.Close()

	hd, err := ReadSegmentHeader(seg, kind, order)
	if err != nil { return nil, seg.errorf(nil, err, "%s", err.Error()) }

	if err := seg.checkSize(int(recordCount(hd)), recordSize); err != nil {
		return nil, err
	}
	return hd, nil
}
