package fofio

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// TabHeaderSize is the size of a tab segment header in bytes.
	TabHeaderSize = 24
	// IDsHeaderSize is the size of an ids segment header in bytes.
	IDsHeaderSize = 28
)

// rawTabHeader has the same layout as the header of a tab segment. The
// signed counts are what the structure finder writes.
type rawTabHeader struct {
	NGroups, TotNGroups, NIDs int32
	TotNIDs uint64
	NFiles uint32
}

// rawIDsHeader has the same layout as the header of an ids segment.
type rawIDsHeader struct {
	NGroups, TotNGroups, NIDs uint32
	TotNIDs uint64
	NFiles, SendOffset uint32
}

// SegmentHeader is the header at the start of every segment file. Only the
// totals and SegmentFileCount in segment 0 are used to size and drive the
// read; later segments repeat them.
type SegmentHeader struct {
	Kind Kind
	GroupCount, TotalGroupCount uint32
	IDCount uint32
	TotalIDCount uint64
	SegmentFileCount uint32
	// SendOffset is only written to ids segments. It's read but not used.
	SendOffset uint32
}

// HeaderSize returns the size of the header of a segment of the given kind.
func HeaderSize(kind Kind) int {
	if kind == IDs { return IDsHeaderSize }
	return TabHeaderSize
}

// ReadSegmentHeader reads a segment header of the given kind from rd, which
// must be positioned at the start of the file. Errors wrap
// ErrMalformedHeader.
func ReadSegmentHeader(
	rd io.Reader, kind Kind, order binary.ByteOrder,
) (*SegmentHeader, error) {
	hd := &SegmentHeader{ Kind: kind }

	switch kind {
	case Tab:
		raw := &rawTabHeader{ }
		if err := binary.Read(rd, order, raw); err != nil {
			return nil, fmt.Errorf("%w: a tab header needs %d bytes: %w",
				ErrMalformedHeader, TabHeaderSize, err)
		}
		if raw.NGroups < 0 || raw.TotNGroups < 0 || raw.NIDs < 0 {
			return nil, fmt.Errorf("%w: negative counts (Ngroups = %d, " +
				"TotNgroups = %d, Nids = %d). The byte order may be wrong.",
				ErrMalformedHeader, raw.NGroups, raw.TotNGroups, raw.NIDs)
		}
		hd.GroupCount, hd.TotalGroupCount = uint32(raw.NGroups),
			uint32(raw.TotNGroups)
		hd.IDCount, hd.TotalIDCount = uint32(raw.NIDs), raw.TotNIDs
		hd.SegmentFileCount = raw.NFiles
	case IDs:
		raw := &rawIDsHeader{ }
		if err := binary.Read(rd, order, raw); err != nil {
			return nil, fmt.Errorf("%w: an ids header needs %d bytes: %w",
				ErrMalformedHeader, IDsHeaderSize, err)
		}
		hd.GroupCount, hd.TotalGroupCount = raw.NGroups, raw.TotNGroups
		hd.IDCount, hd.TotalIDCount = raw.NIDs, raw.TotNIDs
		hd.SegmentFileCount, hd.SendOffset = raw.NFiles, raw.SendOffset
	default:
		return nil, fmt.Errorf("Internal error: unrecognized catalog kind %d",
			int(kind))
	}

	if err := hd.check(); err != nil { return nil, err }
	return hd, nil
}

// check does consistency checks which only need the header itself. These are
// usually what catches a wrong byte order.
func (hd *SegmentHeader) check() error {
	if hd.SegmentFileCount == 0 {
		return fmt.Errorf("%w: the header says there are zero segment files.",
			ErrMalformedHeader)
	} else if hd.GroupCount > hd.TotalGroupCount {
		return fmt.Errorf("%w: the segment has %d groups, but the whole " +
			"catalog only has %d. The byte order may be wrong.",
			ErrMalformedHeader, hd.GroupCount, hd.TotalGroupCount)
	} else if uint64(hd.IDCount) > hd.TotalIDCount {
		return fmt.Errorf("%w: the segment has %d IDs, but the whole " +
			"catalog only has %d. The byte order may be wrong.",
			ErrMalformedHeader, hd.IDCount, hd.TotalIDCount)
	}
	return nil
}
