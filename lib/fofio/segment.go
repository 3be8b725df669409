package fofio

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"

	"github.com/phil-mansfield/fofcat/lib/compress"
)

// segment is a single segment file held in memory, either through a read-only
// mmap or as a decompressed buffer. Compressed versions of a segment are only
// looked for if the uncompressed file doesn't exist. It implements io.Reader
// and keeps track of how far into the file it has read.
type segment struct {
	kind Kind
	index int
	fileName string
	data []byte
	off int
	mapped bool
}

// openSegment opens segment file index of the given kind. The caller must
// Close the segment.
func openSegment(kind Kind, index int, fileName string) (*segment, error) {
	s := &segment{ kind: kind, index: index, fileName: fileName }

	f, err := os.Open(fileName)
	if errors.Is(err, fs.ErrNotExist) {
		if zFileName, m, ok := compress.Find(fileName); ok {
			if err := s.decompress(zFileName, m); err != nil {
				return nil, err
			}
			return s, nil
		}
		return nil, s.errorf(ErrMissingFile, err, "The file %s does not " +
			"exist, and neither does a compressed version of it.", fileName)
	} else if err != nil {
		return nil, s.errorf(nil, err, "The file %s cannot be opened.",
			fileName)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, s.errorf(nil, err, "The file %s cannot be opened.",
			fileName)
	} else if info.IsDir() {
		return nil, s.errorf(nil, nil, "%s is a directory, not a segment " +
			"file.", fileName)
	}

	// Zero-length mappings aren't allowed. An empty file will fail header
	// decoding anyway.
	if info.Size() == 0 { return s, nil }

	s.data, err = unix.Mmap(int(f.Fd()), 0, int(info.Size()),
		unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, s.errorf(nil, err, "The file %s cannot be mapped into " +
			"memory.", fileName)
	}
	s.mapped = true

	return s, nil
}

// decompress reads a compressed version of the segment into memory.
func (s *segment) decompress(zFileName string, m compress.Method) error {
	var err error
	s.data, err = compress.ReadFile(zFileName, m)
	if err != nil {
		return s.errorf(nil, err, "The file %s cannot be read as %s data.",
			zFileName, m)
	}
	s.fileName = zFileName
	return nil
}

func (s *segment) Read(p []byte) (int, error) {
	if s.off >= len(s.data) { return 0, io.EOF }
	n := copy(p, s.data[s.off:])
	s.off += n
	return n, nil
}

// checkSize returns an error unless the segment is exactly large enough to
// hold a header of the given kind followed by n records of recordSize bytes.
// It's called before anything is allocated from the header, so a header read
// with the wrong byte order can't trigger a giant allocation.
func (s *segment) checkSize(n, recordSize int) error {
	size := int64(HeaderSize(s.kind)) + int64(n)*int64(recordSize)
	if size != int64(len(s.data)) {
		return s.errorf(ErrTruncatedSegment, nil, "The header declares %d " +
			"records of %d bytes, which would make the file %d bytes long, " +
			"but it actually has %d bytes. The byte order, the ID width, or " +
			"the SFR setting are likely wrong for this file.",
			n, recordSize, size, len(s.data))
	}
	return nil
}

// readBlock fills b with the next len(b) bytes of the segment. name is the
// name of the block, for error messages.
func (s *segment) readBlock(name string, b []byte) error {
	if len(b) > len(s.data) - s.off {
		return s.errorf(ErrTruncatedSegment, io.ErrUnexpectedEOF,
			"The '%s' block needs %d bytes starting at byte %d, but the " +
			"file only has %d bytes.", name, len(b), s.off, len(s.data))
	}
	_, err := io.ReadFull(s, b)
	return err
}

// checkEOF returns an error unless every byte of the segment has been read.
func (s *segment) checkEOF() error {
	if s.off != len(s.data) {
		return s.errorf(ErrTruncatedSegment, nil, "Finished reading after " +
			"%d bytes, but the file has %d bytes. The header counts, the " +
			"ID width, or the SFR setting are likely wrong for this file.",
			s.off, len(s.data))
	}
	return nil
}

// Close releases the segment's memory. It's safe to call more than once.
func (s *segment) Close() error {
	data, mapped := s.data, s.mapped
	s.data, s.mapped = nil, false
	if mapped { return unix.Munmap(data) }
	return nil
}

func (s *segment) errorf(
	sentinel, cause error, format string, a ...interface{},
) *SegmentError {
	return segmentErrorf(s.kind, s.index, s.fileName, sentinel, cause,
		format, a...)
}
