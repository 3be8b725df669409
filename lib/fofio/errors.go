package fofio

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedSegment means a segment file didn't end where its header
	// said it would: it was either too short or had trailing bytes.
	ErrTruncatedSegment = errors.New("truncated segment")
	// ErrMissingFile means an expected segment file doesn't exist.
	ErrMissingFile = errors.New("missing segment file")
	// ErrMalformedHeader means a segment header couldn't be read or
	// contains impossible values.
	ErrMalformedHeader = errors.New("malformed segment header")
	// ErrCountMismatch means the per-segment counts don't add up to the
	// totals declared in segment 0.
	ErrCountMismatch = errors.New("segment counts don't match catalog total")
)

// SegmentError describes a failure while reading one segment file. It wraps
// one of the Err* values above and, if there is one, the underlying system
// error, so both errors.Is(err, ErrMissingFile) and
// errors.Is(err, fs.ErrNotExist) work on a missing file.
type SegmentError struct {
	Kind Kind
	Segment int
	FileName string
	Err error
	Cause error
	msg string
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("%s segment %d (%s): %s", e.Kind, e.Segment,
		e.FileName, e.msg)
}

func (e *SegmentError) Unwrap() []error {
	errs := []error{ }
	if e.Err != nil { errs = append(errs, e.Err) }
	if e.Cause != nil { errs = append(errs, e.Cause) }
	return errs
}

func segmentErrorf(
	kind Kind, segment int, fileName string, sentinel, cause error,
	format string, a ...interface{},
) *SegmentError {
	return &SegmentError{
		Kind: kind, Segment: segment, FileName: fileName,
		Err: sentinel, Cause: cause, msg: fmt.Sprintf(format, a...),
	}
}
