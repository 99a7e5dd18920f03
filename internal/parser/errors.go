package parser

import (
	"fmt"
)

// ErrMalformedBuffer indicates the raw geometry buffer cannot be read:
// the hex text is invalid, the byte-order marker is unknown, or a fixed-width
// read would run past the end of the buffer.
type ErrMalformedBuffer struct {
	Offset int
	Reason string
}

func (e *ErrMalformedBuffer) Error() string {
	return fmt.Sprintf("malformed buffer at offset %d: %s", e.Offset, e.Reason)
}

// ErrMalformedGeometry indicates the buffer decoded but the geometry it
// describes is structurally invalid: a declared count overruns the remaining
// bytes, a ring has fewer than 3 points, or a coordinate is non-finite after
// reprojection.
type ErrMalformedGeometry struct {
	Reason string
}

func (e *ErrMalformedGeometry) Error() string {
	return fmt.Sprintf("malformed geometry: %s", e.Reason)
}

// ErrUnsupportedGeometryType indicates a recognized but undecoded geometry
// type code. This is a typed outcome, not a fatal condition: the record
// contributes no feature and the batch continues.
type ErrUnsupportedGeometryType struct {
	Code uint32
}

func (e *ErrUnsupportedGeometryType) Error() string {
	return fmt.Sprintf("unsupported geometry type code %d (%s)", e.Code, GeometryType(e.Code))
}

// ErrNoGeometry indicates the XML path found no valid polygon member for a
// record. Per-record outcome; never aborts the enclosing batch.
type ErrNoGeometry struct {
	Reason string
}

func (e *ErrNoGeometry) Error() string {
	return fmt.Sprintf("no geometry: %s", e.Reason)
}

// ErrEmptyResult indicates a batch produced zero features. This is the only
// record-level failure mode that surfaces to the caller as a terminal error.
type ErrEmptyResult struct {
	Records int
	Failed  int
}

func (e *ErrEmptyResult) Error() string {
	return fmt.Sprintf("empty result: none of %d records produced a feature (%d failed geometry decoding)",
		e.Records, e.Failed)
}
