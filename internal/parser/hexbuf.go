package parser

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"strings"
)

// byteOrder selects how fixed-width reads interpret multi-byte values.
type byteOrder int

const (
	orderLittle byteOrder = iota
	orderBig
)

// Byte-order markers at the start of every geometry buffer.
// 0x01 (little-endian) is the only value observed in source data;
// 0x00 (big-endian) is accepted per the encoding standard.
const (
	markerBig    = 0x00
	markerLittle = 0x01
)

// hexBuffer is a cursor-free view over a decoded geometry buffer.
//
// Reads take an offset and return the value together with the advanced
// offset, so the cursor is a plain value passed between calls: no shared
// mutable state exists across concurrent decodes of different records.
type hexBuffer struct {
	data []byte
}

// newHexBuffer decodes case-insensitive hexadecimal text into a buffer.
// Whitespace anywhere in the text is tolerated and stripped.
// Returns ErrMalformedBuffer if the text is not valid hexadecimal.
func newHexBuffer(text string) (*hexBuffer, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, text)

	data, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, &ErrMalformedBuffer{Offset: 0, Reason: "input is not valid hexadecimal text"}
	}

	return &hexBuffer{data: data}, nil
}

// newByteBuffer wraps an already-decoded byte sequence.
func newByteBuffer(data []byte) *hexBuffer {
	return &hexBuffer{data: data}
}

// len returns the total buffer length in bytes.
func (b *hexBuffer) len() int {
	return len(b.data)
}

// remaining returns the number of unread bytes past offset.
func (b *hexBuffer) remaining(offset int) int {
	if offset >= len(b.data) {
		return 0
	}
	return len(b.data) - offset
}

// readByteOrder reads the 1-byte order marker at offset.
// Any marker other than 0x00 or 0x01 is an error; the caller decides
// whether to skip the record.
func (b *hexBuffer) readByteOrder(offset int) (byteOrder, int, error) {
	if b.remaining(offset) < 1 {
		return 0, offset, &ErrMalformedBuffer{Offset: offset, Reason: "need 1 byte for order marker"}
	}
	switch b.data[offset] {
	case markerLittle:
		return orderLittle, offset + 1, nil
	case markerBig:
		return orderBig, offset + 1, nil
	default:
		return 0, offset, &ErrMalformedBuffer{
			Offset: offset,
			Reason: "unknown byte-order marker",
		}
	}
}

// readUint32 reads a 32-bit unsigned integer at offset in the given order.
func (b *hexBuffer) readUint32(offset int, order byteOrder) (uint32, int, error) {
	if b.remaining(offset) < 4 {
		return 0, offset, &ErrMalformedBuffer{Offset: offset, Reason: "need 4 bytes for uint32"}
	}
	raw := b.data[offset : offset+4]
	if order == orderBig {
		return binary.BigEndian.Uint32(raw), offset + 4, nil
	}
	return binary.LittleEndian.Uint32(raw), offset + 4, nil
}

// readFloat64 reads a 64-bit IEEE-754 value at offset in the given order.
func (b *hexBuffer) readFloat64(offset int, order byteOrder) (float64, int, error) {
	if b.remaining(offset) < 8 {
		return 0, offset, &ErrMalformedBuffer{Offset: offset, Reason: "need 8 bytes for float64"}
	}
	raw := b.data[offset : offset+8]
	var bits uint64
	if order == orderBig {
		bits = binary.BigEndian.Uint64(raw)
	} else {
		bits = binary.LittleEndian.Uint64(raw)
	}
	return math.Float64frombits(bits), offset + 8, nil
}
