package parser

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math"
	"testing"
)

// encodePolygon builds a hex-encoded polygon record for tests.
func encodePolygon(order binary.AppendByteOrder, srid uint32, sridFlag bool, rings [][][2]float64) string {
	buf := make([]byte, 0, 64)

	if order == binary.AppendByteOrder(binary.LittleEndian) {
		buf = append(buf, markerLittle)
	} else {
		buf = append(buf, markerBig)
	}

	code := uint32(GeometryTypePolygon)
	if sridFlag {
		code |= wkbSRIDFlag
	}
	buf = order.AppendUint32(buf, code)
	if srid != 0 {
		buf = order.AppendUint32(buf, srid)
	}

	buf = order.AppendUint32(buf, uint32(len(rings)))
	for _, ring := range rings {
		buf = order.AppendUint32(buf, uint32(len(ring)))
		for _, point := range ring {
			buf = order.AppendUint64(buf, math.Float64bits(point[0]))
			buf = order.AppendUint64(buf, math.Float64bits(point[1]))
		}
	}

	return hex.EncodeToString(buf)
}

var unitSquare = [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// TestDecodePolygon tests the reference case: a unit square decodes into one
// auto-closed ring of 5 points.
func TestDecodePolygon(t *testing.T) {
	record := encodePolygon(binary.LittleEndian, 0, false, [][][2]float64{unitSquare})

	geom, err := DecodeWKBHex(record, Identity{})
	if err != nil {
		t.Fatalf("Failed to decode polygon: %v", err)
	}

	if geom.Type != GeometryTypePolygon {
		t.Fatalf("Expected Polygon, got %v", geom.Type)
	}
	if len(geom.Rings) != 1 {
		t.Fatalf("Expected 1 ring, got %d", len(geom.Rings))
	}

	ring := geom.Rings[0]
	if len(ring) != 5 {
		t.Fatalf("Expected 5 points after closure, got %d", len(ring))
	}
	first, last := ring[0], ring[4]
	if first[0] != last[0] || first[1] != last[1] {
		t.Errorf("Ring not closed: first=%v last=%v", first, last)
	}
}

// TestDecodePolygonBigEndian tests byte-order dispatch from the order marker
func TestDecodePolygonBigEndian(t *testing.T) {
	record := encodePolygon(binary.BigEndian, 0, false, [][][2]float64{unitSquare})

	geom, err := DecodeWKBHex(record, Identity{})
	if err != nil {
		t.Fatalf("Failed to decode big-endian polygon: %v", err)
	}
	if len(geom.Rings) != 1 || len(geom.Rings[0]) != 5 {
		t.Errorf("Big-endian decode produced wrong shape: %d rings", len(geom.Rings))
	}
}

// TestDecodePolygonWithSRID tests SRID handling: explicit EWKB flag and
// structural detection without the flag.
func TestDecodePolygonWithSRID(t *testing.T) {
	tests := []struct {
		name     string
		sridFlag bool
	}{
		{name: "EWKB flag set", sridFlag: true},
		{name: "no flag, structural detection", sridFlag: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := encodePolygon(binary.LittleEndian, 3857, tt.sridFlag, [][][2]float64{unitSquare})

			geom, err := DecodeWKBHex(record, Identity{})
			if err != nil {
				t.Fatalf("Failed to decode polygon with SRID: %v", err)
			}
			if len(geom.Rings) != 1 || len(geom.Rings[0]) != 5 {
				t.Errorf("Wrong shape: %d rings", len(geom.Rings))
			}
		})
	}
}

// TestDecodeMultiRingPolygon tests hole decoding: counts survive the round
// trip even though winding is not validated.
func TestDecodeMultiRingPolygon(t *testing.T) {
	outer := [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	hole := [][2]float64{{2, 2}, {4, 2}, {4, 4}, {2, 4}, {2, 2}}
	record := encodePolygon(binary.LittleEndian, 0, false, [][][2]float64{outer, hole})

	geom, err := DecodeWKBHex(record, Identity{})
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if len(geom.Rings) != 2 {
		t.Fatalf("Expected 2 rings, got %d", len(geom.Rings))
	}

	// Source rings were already closed: counts must match exactly
	// (idempotent closure).
	if len(geom.Rings[0]) != len(outer) {
		t.Errorf("Outer ring count changed: want %d, got %d", len(outer), len(geom.Rings[0]))
	}
	if len(geom.Rings[1]) != len(hole) {
		t.Errorf("Hole ring count changed: want %d, got %d", len(hole), len(geom.Rings[1]))
	}
}

// TestDecodeUnsupportedType tests that recognized but undecoded type codes
// yield a typed outcome, never a crash.
func TestDecodeUnsupportedType(t *testing.T) {
	tests := []struct {
		name string
		code uint32
	}{
		{name: "point", code: 1},
		{name: "linestring", code: 2},
		{name: "multipoint", code: 4},
		{name: "multilinestring", code: 5},
		{name: "multipolygon", code: 6},
		{name: "collection", code: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := []byte{markerLittle}
			buf = binary.LittleEndian.AppendUint32(buf, tt.code)
			// Enough trailing bytes for a plausible body
			buf = append(buf, make([]byte, 16)...)

			geom, err := DecodeWKBHex(hex.EncodeToString(buf), Identity{})
			if err == nil {
				t.Fatal("Expected ErrUnsupportedGeometryType, got nil")
			}

			var unsupported *ErrUnsupportedGeometryType
			if !errors.As(err, &unsupported) {
				t.Fatalf("Expected ErrUnsupportedGeometryType, got %T: %v", err, err)
			}
			if unsupported.Code != tt.code {
				t.Errorf("Expected code %d, got %d", tt.code, unsupported.Code)
			}
			if geom.Type != GeometryTypeUnsupported {
				t.Errorf("Expected Unsupported tag, got %v", geom.Type)
			}
		})
	}
}

// TestDecodeZDimensionMask tests that the top 3 bits of the type code are
// cleared before dispatch.
func TestDecodeZDimensionMask(t *testing.T) {
	record := encodePolygon(binary.LittleEndian, 0, false, [][][2]float64{unitSquare})
	raw, _ := hex.DecodeString(record)

	// Set the Z dimensionality bit on the type code
	code := binary.LittleEndian.Uint32(raw[1:5]) | 0x80000000
	binary.LittleEndian.PutUint32(raw[1:5], code)

	geom, err := DecodeWKB(raw, Identity{})
	if err != nil {
		t.Fatalf("Failed to decode with dimension bit set: %v", err)
	}
	if geom.Type != GeometryTypePolygon {
		t.Errorf("Expected Polygon after masking, got %v", geom.Type)
	}
}

// TestDecodeMalformed tests structural failure modes
func TestDecodeMalformed(t *testing.T) {
	truncated := func(drop int) string {
		record := encodePolygon(binary.LittleEndian, 0, false, [][][2]float64{unitSquare})
		return record[:len(record)-drop*2]
	}

	tests := []struct {
		name string
		hex  string
	}{
		{name: "bad hex text", hex: "01xx"},
		{name: "empty record", hex: ""},
		{name: "unknown order marker", hex: "05"},
		{name: "truncated coordinates", hex: truncated(8)},
		{name: "truncated ring count", hex: "0103000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeWKBHex(tt.hex, Identity{})
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			var malformedBuffer *ErrMalformedBuffer
			var malformedGeometry *ErrMalformedGeometry
			if !errors.As(err, &malformedBuffer) && !errors.As(err, &malformedGeometry) {
				t.Errorf("Expected a malformed-input error, got %T: %v", err, err)
			}
		})
	}
}

// TestDecodeCountOverrun tests that corrupt counts cannot induce
// out-of-bounds reads.
func TestDecodeCountOverrun(t *testing.T) {
	buf := []byte{markerLittle}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(GeometryTypePolygon))
	buf = binary.LittleEndian.AppendUint32(buf, 1)          // 1 ring
	buf = binary.LittleEndian.AppendUint32(buf, 0xFFFFFF00) // Absurd point count
	buf = append(buf, make([]byte, 32)...)

	_, err := DecodeWKB(buf, Identity{})
	var malformed *ErrMalformedGeometry
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected ErrMalformedGeometry, got %T: %v", err, err)
	}
}

// TestDecodeShortRing tests that rings under 3 points fail the record
func TestDecodeShortRing(t *testing.T) {
	record := encodePolygon(binary.LittleEndian, 0, false, [][][2]float64{
		{{0, 0}, {1, 1}},
	})

	_, err := DecodeWKBHex(record, Identity{})
	var malformed *ErrMalformedGeometry
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected ErrMalformedGeometry for 2-point ring, got %T: %v", err, err)
	}
}

// TestDecodeNonFiniteCoordinate tests that NaN and Inf coordinates fail the
// record after reprojection.
func TestDecodeNonFiniteCoordinate(t *testing.T) {
	record := encodePolygon(binary.LittleEndian, 0, false, [][][2]float64{
		{{0, 0}, {math.NaN(), 0}, {1, 1}, {0, 1}},
	})

	_, err := DecodeWKBHex(record, Identity{})
	var malformed *ErrMalformedGeometry
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected ErrMalformedGeometry for NaN coordinate, got %T: %v", err, err)
	}
}
