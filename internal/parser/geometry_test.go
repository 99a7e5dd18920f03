package parser

import (
	"testing"
)

// TestCloseRing tests ring closure and its idempotence
func TestCloseRing(t *testing.T) {
	open := Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	closed := closeRing(open)
	if len(closed) != 5 {
		t.Fatalf("Expected 5 points after closing, got %d", len(closed))
	}
	first, last := closed[0], closed[len(closed)-1]
	if first[0] != last[0] || first[1] != last[1] {
		t.Error("Expected first and last points to be equal")
	}

	// Closing twice yields the same ring
	again := closeRing(closed)
	if len(again) != len(closed) {
		t.Errorf("Expected idempotent closure, got %d points", len(again))
	}

	// The closing point is a copy, not a shared slice
	closed[len(closed)-1][0] = 99
	if closed[0][0] == 99 {
		t.Error("Closing point aliases the first point")
	}
}

// TestCloseRingTooShort tests that degenerate rings pass through unchanged
func TestCloseRingTooShort(t *testing.T) {
	short := Ring{{0, 0}, {1, 1}}
	if got := closeRing(short); len(got) != 2 {
		t.Errorf("Expected degenerate ring unchanged, got %d points", len(got))
	}
}

// TestGeometryTypeString tests type name rendering
func TestGeometryTypeString(t *testing.T) {
	tests := []struct {
		geomType GeometryType
		want     string
	}{
		{GeometryTypePoint, "Point"},
		{GeometryTypeLineString, "LineString"},
		{GeometryTypePolygon, "Polygon"},
		{GeometryTypeMultiPoint, "MultiPoint"},
		{GeometryTypeMultiLineString, "MultiLineString"},
		{GeometryTypeMultiPolygon, "MultiPolygon"},
		{GeometryTypeCollection, "GeometryCollection"},
		{GeometryTypeUnsupported, "Unsupported"},
		{GeometryType(42), "Unsupported"},
	}

	for _, tt := range tests {
		if got := tt.geomType.String(); got != tt.want {
			t.Errorf("Type %d: expected %q, got %q", tt.geomType, tt.want, got)
		}
	}
}
