package parser

import (
	"math"
	"testing"
)

// TestValidateCoordinate tests geographic bounds checking
func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float64
		wantErr  bool
	}{
		{name: "origin", lon: 0, lat: 0, wantErr: false},
		{name: "bounds corners", lon: 180, lat: 90, wantErr: false},
		{name: "negative corners", lon: -180, lat: -90, wantErr: false},
		{name: "longitude too large", lon: 180.001, lat: 0, wantErr: true},
		{name: "latitude too large", lon: 0, lat: 90.001, wantErr: true},
		{name: "longitude too small", lon: -181, lat: 0, wantErr: true},
		{name: "latitude too small", lon: 0, lat: -91, wantErr: true},
		{name: "NaN longitude", lon: math.NaN(), lat: 0, wantErr: true},
		{name: "infinite latitude", lon: 0, lat: math.Inf(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate(tt.lon, tt.lat)
			if tt.wantErr && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected valid coordinate, got %v", err)
			}
		})
	}
}

// TestValidateGeometry tests structural invariants on decoded geometries
func TestValidateGeometry(t *testing.T) {
	closedSquare := Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}

	tests := []struct {
		name     string
		geometry *Geometry
		wantErr  bool
	}{
		{
			name:     "valid polygon",
			geometry: &Geometry{Type: GeometryTypePolygon, Rings: []Ring{closedSquare}},
			wantErr:  false,
		},
		{
			name: "valid multipolygon",
			geometry: &Geometry{
				Type:     GeometryTypeMultiPolygon,
				Polygons: [][]Ring{{closedSquare}, {closedSquare}},
			},
			wantErr: false,
		},
		{
			name:     "polygon with no rings",
			geometry: &Geometry{Type: GeometryTypePolygon},
			wantErr:  true,
		},
		{
			name: "unclosed ring",
			geometry: &Geometry{
				Type:  GeometryTypePolygon,
				Rings: []Ring{{{0, 0}, {1, 0}, {1, 1}, {0, 1}}},
			},
			wantErr: true,
		},
		{
			name: "too few points",
			geometry: &Geometry{
				Type:  GeometryTypePolygon,
				Rings: []Ring{{{0, 0}, {1, 1}, {0, 0}}},
			},
			wantErr: true,
		},
		{
			name: "pair with wrong arity",
			geometry: &Geometry{
				Type:  GeometryTypePolygon,
				Rings: []Ring{{{0, 0}, {1, 0, 5}, {1, 1}, {0, 1}, {0, 0}}},
			},
			wantErr: true,
		},
		{
			name: "out of range coordinate",
			geometry: &Geometry{
				Type:  GeometryTypePolygon,
				Rings: []Ring{{{0, 0}, {200, 0}, {1, 1}, {0, 1}, {0, 0}}},
			},
			wantErr: true,
		},
		{
			name: "one bad member fails the multipolygon",
			geometry: &Geometry{
				Type:     GeometryTypeMultiPolygon,
				Polygons: [][]Ring{{closedSquare}, {{{0, 0}, {1, 1}}}},
			},
			wantErr: true,
		},
		{
			name:     "unsupported passes through",
			geometry: &Geometry{Type: GeometryTypeUnsupported, UnsupportedCode: 2},
			wantErr:  false,
		},
		{
			name:     "nil geometry",
			geometry: nil,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGeometry(tt.geometry)
			if tt.wantErr && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected valid geometry, got %v", err)
			}
		})
	}
}
