package parser

import (
	"fmt"
)

// ValidateCoordinate validates a single lon/lat pair against geographic
// bounds. Non-finite values fail the bounds comparison as well.
func ValidateCoordinate(lon, lat float64) error {
	if !finitePair(lon, lat) {
		return &ErrMalformedGeometry{
			Reason: fmt.Sprintf("non-finite coordinate lon=%f lat=%f", lon, lat),
		}
	}
	if lat < -90.0 || lat > 90.0 || lon < -180.0 || lon > 180.0 {
		return &ErrMalformedGeometry{
			Reason: fmt.Sprintf("coordinate out of range lon=%f lat=%f (lon must be ±180, lat ±90)", lon, lat),
		}
	}
	return nil
}

// ValidateGeometry checks the structural invariants of a decoded geometry:
// every ring holds at least 3 distinct points plus the closing copy, the
// first and last pair are equal, and every coordinate is within geographic
// bounds.
//
// Unsupported geometries pass validation unchanged; they never reach a
// feature anyway.
func ValidateGeometry(geometry *Geometry) error {
	if geometry == nil {
		return &ErrMalformedGeometry{Reason: "geometry is nil"}
	}

	switch geometry.Type {
	case GeometryTypePolygon:
		return validateRings(geometry.Rings)
	case GeometryTypeMultiPolygon:
		for _, rings := range geometry.Polygons {
			if err := validateRings(rings); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateRings(rings []Ring) error {
	if len(rings) == 0 {
		return &ErrMalformedGeometry{Reason: "polygon has no rings"}
	}
	for i, ring := range rings {
		// A closed ring of 3 distinct points has 4 pairs
		if len(ring) < 4 {
			return &ErrMalformedGeometry{
				Reason: fmt.Sprintf("ring %d has fewer than 3 distinct points", i),
			}
		}
		first, last := ring[0], ring[len(ring)-1]
		if first[0] != last[0] || first[1] != last[1] {
			return &ErrMalformedGeometry{
				Reason: fmt.Sprintf("ring %d is not closed", i),
			}
		}
		for j, pair := range ring {
			if len(pair) != 2 {
				return &ErrMalformedGeometry{
					Reason: fmt.Sprintf("ring %d pair %d must hold exactly [lon, lat]", i, j),
				}
			}
			if err := ValidateCoordinate(pair[0], pair[1]); err != nil {
				return err
			}
		}
	}
	return nil
}
