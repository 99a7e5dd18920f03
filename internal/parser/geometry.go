package parser

// Ring is an ordered sequence of [longitude, latitude] pairs bounding a
// polygon or a hole within one. Decoded rings are always closed: the first
// and last pair are equal, and a closed ring carries at least 4 pairs
// (3 distinct points plus the closing copy).
type Ring [][]float64

// Geometry is the canonical spatial representation of a feature.
//
// It is a closed tagged union over the seven standard vector geometry types
// plus an explicit Unsupported variant. Only Polygon (binary path) and
// MultiPolygon (XML path) are fully decoded; the other tags are representable
// so that "type not yet implemented" is a checked case, never a crash.
//
// Coordinates follow GeoJSON convention: [longitude, latitude] in WGS-84
// decimal degrees.
type Geometry struct {
	// Type indicates which variant this geometry holds.
	Type GeometryType

	// Rings is populated for Polygon: ring 0 is the outer boundary,
	// subsequent rings are holes. Holes are structurally decoded only;
	// winding and containment are not validated.
	Rings []Ring

	// Polygons is populated for MultiPolygon: one ring set per member.
	// The XML path only produces single-ring members.
	Polygons [][]Ring

	// UnsupportedCode holds the raw (masked) type code when
	// Type == GeometryTypeUnsupported.
	UnsupportedCode uint32
}

// GeometryType represents the type of geometry.
//
// Values 1-7 match the WKB base type codes so a decoded type code maps
// directly onto the tag.
type GeometryType uint32

const (
	// GeometryTypePoint represents a single point location.
	GeometryTypePoint GeometryType = 1

	// GeometryTypeLineString represents a line composed of connected points.
	GeometryTypeLineString GeometryType = 2

	// GeometryTypePolygon represents a closed polygon area with optional holes.
	GeometryTypePolygon GeometryType = 3

	// GeometryTypeMultiPoint represents a collection of points.
	GeometryTypeMultiPoint GeometryType = 4

	// GeometryTypeMultiLineString represents a collection of lines.
	GeometryTypeMultiLineString GeometryType = 5

	// GeometryTypeMultiPolygon represents a collection of polygons.
	GeometryTypeMultiPolygon GeometryType = 6

	// GeometryTypeCollection represents a heterogeneous geometry collection.
	GeometryTypeCollection GeometryType = 7

	// GeometryTypeUnsupported marks a recognized but undecoded type code.
	GeometryTypeUnsupported GeometryType = 0
)

// String returns the string representation of the geometry type.
func (g GeometryType) String() string {
	switch g {
	case GeometryTypePoint:
		return "Point"
	case GeometryTypeLineString:
		return "LineString"
	case GeometryTypePolygon:
		return "Polygon"
	case GeometryTypeMultiPoint:
		return "MultiPoint"
	case GeometryTypeMultiLineString:
		return "MultiLineString"
	case GeometryTypeMultiPolygon:
		return "MultiPolygon"
	case GeometryTypeCollection:
		return "GeometryCollection"
	default:
		return "Unsupported"
	}
}

// closeRing ensures a ring is closed (first coordinate == last).
//
// Closing is idempotent: a ring that already ends on a copy of its first
// point is returned unchanged, so closing twice yields the same ring.
func closeRing(coords Ring) Ring {
	if len(coords) < 3 {
		return coords // Not enough points for a ring
	}

	first := coords[0]
	last := coords[len(coords)-1]
	if first[0] == last[0] && first[1] == last[1] {
		return coords // Already closed
	}

	closed := make(Ring, len(coords)+1)
	copy(closed, coords)
	closed[len(coords)] = []float64{first[0], first[1]}

	return closed
}
