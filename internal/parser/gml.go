package parser

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"
)

// GML-style feature collection decoding.
//
// Two producer dialects are accepted: a WFS-style wrapper whose members are
// keyed by gml:featureMember, and an OGR-style wrapper using the same local
// element name under its own namespace. encoding/xml matches on local names,
// so one set of structs covers both.
//
// Geometry is carried as MultiPolygon/Polygon elements nesting
// outerBoundaryIs > LinearRing > coordinates text. Only MultiPolygon
// composed of single-ring polygons is fully supported, mirroring the binary
// decoder's polygon-only completeness.

// gmlCollection is the top-level feature-collection wrapper.
type gmlCollection struct {
	XMLName xml.Name
	Members []gmlMember `xml:"featureMember"`
}

// gmlMember holds one feature element of arbitrary name.
type gmlMember struct {
	Feature gmlFeatureNode `xml:",any"`
}

// gmlFeatureNode captures a feature's property elements in document order.
// One property carries the geometry; the rest are attribute columns. OGR
// producers carry the feature identifier as a fid attribute on the element
// itself rather than as a child property.
type gmlFeatureNode struct {
	XMLName xml.Name
	Fid     string        `xml:"fid,attr"`
	Props   []gmlProperty `xml:",any"`
}

// gmlProperty is a single child element of a feature: its local name is the
// column name, its character data the value. Inner XML is retained so
// geometry-bearing properties can be re-parsed as geometry trees.
type gmlProperty struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
	Inner   []byte `xml:",innerxml"`
}

// gmlMultiPolygon mirrors <MultiPolygon><polygonMember><Polygon>... nesting.
type gmlMultiPolygon struct {
	XMLName xml.Name           `xml:"MultiPolygon"`
	Members []gmlPolygonMember `xml:"polygonMember"`
}

type gmlPolygonMember struct {
	Polygon gmlPolygon `xml:"Polygon"`
}

// gmlPolygon mirrors <Polygon><outerBoundaryIs><LinearRing><coordinates>.
type gmlPolygon struct {
	XMLName xml.Name    `xml:"Polygon"`
	Outer   gmlBoundary `xml:"outerBoundaryIs"`
}

type gmlBoundary struct {
	Ring gmlLinearRing `xml:"LinearRing"`
}

type gmlLinearRing struct {
	Coordinates string `xml:"coordinates"`
}

// ParseGMLCollection parses a GML-style feature collection document into raw
// records: ordered attribute columns plus the decoded geometry (or the
// per-record decode error).
//
// Malformed top-level input (unparseable XML, or a document with no feature
// members at all) is a terminal error. Everything below the member boundary
// is per-record: a member whose geometry cannot be decoded still contributes
// its attribute columns, carrying ErrNoGeometry instead of a geometry.
func ParseGMLCollection(data []byte, reproj Reprojector) ([]DecodedRecord, error) {
	var collection gmlCollection
	if err := xml.Unmarshal(data, &collection); err != nil {
		return nil, &ErrMalformedBuffer{Offset: 0, Reason: "input is not well-formed XML"}
	}
	if len(collection.Members) == 0 {
		return nil, &ErrNoGeometry{Reason: "document contains no feature members"}
	}

	records := make([]DecodedRecord, 0, len(collection.Members))
	for _, member := range collection.Members {
		records = append(records, decodeGMLMember(member.Feature, reproj))
	}
	return records, nil
}

// decodeGMLMember splits one feature node into attribute columns and a
// decoded geometry.
func decodeGMLMember(node gmlFeatureNode, reproj Reprojector) DecodedRecord {
	rec := DecodedRecord{
		Columns: make([]string, 0, len(node.Props)+1),
		Attrs:   make(map[string]Value, len(node.Props)+1),
	}

	if node.Fid != "" {
		rec.Columns = append(rec.Columns, "fid")
		rec.Attrs["fid"] = StringValue(node.Fid)
	}

	var polygons []gmlPolygon
	for _, prop := range node.Props {
		if members, ok := parseGeometryProperty(prop.Inner); ok {
			polygons = append(polygons, members...)
			continue
		}
		key := prop.XMLName.Local
		rec.Columns = append(rec.Columns, key)
		rec.Attrs[key] = StringValue(strings.TrimSpace(prop.Value))
	}

	geom, err := buildMultiPolygon(polygons, reproj)
	rec.Geometry = geom
	rec.Err = err
	return rec
}

// parseGeometryProperty re-parses a property's inner XML as a geometry tree.
// A singular Polygon and a list-valued MultiPolygon are normalized into a
// uniform polygon list. Returns ok=false for non-geometry properties.
func parseGeometryProperty(inner []byte) ([]gmlPolygon, bool) {
	trimmed := bytes.TrimSpace(inner)
	if len(trimmed) == 0 || trimmed[0] != '<' {
		return nil, false
	}

	var multi gmlMultiPolygon
	if err := xml.Unmarshal(trimmed, &multi); err == nil && len(multi.Members) > 0 {
		polygons := make([]gmlPolygon, 0, len(multi.Members))
		for _, m := range multi.Members {
			polygons = append(polygons, m.Polygon)
		}
		return polygons, true
	}

	var single gmlPolygon
	if err := xml.Unmarshal(trimmed, &single); err == nil && single.Outer.Ring.Coordinates != "" {
		return []gmlPolygon{single}, true
	}

	return nil, false
}

// buildMultiPolygon assembles decoded polygon members into one canonical
// MultiPolygon. Members whose outer ring keeps fewer than 3 valid points are
// dropped, not failed; zero surviving members yields ErrNoGeometry.
//
// Even a single surviving member is wrapped as a MultiPolygon so both source
// dialects produce one canonical shape downstream.
func buildMultiPolygon(polygons []gmlPolygon, reproj Reprojector) (Geometry, error) {
	members := make([][]Ring, 0, len(polygons))
	for _, polygon := range polygons {
		ring := parseCoordinateText(polygon.Outer.Ring.Coordinates, reproj)
		if len(ring) < 3 {
			continue // Degenerate member, skip without failing the record
		}
		members = append(members, []Ring{closeRing(ring)})
	}

	if len(members) == 0 {
		return Geometry{}, &ErrNoGeometry{Reason: "no polygon member with 3 or more valid points"}
	}

	return Geometry{Type: GeometryTypeMultiPolygon, Polygons: members}, nil
}

// parseCoordinateText splits GML coordinate text into reprojected pairs.
//
// Tokens are whitespace-separated "x,y" pairs. A token that does not yield
// exactly two finite numbers is discarded; the surviving points still form a
// ring if enough remain.
func parseCoordinateText(text string, reproj Reprojector) Ring {
	tokens := strings.Fields(text)
	ring := make(Ring, 0, len(tokens))

	for _, token := range tokens {
		parts := strings.Split(token, ",")
		if len(parts) != 2 {
			continue
		}
		x, errX := strconv.ParseFloat(parts[0], 64)
		y, errY := strconv.ParseFloat(parts[1], 64)
		if errX != nil || errY != nil {
			continue
		}

		lon, lat := reproj.ToWGS84(x, y)
		if !finitePair(lon, lat) {
			continue
		}
		ring = append(ring, []float64{lon, lat})
	}

	return ring
}
