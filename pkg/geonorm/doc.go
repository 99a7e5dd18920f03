// Package geonorm normalizes geospatial vector data from heterogeneous
// external encodings into a single canonical feature model.
//
// Two source encodings are supported:
//
//   - Binary geometry transmitted as hexadecimal text (WKB-style): a
//     length-prefixed, byte-order-sensitive encoding of polygonal geometry,
//     typically one record per table row.
//   - A GML-style XML feature collection, in either a WFS-style or
//     OGR-style wrapper, nesting MultiPolygon/Polygon/LinearRing members.
//
// Both paths converge on a Batch: features (geometry + attributes) in
// WGS-84 lon/lat, a deduplicated ordered column manifest, the raw attribute
// rows, and a diagnostics summary of skipped and failed records.
//
// Basic usage:
//
//	parser := geonorm.NewParser()
//	batch, err := parser.ParseHexRecords(records, geonorm.DefaultParseOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, feature := range batch.Features() {
//	    fmt.Println(feature.ID(), feature.Geometry().Type)
//	}
//
// Malformed records never abort a batch: each failed record is counted into
// Batch.Diagnostics and dropped. Only a batch that produces zero features
// fails as a whole.
package geonorm
