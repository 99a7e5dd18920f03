package geonorm

import (
	"github.com/beetlebugorg/geonorm/internal/parser"
	"github.com/dhconnelly/rtreego"
)

// Value is a single attribute value: a string, a number, or null.
type Value = parser.Value

// StringValue returns a string-kinded value.
func StringValue(s string) Value { return parser.StringValue(s) }

// NumberValue returns a number-kinded value.
func NumberValue(f float64) Value { return parser.NumberValue(f) }

// NullValue returns the null value.
func NullValue() Value { return parser.NullValue() }

// Record is one raw input row for the binary path: attribute columns in
// source order plus the hex-encoded geometry.
type Record = parser.Record

// Geometry is the canonical spatial representation of a feature.
type Geometry = parser.Geometry

// GeometryType tags the Geometry union.
type GeometryType = parser.GeometryType

// Geometry type tags re-exported for callers dispatching on Batch output.
const (
	GeometryTypePoint           = parser.GeometryTypePoint
	GeometryTypeLineString      = parser.GeometryTypeLineString
	GeometryTypePolygon         = parser.GeometryTypePolygon
	GeometryTypeMultiPoint      = parser.GeometryTypeMultiPoint
	GeometryTypeMultiLineString = parser.GeometryTypeMultiLineString
	GeometryTypeMultiPolygon    = parser.GeometryTypeMultiPolygon
	GeometryTypeCollection      = parser.GeometryTypeCollection
	GeometryTypeUnsupported     = parser.GeometryTypeUnsupported
)

// Diagnostics summarizes per-record failures of a batch.
type Diagnostics = parser.Diagnostics

// Parser normalizes vector-geometry inputs into canonical feature batches.
//
// Create a parser with NewParser and use ParseHexRecords or ParseGML.
type Parser interface {
	// ParseHexRecords normalizes a batch of attribute rows whose geometry
	// column holds hex-encoded binary geometry (Web-Mercator-like source
	// coordinates).
	ParseHexRecords(records []Record, opts ParseOptions) (*Batch, error)

	// ParseGML normalizes a GML-style feature collection document
	// (Polish national grid source coordinates).
	ParseGML(data []byte, opts ParseOptions) (*Batch, error)
}

// NewParser creates a parser with the production reprojectors:
// Web Mercator for the binary path, PUWG 1992 for the XML path.
//
// Example:
//
//	parser := geonorm.NewParser()
//	batch, err := parser.ParseGML(document, geonorm.DefaultParseOptions())
func NewParser() Parser {
	return &parserWrapper{
		internal: parser.NewParser(),
	}
}

// parserWrapper wraps the internal parser and converts result types
type parserWrapper struct {
	internal parser.Parser
}

func (p *parserWrapper) ParseHexRecords(records []Record, opts ParseOptions) (*Batch, error) {
	internalBatch, err := p.internal.ParseHexRecords(records, opts.internal())
	if err != nil {
		return nil, err
	}
	return convertBatch(internalBatch), nil
}

func (p *parserWrapper) ParseGML(data []byte, opts ParseOptions) (*Batch, error) {
	internalBatch, err := p.internal.ParseGML(data, opts.internal())
	if err != nil {
		return nil, err
	}
	return convertBatch(internalBatch), nil
}

// Batch is the canonical result of one parse invocation.
//
// It holds the assembled features, the column manifest, the raw attribute
// rows, a diagnostics summary, and a spatial index over feature bounds for
// viewport queries.
//
// All fields are private to maintain encapsulation; batches are immutable
// after construction.
type Batch struct {
	features     []Feature
	columns      []string
	rows         []map[string]Value
	diagnostics  Diagnostics
	bounds       Bounds
	spatialIndex *spatialIndex
}

// Features returns the assembled features in source order.
func (b *Batch) Features() []Feature {
	return b.features
}

// FeatureCount returns the number of features in the batch.
func (b *Batch) FeatureCount() int {
	return len(b.features)
}

// Columns returns the deduplicated column manifest in first-seen order.
// Index 0 is always "id" and index 1 "geometry".
func (b *Batch) Columns() []string {
	return b.columns
}

// Rows returns the raw attribute mappings of records that produced a
// feature, in source order.
func (b *Batch) Rows() []map[string]Value {
	return b.rows
}

// Diagnostics returns the per-record failure summary for this batch.
//
// Callers are expected to surface a single summary warning from these
// counts, never one notification per dropped record.
func (b *Batch) Diagnostics() Diagnostics {
	return b.diagnostics
}

// Bounds returns the geographic coverage of all features in the batch.
func (b *Batch) Bounds() Bounds {
	return b.bounds
}

// FeaturesInBounds returns all features whose bounding box intersects the
// given viewport.
//
// Queries run against an R-tree in O(log n); a linear scan is the fallback
// when no index was built.
func (b *Batch) FeaturesInBounds(bounds Bounds) []Feature {
	if b.spatialIndex == nil || b.spatialIndex.rtree == nil {
		return b.featuresInBoundsLinear(bounds)
	}

	point := rtreego.Point{bounds.MinLon, bounds.MinLat}
	lengths := []float64{
		bounds.MaxLon - bounds.MinLon,
		bounds.MaxLat - bounds.MinLat,
	}
	queryRect, err := rtreego.NewRect(point, lengths)
	if err != nil {
		return b.featuresInBoundsLinear(bounds)
	}

	spatials := b.spatialIndex.rtree.SearchIntersect(queryRect)

	result := make([]Feature, 0, len(spatials))
	for _, spatial := range spatials {
		indexed := spatial.(*indexedFeature)
		result = append(result, indexed.feature)
	}

	return result
}

// featuresInBoundsLinear performs linear search when no spatial index exists.
func (b *Batch) featuresInBoundsLinear(bounds Bounds) []Feature {
	result := make([]Feature, 0)
	for _, feature := range b.features {
		if bounds.Intersects(featureBounds(feature)) {
			result = append(result, feature)
		}
	}
	return result
}

// Feature represents one normalized record: geometry plus attributes.
//
// Access feature data via methods:
//   - ID() returns the stable identifier
//   - Geometry() returns the spatial representation
//   - Attributes() returns all attributes
//   - Attribute(name) returns a specific attribute value
type Feature struct {
	id         string
	geometry   Geometry
	attributes map[string]Value
}

// ID returns the stable feature identifier: the source's id or fid column
// when present, otherwise "feature-<index>" by 1-based source position.
func (f *Feature) ID() string {
	return f.id
}

// Geometry returns the spatial representation of the feature in WGS-84.
func (f *Feature) Geometry() Geometry {
	return f.geometry
}

// Attributes returns all feature attributes as a map.
// The resolved id is always present under the "id" key.
func (f *Feature) Attributes() map[string]Value {
	return f.attributes
}

// Attribute returns a specific attribute value by name.
//
// Returns the value and true if the attribute exists, or the null value and
// false if not found.
func (f *Feature) Attribute(name string) (Value, bool) {
	val, ok := f.attributes[name]
	return val, ok
}

// spatialIndex provides O(log n) viewport queries using an R-tree.
type spatialIndex struct {
	rtree *rtreego.Rtree
}

// indexedFeature wraps a feature for R-tree storage.
type indexedFeature struct {
	feature Feature
	bounds  Bounds
}

// Bounds implements rtreego.Spatial.
func (f *indexedFeature) Bounds() rtreego.Rect {
	point := rtreego.Point{f.bounds.MinLon, f.bounds.MinLat}

	// R-tree requires non-zero dimensions; degenerate boxes get a small
	// epsilon (~11 meters at the equator).
	const epsilon = 0.0001
	lonLength := f.bounds.MaxLon - f.bounds.MinLon
	latLength := f.bounds.MaxLat - f.bounds.MinLat
	if lonLength < epsilon {
		lonLength = epsilon
	}
	if latLength < epsilon {
		latLength = epsilon
	}

	rect, _ := rtreego.NewRect(point, []float64{lonLength, latLength})
	return rect
}

// convertBatch converts the internal batch to the public API shape and
// builds its spatial index.
func convertBatch(internal *parser.Batch) *Batch {
	features := make([]Feature, len(internal.Features))
	for i, f := range internal.Features {
		features[i] = Feature{
			id:         f.ID,
			geometry:   f.Geometry,
			attributes: f.Attributes,
		}
	}

	batch := &Batch{
		features:    features,
		columns:     internal.Columns,
		rows:        internal.Rows,
		diagnostics: internal.Diagnostics,
	}
	batch.buildSpatialIndex()

	return batch
}

// buildSpatialIndex creates the R-tree over feature bounds and computes the
// batch's geographic coverage.
func (b *Batch) buildSpatialIndex() {
	if len(b.features) == 0 {
		return
	}

	// 2D tree, 25-50 children per node
	rtree := rtreego.NewTree(2, 25, 50)

	var batchBounds *Bounds
	for _, feature := range b.features {
		fb := featureBounds(feature)

		rtree.Insert(&indexedFeature{
			feature: feature,
			bounds:  fb,
		})

		if batchBounds == nil {
			box := fb
			batchBounds = &box
		} else {
			*batchBounds = batchBounds.Union(fb)
		}
	}

	b.spatialIndex = &spatialIndex{rtree: rtree}
	if batchBounds != nil {
		b.bounds = *batchBounds
	}
}
