package parser

// Parser normalizes heterogeneous vector-geometry inputs into canonical
// feature batches.
//
// Two source encodings are supported: binary geometry transmitted as
// hexadecimal text (one record per table row), and a GML-style XML feature
// collection. Both converge on the same Batch shape, with every coordinate
// reprojected into WGS-84 lon/lat.
type Parser interface {
	// ParseHexRecords normalizes a batch of attribute rows whose geometry
	// column holds hex-encoded binary geometry.
	//
	// Records that fail geometry decoding are skipped and counted; the
	// whole call fails only when zero features result.
	ParseHexRecords(records []Record, opts ParseOptions) (*Batch, error)

	// ParseGML normalizes a GML-style feature collection document.
	//
	// Fails when the document is not well-formed or holds no feature
	// members; individual members that yield no valid polygon are skipped.
	ParseGML(data []byte, opts ParseOptions) (*Batch, error)
}

// Record is one raw input row for the binary path: attribute columns in
// source order plus the hex-encoded geometry.
type Record struct {
	// Columns lists attribute keys in the order the source presented them.
	Columns []string

	// Values holds the attribute values keyed by column name.
	Values map[string]Value

	// GeomHex is the hex-encoded binary geometry for this row.
	GeomHex string
}

// ParseOptions configures normalization behavior.
type ParseOptions struct {
	// ValidateGeometry: if true, check decoded coordinates against
	// geographic bounds and reject out-of-range rings.
	// Default: true
	ValidateGeometry bool

	// Parallel enables concurrent per-record geometry decoding.
	// Batch outputs are identical to the serial path: positional ids and
	// manifest order derive from source position, not completion order.
	Parallel bool

	// Workers is the number of decode goroutines when Parallel is set.
	// If 0, defaults to runtime.NumCPU().
	Workers int

	// Progress is an optional callback invoked after each record decode.
	// Parameters are (done, total).
	Progress func(done, total int)
}

// DefaultParseOptions returns parse options with defaults.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		ValidateGeometry: true,
		Parallel:         false,
		Workers:          0,
		Progress:         nil,
	}
}

// defaultParser implements the Parser interface.
//
// Each input path owns a reprojector: the binary path's sources deliver
// Web-Mercator-like coordinates, the XML path's sources deliver Polish
// national grid coordinates.
type defaultParser struct {
	binaryReproj Reprojector
	xmlReproj    Reprojector
}

// NewParser creates a parser with the production reprojectors.
func NewParser() Parser {
	return NewParserWith(WebMercator{}, Puwg1992{})
}

// NewParserWith creates a parser with explicit reprojectors per input path.
func NewParserWith(binary, xml Reprojector) Parser {
	return &defaultParser{
		binaryReproj: binary,
		xmlReproj:    xml,
	}
}

// ParseHexRecords decodes every record's geometry, then assembles the batch.
func (p *defaultParser) ParseHexRecords(records []Record, opts ParseOptions) (*Batch, error) {
	decoded := decodeHexRecords(records, p.binaryReproj, opts)
	return assembleBatch(decoded, opts)
}

// ParseGML parses the collection document, then assembles the batch.
func (p *defaultParser) ParseGML(data []byte, opts ParseOptions) (*Batch, error) {
	decoded, err := ParseGMLCollection(data, p.xmlReproj)
	if err != nil {
		return nil, err
	}
	return assembleBatch(decoded, opts)
}
