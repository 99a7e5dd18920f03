package parser

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// DecodedRecord is the per-record intermediate between geometry decoding and
// feature assembly: ordered attribute columns plus either a geometry or the
// decode error. Attribute extraction and geometry decoding are independent
// failure domains, so columns are populated even when Err is set.
type DecodedRecord struct {
	Columns  []string
	Attrs    map[string]Value
	Geometry Geometry
	Err      error
}

// Batch is the canonical result of one parse invocation.
type Batch struct {
	// Features holds the assembled features in source order.
	Features []Feature

	// Columns is the deduplicated column manifest in first-seen order,
	// always beginning with "id" then "geometry".
	Columns []string

	// Rows holds the raw attribute mappings of records that produced a
	// feature, in source order.
	Rows []map[string]Value

	// Diagnostics summarizes per-record failures for the caller to surface.
	Diagnostics Diagnostics
}

// Diagnostics is the explicit per-batch failure summary returned to the
// caller in place of any ambient notification channel. The caller decides
// how and whether to surface it; the expectation is a single summary
// warning, never one notification per failed record.
type Diagnostics struct {
	// Skipped counts records dropped for recognized, non-fatal reasons:
	// unsupported geometry types and members with no valid polygon.
	Skipped int

	// Failed counts records dropped for malformed input: bad hex, count
	// overruns, non-finite coordinates.
	Failed int

	// Messages holds one line per dropped record.
	Messages []string
}

// assembleBatch wraps decoded records into canonical features and
// accumulates the column manifest.
//
// Per-record policy: every record's attribute keys join the manifest before
// the geometry outcome is considered; records whose geometry failed
// contribute no feature and no raw row. A batch that produces zero features
// is a terminal ErrEmptyResult.
func assembleBatch(records []DecodedRecord, opts ParseOptions) (*Batch, error) {
	batch := &Batch{
		Features: make([]Feature, 0, len(records)),
		Rows:     make([]map[string]Value, 0, len(records)),
	}
	manifest := newColumnManifest()

	for i, rec := range records {
		index := i + 1 // Positional ids are 1-based

		// Keys are unioned before skip-on-no-geometry is applied.
		for _, key := range rec.Columns {
			manifest.add(key)
		}

		err := rec.Err
		if err == nil && opts.ValidateGeometry {
			err = ValidateGeometry(&rec.Geometry)
		}
		if err != nil {
			recordDropped(&batch.Diagnostics, index, err)
			continue
		}

		id := resolveID(rec.Attrs, index)
		attrs := make(map[string]Value, len(rec.Attrs)+1)
		for k, v := range rec.Attrs {
			attrs[k] = v
		}
		attrs["id"] = StringValue(id)

		batch.Features = append(batch.Features, Feature{
			ID:         id,
			Geometry:   rec.Geometry,
			Attributes: attrs,
		})
		batch.Rows = append(batch.Rows, rec.Attrs)
	}

	batch.Columns = manifest.columns()

	if len(batch.Features) == 0 {
		return nil, &ErrEmptyResult{
			Records: len(records),
			Failed:  batch.Diagnostics.Failed,
		}
	}

	return batch, nil
}

// resolveID derives the feature identifier: the id attribute if present,
// else fid, else a synthesized positional identifier.
func resolveID(attrs map[string]Value, index int) string {
	if v, ok := attrs["id"]; ok && !v.IsNull() && v.String() != "" {
		return v.String()
	}
	if v, ok := attrs["fid"]; ok && !v.IsNull() && v.String() != "" {
		return v.String()
	}
	return fmt.Sprintf("feature-%d", index)
}

// recordDropped classifies a per-record failure into the diagnostics
// summary and logs it at debug level.
func recordDropped(diag *Diagnostics, index int, err error) {
	var unsupported *ErrUnsupportedGeometryType
	var noGeometry *ErrNoGeometry

	if errors.As(err, &unsupported) || errors.As(err, &noGeometry) {
		diag.Skipped++
	} else {
		diag.Failed++
	}
	diag.Messages = append(diag.Messages, fmt.Sprintf("record %d: %v", index, err))

	log.Debug().
		Int("record", index).
		Err(err).
		Msg("Record contributes no feature")
}
