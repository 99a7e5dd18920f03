package parser

import (
	"encoding/json"
	"strconv"
)

// Feature is the canonical record produced by normalization: a decoded
// geometry wrapped with an identifier and an open-schema attribute bag.
type Feature struct {
	// ID is the stable feature identifier: the source's id or fid
	// attribute when present, otherwise "feature-<index>" with the
	// record's 1-based position in the source.
	ID string

	// Geometry is the spatial representation in WGS-84 lon/lat.
	Geometry Geometry

	// Attributes contains the record's attribute columns. The resolved ID
	// is always present under the "id" key, alongside any raw columns.
	Attributes map[string]Value
}

// ValueKind tags the closed attribute value variant.
type ValueKind int

const (
	// ValueNull is the zero value: an absent or empty attribute.
	ValueNull ValueKind = iota

	// ValueString holds text.
	ValueString

	// ValueNumber holds a double-precision number.
	ValueNumber
)

// Value is a single attribute value: a string, a number, or null.
//
// Source columns are inherently open-schema, so the bag maps string keys to
// this small closed variant rather than to an untyped value.
type Value struct {
	kind ValueKind
	str  string
	num  float64
}

// StringValue returns a string-kinded value.
func StringValue(s string) Value {
	return Value{kind: ValueString, str: s}
}

// NumberValue returns a number-kinded value.
func NumberValue(f float64) Value {
	return Value{kind: ValueNumber, num: f}
}

// NullValue returns the null value.
func NullValue() Value {
	return Value{}
}

// Kind returns the variant tag.
func (v Value) Kind() ValueKind {
	return v.kind
}

// String returns the text form of the value. Numbers are formatted with the
// shortest representation that round-trips; null is the empty string.
func (v Value) String() string {
	switch v.kind {
	case ValueString:
		return v.str
	case ValueNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	default:
		return ""
	}
}

// Number returns the numeric form and whether the value is number-kinded.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == ValueNumber
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == ValueNull
}

// MarshalJSON encodes the value as a JSON string, number, or null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueString:
		return json.Marshal(v.str)
	case ValueNumber:
		return json.Marshal(v.num)
	default:
		return []byte("null"), nil
	}
}

// columnManifest accumulates distinct attribute column names across a batch,
// preserving first-seen order: a hash set for membership, a list for order.
//
// The manifest always begins with "id" then "geometry".
type columnManifest struct {
	seen  map[string]struct{}
	order []string
}

func newColumnManifest() *columnManifest {
	m := &columnManifest{
		seen:  make(map[string]struct{}),
		order: make([]string, 0, 8),
	}
	m.add("id")
	m.add("geometry")
	return m
}

// add records a column name if it has not been seen before.
func (m *columnManifest) add(key string) {
	if _, ok := m.seen[key]; ok {
		return
	}
	m.seen[key] = struct{}{}
	m.order = append(m.order, key)
}

// columns returns the manifest in first-seen order.
func (m *columnManifest) columns() []string {
	return m.order
}
