package geonorm

// GeoJSON export of a normalized batch.
//
// Structures follow the standard GeoJSON layout so a batch can be handed
// straight to table or map rendering glue.

// GeoJSONFeatureCollection represents a collection of geographic features.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type"`
	Features []GeoJSONFeature `json:"features"`
}

// GeoJSONFeature represents a single feature with geometry and properties.
type GeoJSONFeature struct {
	Type       string           `json:"type"`
	ID         string           `json:"id"`
	Properties map[string]Value `json:"properties"`
	Geometry   *GeoJSONGeometry `json:"geometry"`
}

// GeoJSONGeometry represents the geometry of a feature.
//
// Coordinates nest per the GeoJSON type: [][][]float64 for Polygon,
// [][][][]float64 for MultiPolygon.
type GeoJSONGeometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// ToGeoJSON converts a batch into a GeoJSON feature collection.
//
// Features whose geometry has no GeoJSON representation (the Unsupported
// tag) carry a null geometry; they cannot occur in batches produced by this
// package, which never assembles unsupported geometries into features.
func (b *Batch) ToGeoJSON() GeoJSONFeatureCollection {
	fc := GeoJSONFeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]GeoJSONFeature, 0, len(b.features)),
	}

	for _, feature := range b.features {
		fc.Features = append(fc.Features, GeoJSONFeature{
			Type:       "Feature",
			ID:         feature.id,
			Properties: feature.attributes,
			Geometry:   geometryToGeoJSON(feature.geometry),
		})
	}

	return fc
}

// geometryToGeoJSON maps a canonical geometry onto GeoJSON nesting.
func geometryToGeoJSON(geom Geometry) *GeoJSONGeometry {
	switch geom.Type {
	case GeometryTypePolygon:
		rings := make([][][]float64, 0, len(geom.Rings))
		for _, ring := range geom.Rings {
			rings = append(rings, ring)
		}
		return &GeoJSONGeometry{Type: "Polygon", Coordinates: rings}

	case GeometryTypeMultiPolygon:
		polygons := make([][][][]float64, 0, len(geom.Polygons))
		for _, member := range geom.Polygons {
			rings := make([][][]float64, 0, len(member))
			for _, ring := range member {
				rings = append(rings, ring)
			}
			polygons = append(polygons, rings)
		}
		return &GeoJSONGeometry{Type: "MultiPolygon", Coordinates: polygons}

	default:
		return nil
	}
}
