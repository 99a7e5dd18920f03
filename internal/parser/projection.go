package parser

import (
	"math"
)

// Reprojector converts a source-CRS coordinate pair into WGS-84
// longitude/latitude (decimal degrees).
//
// Implementations must be pure, total, and allocation-free: every (x, y)
// input yields some (lon, lat) output with no side effects, which keeps
// per-record decodes safe to fan out across goroutines.
type Reprojector interface {
	// ToWGS84 converts source coordinates to lon/lat in degrees.
	ToWGS84(x, y float64) (lon, lat float64)
}

// maxMercatorLat is the latitude bound of the square Web Mercator world.
const maxMercatorLat = 85.05112878

// WebMercator reprojects spherical Web Mercator meters (EPSG:3857)
// to WGS-84 lon/lat. Latitude is clamped to the projection's valid range.
type WebMercator struct{}

// ToWGS84 applies the inverse spherical Mercator projection.
func (WebMercator) ToWGS84(x, y float64) (lon, lat float64) {
	const earthRadius = 6378137.0

	lon = (x / earthRadius) * (180.0 / math.Pi)

	// Inverse Mercator for latitude
	latRad := 2.0*math.Atan(math.Exp(y/earthRadius)) - math.Pi/2.0
	lat = latRad * (180.0 / math.Pi)

	if lat > maxMercatorLat {
		lat = maxMercatorLat
	} else if lat < -maxMercatorLat {
		lat = -maxMercatorLat
	}

	return lon, lat
}

// Puwg1992 reprojects the Polish national grid PUWG 1992 (EPSG:2180)
// to WGS-84 lon/lat.
//
// PUWG 1992 is a transverse Mercator projection on the GRS-80 ellipsoid:
// central meridian 19°E, scale factor 0.9993, false easting 500 000 m,
// false northing -5 300 000 m. The inverse uses the footpoint-latitude
// series expansion; accuracy is well below a meter over Polish territory.
type Puwg1992 struct{}

// GRS-80 ellipsoid and PUWG 1992 projection constants.
const (
	grs80A  = 6378137.0         // Semi-major axis (m)
	grs80F  = 1 / 298.257222101 // Flattening
	puwgK0  = 0.9993            // Scale factor on the central meridian
	puwgLon = 19.0              // Central meridian (degrees east)
	puwgFE  = 500000.0          // False easting (m)
	puwgFN  = -5300000.0        // False northing (m)
)

// ToWGS84 applies the inverse transverse Mercator projection.
// x is the grid easting, y the grid northing, both in meters.
func (Puwg1992) ToWGS84(x, y float64) (lon, lat float64) {
	e2 := 2*grs80F - grs80F*grs80F // First eccentricity squared
	ep2 := e2 / (1 - e2)           // Second eccentricity squared

	// Meridian arc length from the equator to the footpoint
	m := (y - puwgFN) / puwgK0
	mu := m / (grs80A * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256))

	e1 := (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))

	// Footpoint latitude
	phi1 := mu +
		(3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu) +
		(1097*e1*e1*e1*e1/512)*math.Sin(8*mu)

	sinPhi1 := math.Sin(phi1)
	cosPhi1 := math.Cos(phi1)
	tanPhi1 := sinPhi1 / cosPhi1

	c1 := ep2 * cosPhi1 * cosPhi1
	t1 := tanPhi1 * tanPhi1
	n1 := grs80A / math.Sqrt(1-e2*sinPhi1*sinPhi1)
	r1 := grs80A * (1 - e2) / math.Pow(1-e2*sinPhi1*sinPhi1, 1.5)
	d := (x - puwgFE) / (n1 * puwgK0)

	phi := phi1 - (n1*tanPhi1/r1)*(d*d/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*d*d*d*d/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*d*d*d*d*d*d/720)

	lambda := (d -
		(1+2*t1+c1)*d*d*d/6 +
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*d*d*d*d*d/120) / cosPhi1

	lat = phi * (180.0 / math.Pi)
	lon = puwgLon + lambda*(180.0/math.Pi)

	return lon, lat
}

// Identity passes coordinates through unchanged.
// Used for source data already in lon/lat and throughout the test suite.
type Identity struct{}

// ToWGS84 returns (x, y) as (lon, lat).
func (Identity) ToWGS84(x, y float64) (lon, lat float64) {
	return x, y
}
