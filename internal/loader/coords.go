package loader

import "dispatchsim/internal/domain"

// Synthetic dataset coordinate bounds (MDRP-style public dataset) and the
// La Paz, B.C.S. bounding box synthetic instances are projected onto.
const (
	xMin, xMax = 0.0, 35124.0
	yMin, yMax = 0.0, 54766.0

	latMin, latMax = 24.0976, 24.1876
	lonMin, lonMax = -110.3624, -110.2636
)

// XYToLatLon affine-transforms a synthetic dataset coordinate pair into a
// domain.Point inside the La Paz bounding box.
func XYToLatLon(x, y float64) domain.Point {
	lon := lonMin + (x-xMin)/(xMax-xMin)*(lonMax-lonMin)
	lat := latMin + (y-yMin)/(yMax-yMin)*(latMax-latMin)
	return domain.Point{Lat: lat, Lng: lon}
}
