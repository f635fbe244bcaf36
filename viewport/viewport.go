// Package viewport models the read-only camera state the tile math needs:
// a zoom level, a coordinate regime and a planar bounding box.
package viewport

import "math"

// Bounds is a bounding box in the viewport's native units: [minX, minY, maxX, maxY].
type Bounds [4]float64

// Empty reports whether the bounds cover no area.
// Inverted and NaN bounds are empty.
func (b Bounds) Empty() bool {
	return !(b[0] < b[2]) || !(b[1] < b[3])
}

// Viewport is one of Geospatial or Planar.
type Viewport interface {
	Zoom() float64
	Bounds() Bounds

	sealed()
}

// Geospatial is a Web-Mercator viewport; its bounds are [minLng, minLat, maxLng, maxLat].
type Geospatial struct {
	zoom   float64
	bounds Bounds
}

// NewGeospatial returns a geospatial viewport at the given zoom level.
func NewGeospatial(zoom float64, bounds Bounds) Geospatial {
	return Geospatial{zoom: zoom, bounds: bounds}
}

func (v Geospatial) Zoom() float64  { return v.zoom }
func (v Geospatial) Bounds() Bounds { return v.bounds }
func (Geospatial) sealed()          {}

// Planar is a non-geographic viewport over an unbounded linear space.
type Planar struct {
	zoom   float64
	bounds Bounds
}

// NewPlanar returns a planar viewport at the given zoom level.
func NewPlanar(zoom float64, bounds Bounds) Planar {
	return Planar{zoom: zoom, bounds: bounds}
}

func (v Planar) Zoom() float64  { return v.zoom }
func (v Planar) Bounds() Bounds { return v.bounds }
func (Planar) sealed()          {}

// IsGeospatial reports whether v uses the Web-Mercator regime.
func IsGeospatial(v Viewport) bool {
	_, ok := v.(Geospatial)
	return ok
}

// Finite reports whether the zoom level and all bounds are finite numbers.
func Finite(v Viewport) bool {
	if math.IsNaN(v.Zoom()) || math.IsInf(v.Zoom(), 0) {
		return false
	}
	for _, c := range v.Bounds() {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
