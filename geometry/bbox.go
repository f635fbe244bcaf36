package geometry

import "github.com/twpayne/go-geom"

// BoundingBox is one of LngLatBox or PlanarBox.
type BoundingBox interface {
	// Contains reports whether the point lies inside the box, edges included.
	Contains(x, y float64) bool

	boundingBox()
}

// LngLatBox is a geographic tile extent in degrees.
type LngLatBox struct {
	West  float64
	South float64
	East  float64
	North float64
}

func (b LngLatBox) Contains(lng, lat float64) bool {
	return b.West <= lng && lng <= b.East && b.South <= lat && lat <= b.North
}

// Polygon returns the box as a WGS84 polygon.
func (b LngLatBox) Polygon() *geom.Polygon {
	return geom.NewBounds(geom.XY).Set(b.West, b.South, b.East, b.North).Polygon().SetSRID(4326)
}

func (LngLatBox) boundingBox() {}

// PlanarBox is a tile extent in viewport units, with y growing downward.
type PlanarBox struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func (b PlanarBox) Contains(x, y float64) bool {
	return b.Left <= x && x <= b.Right && b.Top <= y && y <= b.Bottom
}

func (PlanarBox) boundingBox() {}
