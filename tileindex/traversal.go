package tileindex

import (
	"math"
	"slices"

	"github.com/eak1mov/go-tilecover/geometry"
	"github.com/eak1mov/go-tilecover/tile"
	"github.com/eak1mov/go-tilecover/viewport"
)

// Traversal enumerates the slippy-map tiles covering a geospatial viewport at level z.
type Traversal interface {
	TileIndices(vp viewport.Geospatial, z int, zRange *ZRange) []tile.ID
}

// TraversalFunc adapts an ordinary function to the Traversal interface.
type TraversalFunc func(vp viewport.Geospatial, z int, zRange *ZRange) []tile.ID

func (f TraversalFunc) TileIndices(vp viewport.Geospatial, z int, zRange *ZRange) []tile.ID {
	return f(vp, z, zRange)
}

// OSMTraversal covers the viewport's lng/lat bounds with tiles of a single level,
// clipped to the world grid and returned in Hilbert curve order.
//
// Negative levels are treated as level 0. Levels above 31 yield no tiles, as
// tile.ID cannot address them; Resolver reports such viewports as degenerate
// before calling the traversal. The zRange hint is ignored: a flat bounds
// cover does not depend on it.
type OSMTraversal struct{}

func (OSMTraversal) TileIndices(vp viewport.Geospatial, z int, _ *ZRange) []tile.ID {
	z = max(z, 0)
	b := vp.Bounds()
	if z > maxGeospatialZoom || b.Empty() {
		return nil
	}
	n := float64(int(1) << z)

	minX, minY := geometry.LngLatToTile(b[0], b[3], z)
	maxX, maxY := geometry.LngLatToTile(b[2], b[1], z)

	clip := func(v float64) int { return int(math.Min(math.Max(v, 0), n)) }
	rect := tile.Rect{
		MinX: clip(math.Floor(minX)),
		MinY: clip(math.Floor(minY)),
		MaxX: clip(math.Ceil(maxX)),
		MaxY: clip(math.Ceil(maxY)),
		Z:    z,
	}
	indices := slices.Collect(rect.All())
	tile.SortHilbert(indices)
	return indices
}
