// Package geometry converts between world coordinates, tile indices and tile
// bounding boxes in both the Web-Mercator (slippy-map) and the planar regime.
package geometry

import (
	"math"

	"github.com/eak1mov/go-tilecover/tile"
	"github.com/eak1mov/go-tilecover/viewport"
)

// StandardTileSize is the pixel size of one tile at the reference scale.
const StandardTileSize = 512

// MaxLatitude is the latitude bound of the square Web-Mercator world.
const MaxLatitude = 85.0511287798066

// ScaleForZoom returns the pixel scale of zoom level z for tiles of tileSize pixels.
// A non-positive tileSize means StandardTileSize.
func ScaleForZoom(z int, tileSize float64) float64 {
	if tileSize <= 0 {
		tileSize = StandardTileSize
	}
	return math.Ldexp(1, z) * StandardTileSize / tileSize
}

// WorldToTileIndex maps a world point to fractional tile grid coordinates.
func WorldToTileIndex(x, y, scale float64) (float64, float64) {
	return x * scale / StandardTileSize, y * scale / StandardTileSize
}

// TileToPlanarXY returns the world position of the tile grid corner (x, y)
// at level z. It is the inverse of WorldToTileIndex.
func TileToPlanarXY(x, y, z int, tileSize float64) (float64, float64) {
	scale := ScaleForZoom(z, tileSize)
	return float64(x) / scale * StandardTileSize, float64(y) / scale * StandardTileSize
}

// TileToLngLat returns the longitude and latitude of the slippy-map grid corner (x, y) at level z.
// See https://wiki.openstreetmap.org/wiki/Slippy_map_tilenames
func TileToLngLat(x, y, z int) (lng, lat float64) {
	scale := math.Ldexp(1, z)
	lng = float64(x)/scale*360 - 180
	n := math.Pi - 2*math.Pi*float64(y)/scale
	lat = 180 / math.Pi * math.Atan(math.Sinh(n))
	return lng, lat
}

// LngLatToTile maps a geographic point to fractional slippy-map grid coordinates at level z.
// Latitude is clamped to ±MaxLatitude.
func LngLatToTile(lng, lat float64, z int) (float64, float64) {
	scale := math.Ldexp(1, z)
	lat = max(-MaxLatitude, min(MaxLatitude, lat))
	latRad := lat * math.Pi / 180
	fx := (lng + 180) / 360 * scale
	fy := (1 - math.Asinh(math.Tan(latRad))/math.Pi) / 2 * scale
	return fx, fy
}

// TileToBoundingBox returns the extent of tile id in the regime of vp:
// a LngLatBox for geospatial viewports, a PlanarBox otherwise.
func TileToBoundingBox(vp viewport.Viewport, id tile.ID, tileSize float64) BoundingBox {
	switch vp.(type) {
	case viewport.Geospatial:
		// y grows southward, so the lower corner index gives the north edge.
		west, north := TileToLngLat(id.X, id.Y, id.Z)
		east, south := TileToLngLat(id.X+1, id.Y+1, id.Z)
		return LngLatBox{West: west, South: south, East: east, North: north}
	default:
		left, top := TileToPlanarXY(id.X, id.Y, id.Z, tileSize)
		right, bottom := TileToPlanarXY(id.X+1, id.Y+1, id.Z, tileSize)
		return PlanarBox{Left: left, Top: top, Right: right, Bottom: bottom}
	}
}
