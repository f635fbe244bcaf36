// Package tileindex resolves the set of tiles covering a viewport under a zoom policy.
package tileindex

import (
	"iter"
	"log/slog"
	"math"
	"slices"

	"github.com/eak1mov/go-tilecover/geometry"
	"github.com/eak1mov/go-tilecover/metrics"
	"github.com/eak1mov/go-tilecover/tile"
	"github.com/eak1mov/go-tilecover/viewport"
)

// NoLimit disables a zoom limit. Any non-finite limit has the same effect.
var NoLimit = math.NaN()

// zoomLimit bounds the integer zoom levels the resolver works with; beyond it
// 2^z leaves the range where tile coordinates fit into an int.
const zoomLimit = 62

// maxGeospatialZoom is the deepest level of the slippy-map grid a tile.ID can address.
const maxGeospatialZoom = 31

// maxTileCoord bounds planar tile coordinates: past 2^53 a float64 no longer
// tells adjacent tiles apart.
const maxTileCoord = 1 << 53

// ZRange is an optional [Min, Max] hint passed through to the Traversal.
type ZRange struct {
	Min float64
	Max float64
}

// Indexer is implemented by Resolver and CachedResolver.
type Indexer interface {
	TileIndices(vp viewport.Viewport) []tile.ID
}

type resolverConfig struct {
	MaxZoom   float64
	MinZoom   float64
	ZRange    *ZRange
	TileSize  float64
	Traversal Traversal
	Logger    *slog.Logger
	Metrics   *metrics.Resolver
}

// Option configures a Resolver.
type Option func(*resolverConfig)

// WithMaxZoom sets the level above which tiles of the max level are reused.
func WithMaxZoom(z float64) Option {
	return func(c *resolverConfig) { c.MaxZoom = z }
}

// WithMinZoom sets the level below which no tiles are requested.
func WithMinZoom(z float64) Option {
	return func(c *resolverConfig) { c.MinZoom = z }
}

// WithZRange sets the elevation hint handed to the Traversal.
func WithZRange(zRange ZRange) Option {
	return func(c *resolverConfig) { c.ZRange = &zRange }
}

// WithTileSize sets the tile pixel size used by the planar regime. Non-positive means 512.
func WithTileSize(tileSize float64) Option {
	return func(c *resolverConfig) { c.TileSize = tileSize }
}

// WithTraversal replaces the geospatial traversal (OSMTraversal by default).
func WithTraversal(traversal Traversal) Option {
	return func(c *resolverConfig) { c.Traversal = traversal }
}

// WithLogger sets the logger for zoom policy decisions. Logging is discarded by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *resolverConfig) { c.Logger = logger }
}

// WithMetrics enables resolver counters. Nil disables them.
func WithMetrics(m *metrics.Resolver) Option {
	return func(c *resolverConfig) { c.Metrics = m }
}

// Resolver computes the tiles covering a viewport. It holds no mutable state
// and is safe for concurrent use.
type Resolver struct {
	config resolverConfig
}

// NewResolver creates a Resolver. Without options zoom is unlimited, tiles are
// 512 pixels and geospatial viewports use OSMTraversal.
func NewResolver(opts ...Option) *Resolver {
	config := resolverConfig{
		MaxZoom:   NoLimit,
		MinZoom:   NoLimit,
		TileSize:  geometry.StandardTileSize,
		Traversal: OSMTraversal{},
		Logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Traversal == nil {
		config.Traversal = OSMTraversal{}
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{config}
}

// GetTileIndices is a shorthand for NewResolver(...).TileIndices(vp).
// Non-finite maxZoom and minZoom mean no limit; zRange may be nil.
func GetTileIndices(vp viewport.Viewport, maxZoom, minZoom float64, zRange *ZRange, tileSize float64) []tile.ID {
	opts := []Option{WithMaxZoom(maxZoom), WithMinZoom(minZoom), WithTileSize(tileSize)}
	if zRange != nil {
		opts = append(opts, WithZRange(*zRange))
	}
	return NewResolver(opts...).TileIndices(vp)
}

// TileIndices returns the tiles covering vp at level ceil(vp.Zoom()).
//
// Below the min zoom the result is empty; above the max zoom the level is
// clamped to the max zoom. Viewports with non-finite zoom or bounds, with
// zero-area or inverted bounds, or with tile coordinates beyond 2^53 yield
// an empty result. The order of the result carries no meaning.
func (r *Resolver) TileIndices(vp viewport.Viewport) []tile.ID {
	return slices.Collect(r.All(vp))
}

// All returns an iterator over the tiles TileIndices would return.
// Planar tiles are produced as they are consumed. Metrics are recorded when
// the iteration ends, with the number of tiles actually yielded.
func (r *Resolver) All(vp viewport.Viewport) iter.Seq[tile.ID] {
	return func(yield func(tile.ID) bool) {
		regime := regimeOf(vp)
		tiles, outcome := r.plan(vp)
		count := 0
		defer func() { r.config.Metrics.ObserveResolve(regime, outcome, count) }()
		if tiles == nil {
			return
		}
		for tileID := range tiles {
			count++
			if !yield(tileID) {
				return
			}
		}
	}
}

// plan applies the zoom policy and picks the enumeration for vp.
// It returns a nil sequence for every outcome that yields no tiles.
func (r *Resolver) plan(vp viewport.Viewport) (iter.Seq[tile.ID], string) {
	logger := r.config.Logger

	if !viewport.Finite(vp) || vp.Bounds().Empty() {
		logger.Debug("tilecover: degenerate viewport", "zoom", vp.Zoom(), "bounds", vp.Bounds())
		return nil, metrics.OutcomeDegenerate
	}

	z := math.Ceil(vp.Zoom())
	outcome := metrics.OutcomeResolved
	if finite(r.config.MinZoom) && z < r.config.MinZoom {
		logger.Debug("tilecover: zoom below minimum", "z", z, "minZoom", r.config.MinZoom)
		return nil, metrics.OutcomeBelowMin
	}
	if finite(r.config.MaxZoom) && z > r.config.MaxZoom {
		logger.Debug("tilecover: zoom clamped to maximum", "z", z, "maxZoom", r.config.MaxZoom)
		z = math.Floor(r.config.MaxZoom)
		outcome = metrics.OutcomeClamped
	}
	if math.Abs(z) > zoomLimit {
		logger.Debug("tilecover: zoom out of range", "z", z)
		return nil, metrics.OutcomeDegenerate
	}

	switch v := vp.(type) {
	case viewport.Geospatial:
		if z > maxGeospatialZoom {
			logger.Debug("tilecover: zoom beyond the slippy-map grid", "z", z, "maxZoom", maxGeospatialZoom)
			return nil, metrics.OutcomeDegenerate
		}
		return slices.Values(r.config.Traversal.TileIndices(v, int(z), r.config.ZRange)), outcome
	default:
		rect, ok := identityRect(vp.Bounds(), int(z), r.config.TileSize)
		if !ok {
			logger.Debug("tilecover: bounds out of range", "z", z, "bounds", vp.Bounds())
			return nil, metrics.OutcomeDegenerate
		}
		return rect.All(), outcome
	}
}

// identityRect returns the planar tiles at level z overlapping bounds.
// It fails when a tile coordinate exceeds maxTileCoord.
func identityRect(bounds viewport.Bounds, z int, tileSize float64) (tile.Rect, bool) {
	scale := geometry.ScaleForZoom(z, tileSize)

	minX, minY := geometry.WorldToTileIndex(bounds[0], bounds[1], scale)
	maxX, maxY := geometry.WorldToTileIndex(bounds[2], bounds[3], scale)

	//   |  TILE  |  TILE  |  TILE  |
	//     |(minX)            |(maxX)
	// A tile i is covered when floor(minX) <= i < maxX, i.e. i < ceil(maxX).
	edges := [4]float64{math.Floor(minX), math.Floor(minY), math.Ceil(maxX), math.Ceil(maxY)}
	for _, e := range edges {
		if !(math.Abs(e) <= maxTileCoord) {
			return tile.Rect{}, false
		}
	}
	return tile.Rect{
		MinX: int(edges[0]),
		MinY: int(edges[1]),
		MaxX: int(edges[2]),
		MaxY: int(edges[3]),
		Z:    z,
	}, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func regimeOf(vp viewport.Viewport) string {
	if viewport.IsGeospatial(vp) {
		return metrics.RegimeGeospatial
	}
	return metrics.RegimePlanar
}
