// Package metrics exposes Prometheus counters for tile resolution.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels of a TileIndices call.
const (
	OutcomeResolved   = "resolved"
	OutcomeClamped    = "clamped"
	OutcomeBelowMin   = "below_min"
	OutcomeDegenerate = "degenerate"
)

// Regime labels.
const (
	RegimeGeospatial = "geospatial"
	RegimePlanar     = "planar"
)

// Resolver holds the counters of a tile index resolver. A nil *Resolver is valid and records nothing.
type Resolver struct {
	calls       *prometheus.CounterVec
	tiles       *prometheus.CounterVec
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
}

// NewResolver creates the resolver counters and registers them with reg.
func NewResolver(reg prometheus.Registerer) *Resolver {
	r := &Resolver{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tilecover",
				Name:      "resolve_calls_total",
				Help:      "Tile index resolutions by regime and zoom policy outcome.",
			},
			[]string{"regime", "outcome"},
		),
		tiles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tilecover",
				Name:      "resolved_tiles_total",
				Help:      "Tile indices returned by the resolver.",
			},
			[]string{"regime"},
		),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tilecover",
			Name:      "resolve_cache_hits_total",
			Help:      "Tile index resolutions served from the LRU cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tilecover",
			Name:      "resolve_cache_misses_total",
			Help:      "Tile index resolutions computed on cache miss.",
		}),
	}
	if reg != nil {
		reg.MustRegister(r.calls, r.tiles, r.cacheHits, r.cacheMisses)
	}
	return r
}

// ObserveResolve records one resolution returning n tiles.
func (r *Resolver) ObserveResolve(regime, outcome string, n int) {
	if r == nil {
		return
	}
	r.calls.WithLabelValues(regime, outcome).Inc()
	r.tiles.WithLabelValues(regime).Add(float64(n))
}

func (r *Resolver) ObserveCache(hit bool) {
	if r == nil {
		return
	}
	if hit {
		r.cacheHits.Inc()
	} else {
		r.cacheMisses.Inc()
	}
}

// Calls returns the call counter; exposed for tests and custom collectors.
func (r *Resolver) Calls() *prometheus.CounterVec { return r.calls }

// Tiles returns the resolved tile counter.
func (r *Resolver) Tiles() *prometheus.CounterVec { return r.tiles }

// CacheHits returns the cache hit counter.
func (r *Resolver) CacheHits() prometheus.Counter { return r.cacheHits }

// CacheMisses returns the cache miss counter.
func (r *Resolver) CacheMisses() prometheus.Counter { return r.cacheMisses }
