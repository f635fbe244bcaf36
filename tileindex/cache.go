package tileindex

import (
	"slices"

	"github.com/eak1mov/go-tilecover/tile"
	"github.com/eak1mov/go-tilecover/viewport"
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 256

// CachedResolver memoises Resolver results for recently seen viewports.
// It is safe for concurrent use.
type CachedResolver struct {
	resolver *Resolver
	cache    *lru.Cache[viewport.Viewport, []tile.ID]
}

// NewCachedResolver creates a Resolver with the given options and keeps up to
// size results. A non-positive size selects a default.
func NewCachedResolver(size int, opts ...Option) (*CachedResolver, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[viewport.Viewport, []tile.ID](size)
	if err != nil {
		return nil, err
	}
	return &CachedResolver{resolver: NewResolver(opts...), cache: cache}, nil
}

// TileIndices returns a copy of the cached result for vp, resolving it on a miss.
func (c *CachedResolver) TileIndices(vp viewport.Viewport) []tile.ID {
	if !viewport.Finite(vp) {
		return c.resolver.TileIndices(vp)
	}
	m := c.resolver.config.Metrics
	if indices, ok := c.cache.Get(vp); ok {
		m.ObserveCache(true)
		return slices.Clone(indices)
	}
	m.ObserveCache(false)
	indices := c.resolver.TileIndices(vp)
	c.cache.Add(vp, indices)
	return slices.Clone(indices)
}

// Len returns the number of cached viewports.
func (c *CachedResolver) Len() int {
	return c.cache.Len()
}
