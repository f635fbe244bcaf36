// Package config loads tile layer definitions from YAML.
//
//	layers:
//	  - name: osm
//	    url:
//	      - https://a.tile.example.com/{z}/{x}/{y}.png
//	      - https://b.tile.example.com/{z}/{x}/{y}.png
//	    minZoom: 0
//	    maxZoom: 19
//	    tileSize: 256
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/eak1mov/go-tilecover/tileindex"
	"github.com/eak1mov/go-tilecover/urltemplate"
	"github.com/eak1mov/go-tilecover/viewport"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidConfig = errors.New("tilecover: invalid config")
	ErrLayerNotFound = errors.New("tilecover: layer not found")
)

type Regime string

const (
	RegimeGeospatial Regime = "geospatial"
	RegimePlanar     Regime = "planar"
)

type Config struct {
	Layers []Layer `yaml:"layers"`
}

// Layer describes one tile source. Absent zoom limits mean no limit.
type Layer struct {
	Name       string               `yaml:"name"`
	URL        urltemplate.Template `yaml:"url"`
	MinZoom    *float64             `yaml:"minZoom"`
	MaxZoom    *float64             `yaml:"maxZoom"`
	TileSize   float64              `yaml:"tileSize"`
	Regime     Regime               `yaml:"regime"`
	CacheSize  int                  `yaml:"cacheSize"`
	HashShards bool                 `yaml:"hashShards"`
}

func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a YAML config. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	for i := range cfg.Layers {
		if cfg.Layers[i].Regime == "" {
			cfg.Layers[i].Regime = RegimeGeospatial
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Layers) == 0 {
		return fmt.Errorf("%w: no layers", ErrInvalidConfig)
	}
	seen := make(map[string]bool)
	for i, l := range c.Layers {
		if l.Name == "" {
			return fmt.Errorf("%w: layer %d has no name", ErrInvalidConfig, i)
		}
		if seen[l.Name] {
			return fmt.Errorf("%w: duplicate layer %q", ErrInvalidConfig, l.Name)
		}
		seen[l.Name] = true

		switch l.Regime {
		case RegimeGeospatial, RegimePlanar:
		default:
			return fmt.Errorf("%w: layer %q: unknown regime %q", ErrInvalidConfig, l.Name, l.Regime)
		}
		if l.TileSize < 0 {
			return fmt.Errorf("%w: layer %q: negative tileSize", ErrInvalidConfig, l.Name)
		}
		if l.CacheSize < 0 {
			return fmt.Errorf("%w: layer %q: negative cacheSize", ErrInvalidConfig, l.Name)
		}
		if l.MinZoom != nil && l.MaxZoom != nil && *l.MinZoom > *l.MaxZoom {
			return fmt.Errorf("%w: layer %q: minZoom %v > maxZoom %v", ErrInvalidConfig, l.Name, *l.MinZoom, *l.MaxZoom)
		}
	}
	return nil
}

func (c *Config) Layer(name string) (*Layer, error) {
	for i := range c.Layers {
		if c.Layers[i].Name == name {
			return &c.Layers[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrLayerNotFound, name)
}

// ResolverOptions returns the zoom policy and tile size of the layer.
func (l *Layer) ResolverOptions() []tileindex.Option {
	opts := []tileindex.Option{tileindex.WithTileSize(l.TileSize)}
	if l.MinZoom != nil {
		opts = append(opts, tileindex.WithMinZoom(*l.MinZoom))
	}
	if l.MaxZoom != nil {
		opts = append(opts, tileindex.WithMaxZoom(*l.MaxZoom))
	}
	return opts
}

// Viewport builds a viewport in the layer's regime.
func (l *Layer) Viewport(zoom float64, bounds viewport.Bounds) viewport.Viewport {
	if l.Regime == RegimePlanar {
		return viewport.NewPlanar(zoom, bounds)
	}
	return viewport.NewGeospatial(zoom, bounds)
}

func (l *Layer) ShardFunc() urltemplate.ShardFunc {
	if l.HashShards {
		return urltemplate.HashShard
	}
	return urltemplate.DefaultShard
}
