package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/eak1mov/go-tilecover/config"
	"github.com/eak1mov/go-tilecover/geometry"
	"github.com/eak1mov/go-tilecover/viewport"
	"github.com/google/subcommands"
	"github.com/twpayne/go-geom/encoding/geojson"
)

type bboxCmd struct {
	commonFlags

	tile     tileFlag
	planar   bool
	tileSize float64
	format   string
}

func (c *bboxCmd) Name() string     { return "bbox" }
func (c *bboxCmd) Synopsis() string { return "print the bounding box of a tile" }
func (c *bboxCmd) Usage() string {
	return "tilecover bbox -tile <z/x/y> [-planar] [-tilesize <px>] [-format text|geojson]\n"
}
func (c *bboxCmd) SetFlags(f *flag.FlagSet) {
	c.setCommonFlags(f)
	f.Var(&c.tile, "tile", "Tile as z/x/y or a Hilbert tile code")
	f.BoolVar(&c.planar, "planar", false, "Use the planar (non-geospatial) regime")
	f.Float64Var(&c.tileSize, "tilesize", 512, "Tile size in pixels (planar regime)")
	f.StringVar(&c.format, "format", "text", "Output format (text, geojson)")
}

func (c *bboxCmd) run() error {
	if !c.tile.set {
		return fmt.Errorf("-tile is required")
	}

	planar := c.planar
	tileSize := c.tileSize
	layer, err := c.layer()
	if err != nil {
		return err
	}
	if layer != nil {
		planar = layer.Regime == config.RegimePlanar
		tileSize = layer.TileSize
	}

	var vp viewport.Viewport = viewport.NewGeospatial(0, viewport.Bounds{})
	if planar {
		vp = viewport.NewPlanar(0, viewport.Bounds{})
	}
	box := geometry.TileToBoundingBox(vp, c.tile.tileID, tileSize)
	out := c.stdout()

	switch c.format {
	case "text":
		switch b := box.(type) {
		case geometry.LngLatBox:
			fmt.Fprintf(out, "west=%v south=%v east=%v north=%v\n", b.West, b.South, b.East, b.North)
		case geometry.PlanarBox:
			fmt.Fprintf(out, "left=%v top=%v right=%v bottom=%v\n", b.Left, b.Top, b.Right, b.Bottom)
		}
	case "geojson":
		b, ok := box.(geometry.LngLatBox)
		if !ok {
			return fmt.Errorf("geojson output requires the geospatial regime")
		}
		feature := &geojson.Feature{
			ID:         c.tile.tileID.String(),
			Geometry:   b.Polygon(),
			Properties: map[string]any{"x": c.tile.tileID.X, "y": c.tile.tileID.Y, "z": c.tile.tileID.Z},
		}
		data, err := json.Marshal(feature)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	default:
		return fmt.Errorf("invalid format: %q", c.format)
	}
	return nil
}

func (c *bboxCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if err := c.run(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
