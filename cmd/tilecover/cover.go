package main

import (
	"context"
	"flag"
	"fmt"
	"iter"
	"log"
	"math"
	"os"

	"github.com/eak1mov/go-tilecover/index"
	"github.com/eak1mov/go-tilecover/tile"
	"github.com/eak1mov/go-tilecover/tileindex"
	"github.com/eak1mov/go-tilecover/viewport"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type coverCmd struct {
	commonFlags

	zoom       float64
	bounds     boundsFlag
	planar     bool
	minZoom    float64
	maxZoom    float64
	tileSize   float64
	outputPath string
}

func (c *coverCmd) Name() string     { return "cover" }
func (c *coverCmd) Synopsis() string { return "list tiles covering a viewport" }
func (c *coverCmd) Usage() string {
	return "tilecover cover -zoom <z> -bounds <minX,minY,maxX,maxY> [-planar] [-minzoom <z>] [-maxzoom <z>] [-tilesize <px>] [-config <path> [-layer <name>]] [-o <path>]\n"
}
func (c *coverCmd) SetFlags(f *flag.FlagSet) {
	c.setCommonFlags(f)
	f.Float64Var(&c.zoom, "zoom", 0, "Viewport zoom level")
	f.Var(&c.bounds, "bounds", "Viewport bounds minX,minY,maxX,maxY (lng/lat unless -planar)")
	f.BoolVar(&c.planar, "planar", false, "Use the planar (non-geospatial) regime")
	f.Float64Var(&c.minZoom, "minzoom", math.NaN(), "Minimum zoom level (NaN: no limit)")
	f.Float64Var(&c.maxZoom, "maxzoom", math.NaN(), "Maximum zoom level (NaN: no limit)")
	f.Float64Var(&c.tileSize, "tilesize", 512, "Tile size in pixels")
	f.StringVar(&c.outputPath, "o", "", "Write tiles to a binary index file instead of stdout")
}

func (c *coverCmd) resolve() (iter.Seq[tile.ID], error) {
	logger := c.logger()
	bounds := viewport.Bounds(c.bounds)

	layer, err := c.layer()
	if err != nil {
		return nil, err
	}

	var vp viewport.Viewport
	var opts []tileindex.Option
	if layer != nil {
		vp = layer.Viewport(c.zoom, bounds)
		opts = layer.ResolverOptions()
	} else {
		if c.planar {
			vp = viewport.NewPlanar(c.zoom, bounds)
		} else {
			vp = viewport.NewGeospatial(c.zoom, bounds)
		}
		opts = []tileindex.Option{
			tileindex.WithMinZoom(c.minZoom),
			tileindex.WithMaxZoom(c.maxZoom),
			tileindex.WithTileSize(c.tileSize),
		}
	}
	opts = append(opts, tileindex.WithLogger(logger))

	return tileindex.NewResolver(opts...).All(vp), nil
}

func (c *coverCmd) exportIndex(tiles iter.Seq[tile.ID]) error {
	file, err := os.Create(c.outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := index.NewWriter(file)
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("writing tiles"),
	)
	for tileID := range tiles {
		if err := writer.Write(tileID); err != nil {
			return err
		}
		bar.Add(1)
	}
	bar.Finish()
	fmt.Fprintln(os.Stderr)

	if err := writer.Flush(); err != nil {
		return err
	}
	return file.Close()
}

func (c *coverCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	tiles, err := c.resolve()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if c.outputPath != "" {
		if err := c.exportIndex(tiles); err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	out := c.stdout()
	for tileID := range tiles {
		fmt.Fprintln(out, tileID)
	}
	return subcommands.ExitSuccess
}
