package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/eak1mov/go-tilecover/config"
	"github.com/eak1mov/go-tilecover/tile"
	"github.com/eak1mov/go-tilecover/viewport"
)

type boundsFlag viewport.Bounds

func (b *boundsFlag) String() string {
	return fmt.Sprintf("%v,%v,%v,%v", b[0], b[1], b[2], b[3])
}

func (b *boundsFlag) Set(s string) error {
	var coords [4]float64
	if _, err := fmt.Sscanf(s, "%g,%g,%g,%g", &coords[0], &coords[1], &coords[2], &coords[3]); err != nil {
		return fmt.Errorf("invalid bounds %q, want minX,minY,maxX,maxY: %w", s, err)
	}
	*b = coords
	return nil
}

type tileFlag struct {
	tileID tile.ID
	set    bool
}

func (t *tileFlag) String() string {
	if !t.set {
		return ""
	}
	return t.tileID.String()
}

func (t *tileFlag) Set(s string) error {
	tileID, err := tile.Parse(s)
	if err != nil {
		return err
	}
	t.tileID, t.set = tileID, true
	return nil
}

type stringsFlag []string

func (s *stringsFlag) String() string {
	return strings.Join(*s, " ")
}

func (s *stringsFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// commonFlags are shared by all commands.
type commonFlags struct {
	verbose    bool
	configPath string
	layerName  string
	out        io.Writer
}

func (c *commonFlags) setCommonFlags(f *flag.FlagSet) {
	f.BoolVar(&c.verbose, "v", false, "Verbose (debug) logging")
	f.StringVar(&c.configPath, "config", "", "Layer config file path (YAML)")
	f.StringVar(&c.layerName, "layer", "", "Layer name in the config file")
}

func (c *commonFlags) logger() *slog.Logger {
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (c *commonFlags) stdout() io.Writer {
	if c.out == nil {
		return os.Stdout
	}
	return c.out
}

// layer returns the configured layer, or nil when no config is given.
func (c *commonFlags) layer() (*config.Layer, error) {
	if c.configPath == "" {
		if c.layerName != "" {
			return nil, fmt.Errorf("-layer requires -config")
		}
		return nil, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.layerName == "" {
		if len(cfg.Layers) != 1 {
			return nil, fmt.Errorf("config has %d layers, choose one with -layer", len(cfg.Layers))
		}
		return &cfg.Layers[0], nil
	}
	return cfg.Layer(c.layerName)
}
