package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/eak1mov/go-tilecover/urltemplate"
	"github.com/google/subcommands"
)

var errNoTemplate = errors.New("no url template configured")

type urlCmd struct {
	commonFlags

	tile      tileFlag
	templates stringsFlag
	props     stringsFlag
	hash      bool
}

func (c *urlCmd) Name() string     { return "url" }
func (c *urlCmd) Synopsis() string { return "resolve the fetch url of a tile" }
func (c *urlCmd) Usage() string {
	return "tilecover url -tile <z/x/y> (-template <url>... | -config <path> [-layer <name>]) [-prop <name=value>...] [-hash]\n"
}
func (c *urlCmd) SetFlags(f *flag.FlagSet) {
	c.setCommonFlags(f)
	f.Var(&c.tile, "tile", "Tile as z/x/y or a Hilbert tile code")
	f.Var(&c.templates, "template", "URL template; repeat for shards")
	f.Var(&c.props, "prop", "Extra template property name=value; repeatable")
	f.BoolVar(&c.hash, "hash", false, "Pick shards by coordinate hash instead of abs(x+y) mod n")
}

func (c *urlCmd) run() (string, error) {
	if !c.tile.set {
		return "", fmt.Errorf("-tile is required")
	}

	template := urltemplate.List(c.templates...)
	if len(c.templates) == 1 {
		template = urltemplate.Single(c.templates[0])
	}
	shard := urltemplate.DefaultShard
	if c.hash {
		shard = urltemplate.HashShard
	}

	layer, err := c.layer()
	if err != nil {
		return "", err
	}
	if layer != nil {
		if len(c.templates) > 0 {
			return "", fmt.Errorf("-template and -config are exclusive")
		}
		template = layer.URL
		if !c.hash {
			shard = layer.ShardFunc()
		}
	}

	props := urltemplate.TileProperties(c.tile.tileID)
	for _, p := range c.props {
		name, value, found := strings.Cut(p, "=")
		if !found || name == "" {
			return "", fmt.Errorf("invalid property %q, want name=value", p)
		}
		props = props.With(name, urltemplate.ParseValue(value))
	}

	url, ok, err := urltemplate.ResolveWith(template, props, shard)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errNoTemplate
	}
	return url, nil
}

func (c *urlCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	url, err := c.run()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(c.stdout(), url)
	return subcommands.ExitSuccess
}
