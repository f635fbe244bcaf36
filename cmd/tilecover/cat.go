package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/eak1mov/go-tilecover/index"
	"github.com/eak1mov/go-tilecover/tile"
	"github.com/google/subcommands"
)

type catCmd struct {
	commonFlags

	inputPath string
	codes     bool
}

func (c *catCmd) Name() string     { return "cat" }
func (c *catCmd) Synopsis() string { return "print tiles stored in a binary index file" }
func (c *catCmd) Usage() string {
	return "tilecover cat -i <path> [-codes]\n"
}
func (c *catCmd) SetFlags(f *flag.FlagSet) {
	c.setCommonFlags(f)
	f.StringVar(&c.inputPath, "i", "", "Index file written by cover -o")
	f.BoolVar(&c.codes, "codes", false, "Print Hilbert tile codes instead of z/x/y")
}

func (c *catCmd) run() error {
	file, err := os.Open(c.inputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	out := c.stdout()
	for tileID, err := range index.NewReader(file).All() {
		if err != nil {
			return err
		}
		if !c.codes {
			fmt.Fprintln(out, tileID)
			continue
		}
		if !tileID.Valid() {
			return fmt.Errorf("tile %v has no tile code", tileID)
		}
		fmt.Fprintln(out, tile.EncodeID(tileID))
	}
	return nil
}

func (c *catCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.inputPath == "" {
		log.Println("-i is required")
		return subcommands.ExitUsageError
	}
	if err := c.run(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
