package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&coverCmd{}, "")
	subcommands.Register(&bboxCmd{}, "")
	subcommands.Register(&urlCmd{}, "")
	subcommands.Register(&catCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
