// Command gofeat exports training move lists from SGF games, scores
// positions with a learned feature model and manages stored weight models.
//
//	gofeat export [-out file] [-db dir] [-threads n] [-comments] game.sgf...
//	gofeat score  [-weights file | -model name] [-move n] [-explain point] game.sgf
//	gofeat store  [-db dir] -name name weights-file
//	gofeat models [-db dir]
//	gofeat stats  [-db dir]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
)

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, args []string) error
}

var commands = []command{
	{"export", "write Wistuba move lists of SGF games", runExport},
	{"score", "show the move priors of a game position", runScore},
	{"store", "import a weight file into the database", runStore},
	{"models", "list the stored weight models", runModels},
	{"stats", "show export statistics", runStats},
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stderr)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for _, cmd := range commands {
		if cmd.name == os.Args[1] {
			if err := cmd.run(ctx, os.Args[2:]); err != nil {
				log.Println(err)
				os.Exit(1)
			}
			return
		}
	}
	usage()
	os.Exit(2)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: gofeat <command> [flags] [args]")
	for _, cmd := range commands {
		fmt.Fprintf(os.Stderr, "  %-8s %s\n", cmd.name, cmd.usage)
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("gofeat "+name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}
