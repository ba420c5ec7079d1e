// Package main is the entry point for the tracksim CLI.
//
// Usage:
//
//	tracksim [flags] <command> [subcommand] [args]
//
// Commands:
//
//	triplets  - Sample anchor/positive/negative triplets from tagged tracks
//	rank      - Nearest neighbours of a track in a feature table
//	label     - Interactive match labelling of track pairs
//	matches   - Edit the match table (set, get, rm)
//	dataset   - Write the id and class flags of a track folder
//	export    - Copy labelled tracks next to a relative match table
//	download  - Fetch tracks listed in a sources table
//	discogs   - Import or explore a Discogs releases dump
package main

import (
	"fmt"
	"os"

	"github.com/jaki95/tracksim/cmd/tracksim/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
