// Command xwstats scores crossword answers for rarity, novelty and
// crosswordese and folds the scores onto the grid.
//
// Subcommands:
//
//	analyze <grid>    score a grid (--commit also records its answers)
//	commit <grid>     record a grid's answers without scoring
//	builddb <dir>     build the answer frequency database from puzzle JSON files
//	rank              rank every known answer by crosswordese
//	algorithms        list algorithm names
//	version           print build information
//
// Exit codes: 0 = success, 1 = error, 2 = analysis finished but some answers
// could not be scored.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const (
	exitOK         = 0
	exitError      = 1
	exitWordErrors = 2
)

// errWordErrors reports a completed analysis with unscored answers.
var errWordErrors = errors.New("some answers could not be scored")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := newCLI(stdout, stderr)
	defer c.close()

	root := c.rootCmd()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errWordErrors):
		return exitWordErrors
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
}
