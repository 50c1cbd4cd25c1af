package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lawnchairsociety/mazecarver/internal/labyrinth"
	"github.com/lawnchairsociety/mazecarver/internal/layout"
	"github.com/lawnchairsociety/mazecarver/internal/logger"
	"github.com/lawnchairsociety/mazecarver/internal/maze"
	"github.com/lawnchairsociety/mazecarver/internal/session"
)

func main() {
	width := flag.Int("width", 10, "Maze width in cells")
	height := flag.Int("height", 10, "Maze height in cells")
	seed := flag.Int64("seed", -1, "Seed for random generation (default: random)")
	startX := flag.Int("start-x", 0, "Start cell column")
	startY := flag.Int("start-y", 0, "Start cell row")
	exitSide := flag.String("exit-side", "top", "Side of the exit cell left open: top or right")
	outDir := flag.String("out", "data/labyrinth", "Output directory")
	printMaze := flag.Bool("print", false, "Print the maze as ASCII art")
	verifyFile := flag.String("verify", "", "Check a labyrinth YAML file against the maze regenerated from its seed, then exit")
	loggingConfig := flag.String("logging", "", "Path to logging config YAML file")
	flag.Parse()

	logConfig, _ := logger.LoadConfig(*loggingConfig)
	if err := logger.Initialize(logConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if *verifyFile != "" {
		if err := verify(*verifyFile); err != nil {
			logger.Errorf("Verification of %s failed: %v", *verifyFile, err)
			os.Exit(1)
		}
		return
	}

	side, err := layout.ParseExitSide(*exitSide)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	mazeSeed := *seed
	if mazeSeed < 0 {
		mazeSeed = session.NewSeed(maze.NewSource(time.Now().UnixNano()))
	}

	opts := session.Options{
		Width:    *width,
		Height:   *height,
		StartX:   *startX,
		StartY:   *startY,
		ExitSide: side,
	}
	if !inBounds(opts) {
		logger.Warningf("Start cell (%d,%d) outside the %dx%d grid, using (0,0)", *startX, *startY, *width, *height)
	}

	started := time.Now()
	g, err := session.New(opts, mazeSeed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(started)

	lab := labyrinth.Build(g.Maze, g.Layout, mazeSeed)
	path, err := lab.WriteYAML(*outDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *printMaze {
		fmt.Print(g.Maze.String())
	}

	logger.Info("Maze generated",
		"seed", mazeSeed,
		"size", fmt.Sprintf("%dx%d", g.Maze.Width(), g.Maze.Height()),
		"passages", g.Maze.Passages(),
		"dead_ends", len(g.Maze.DeadEnds()),
		"longest_from_start", longest(g.Maze.Distances(g.Layout.Start)),
		"key", g.Layout.Key,
		"exit", g.Layout.Exit,
		"fingerprint", g.Maze.Fingerprint(),
		"elapsed", elapsed,
		"output", path)
}

// verify loads a written labyrinth and checks it against a fresh maze carved
// from the seed, size and start room it records.
func verify(path string) error {
	lab, err := labyrinth.LoadFromYAML(path)
	if err != nil {
		return err
	}
	m, err := lab.Regenerate()
	if err != nil {
		return err
	}
	if err := lab.Verify(m); err != nil {
		return err
	}

	logger.Infof("Labyrinth %s matches seed %d (%dx%d, %d rooms)", path, lab.Seed, lab.Width, lab.Height, lab.RoomCount())
	return nil
}

func inBounds(opts session.Options) bool {
	return opts.StartX >= 0 && opts.StartX < opts.Width && opts.StartY >= 0 && opts.StartY < opts.Height
}

func longest(distances []int) int {
	best := 0
	for _, d := range distances {
		if d > best {
			best = d
		}
	}
	return best
}
