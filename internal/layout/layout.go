// Package layout places the start, exit and key on a generated maze.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lawnchairsociety/mazecarver/internal/maze"
)

// ErrNoKeyCell is returned when the maze has no cell besides the start and exit.
var ErrNoKeyCell = errors.New("no cell available for the key")

// ExitSide selects which outer wall of the exit cell is opened.
type ExitSide int

const (
	Top ExitSide = iota
	Right
)

func (s ExitSide) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	}
	return "unknown"
}

// Direction returns the maze direction the exit opens toward.
func (s ExitSide) Direction() maze.Direction {
	if s == Right {
		return maze.Right
	}
	return maze.Up
}

// ParseExitSide converts "top" or "right" (case-insensitive) to an ExitSide.
func ParseExitSide(s string) (ExitSide, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "":
		return Top, nil
	case "right":
		return Right, nil
	}
	return Top, fmt.Errorf("unknown exit side %q", s)
}

// Layout holds the special cells of a maze.
type Layout struct {
	Start    maze.Point
	Exit     maze.Point
	Key      maze.Point
	ExitSide ExitSide
}

// Place puts the exit in the far corner and draws the key cell from rng.
//
// The key goes in an interior cell (not on the outer ring) other than the
// start and exit. Narrow mazes without such a cell fall back to any cell other
// than the start and exit. A start off the grid is treated as (0, 0), the same
// way maze.Generate treats it.
func Place(m *maze.Maze, start maze.Point, side ExitSide, rng maze.Source) (Layout, error) {
	if !m.InBounds(start.X, start.Y) {
		start = maze.Point{}
	}

	l := Layout{
		Start:    start,
		Exit:     maze.Point{X: m.Width() - 1, Y: m.Height() - 1},
		ExitSide: side,
	}

	candidates := keyCandidates(m, l, true)
	if len(candidates) == 0 {
		candidates = keyCandidates(m, l, false)
	}
	if len(candidates) == 0 {
		return Layout{}, fmt.Errorf("%w: %dx%d maze", ErrNoKeyCell, m.Width(), m.Height())
	}

	l.Key = candidates[rng.Intn(len(candidates))]
	return l, nil
}

func keyCandidates(m *maze.Maze, l Layout, interiorOnly bool) []maze.Point {
	var candidates []maze.Point
	for _, c := range m.Cells() {
		p := c.Point()
		if p == l.Start || p == l.Exit {
			continue
		}
		if interiorOnly && (p.X == 0 || p.Y == 0 || p.X == m.Width()-1 || p.Y == m.Height()-1) {
			continue
		}
		candidates = append(candidates, p)
	}
	return candidates
}

// WallsAt returns the walls a renderer should build at p: the maze's derived
// walls, with the exit side removed on the exit cell.
func (l Layout) WallsAt(m *maze.Maze, p maze.Point) (maze.Walls, bool) {
	c, ok := m.Cell(p.X, p.Y)
	if !ok {
		return maze.Walls{}, false
	}

	walls := m.WallsOf(c)
	if p == l.Exit {
		switch l.ExitSide {
		case Top:
			walls.Top = false
		case Right:
			walls.Right = false
		}
	}
	return walls, true
}
