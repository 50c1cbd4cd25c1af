/*
Package maze generates perfect mazes over rectangular grids.

A Maze is a width x height array of cells whose open walls form a spanning
tree: every cell is reachable from every other cell along exactly one simple
path. Mazes are produced by Generate using a seeded randomized backtracker,
so the same seed always reproduces the same maze.

Once returned, a Maze is never modified. Accessors hand out Cell values, not
references into the grid.
*/
package maze

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// ErrInvalidDimension is returned when a maze is requested with a width or
// height below one.
var ErrInvalidDimension = errors.New("invalid maze dimension")

// Maze is a rectangular grid of cells stored in row-major order.
type Maze struct {
	width  int
	height int
	cells  []Cell
}

// New allocates a fully walled width x height grid.
func New(width, height int) (*Maze, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}

	m := &Maze{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.cells[m.index(x, y)] = Cell{
				X:        x,
				Y:        y,
				TopWall:  true,
				LeftWall: true,
			}
		}
	}
	return m, nil
}

// Width returns the number of columns.
func (m *Maze) Width() int { return m.width }

// Height returns the number of rows.
func (m *Maze) Height() int { return m.height }

// Size returns the number of cells in the grid.
func (m *Maze) Size() int { return len(m.cells) }

// InBounds reports whether (x, y) lies on the grid.
func (m *Maze) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

func (m *Maze) index(x, y int) int {
	return y*m.width + x
}

// Cell returns the cell at (x, y).
func (m *Maze) Cell(x, y int) (Cell, bool) {
	if !m.InBounds(x, y) {
		return Cell{}, false
	}
	return m.cells[m.index(x, y)], true
}

// Cells returns a copy of every cell in row-major order (y outer, x inner).
func (m *Maze) Cells() []Cell {
	cells := make([]Cell, len(m.cells))
	copy(cells, m.cells)
	return cells
}

// WallsOf derives the four-sided wall tuple of a cell of this maze.
func (m *Maze) WallsOf(c Cell) Walls {
	return DeriveWalls(c, m.width)
}

// Open reports whether a passage leads from p to its neighbor in direction d.
func (m *Maze) Open(p Point, d Direction) bool {
	n := p.Step(d)
	if !m.InBounds(p.X, p.Y) || !m.InBounds(n.X, n.Y) {
		return false
	}

	switch d {
	case Up:
		return !m.cells[m.index(p.X, p.Y)].TopWall
	case Down:
		return !m.cells[m.index(n.X, n.Y)].TopWall
	case Left:
		return !m.cells[m.index(p.X, p.Y)].LeftWall
	case Right:
		return !m.cells[m.index(n.X, n.Y)].LeftWall
	}
	return false
}

// Exits returns the directions with an open passage out of p.
func (m *Maze) Exits(p Point) []Direction {
	var exits []Direction
	for _, d := range AllDirections() {
		if m.Open(p, d) {
			exits = append(exits, d)
		}
	}
	return exits
}

// Passages counts the carved walls. A perfect maze has Size()-1 of them.
func (m *Maze) Passages() int {
	n := 0
	for _, c := range m.cells {
		if !c.TopWall {
			n++
		}
		if !c.LeftWall {
			n++
		}
	}
	return n
}

// Equal reports whether two mazes have the same dimensions and walls.
func (m *Maze) Equal(other *Maze) bool {
	if other == nil || m.width != other.width || m.height != other.height {
		return false
	}
	for i := range m.cells {
		if m.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Fingerprint returns a hex BLAKE2b-256 digest of the dimensions and the
// stored walls. Saves record it so a reload can prove it regenerated the
// same maze.
func (m *Maze) Fingerprint() string {
	h, _ := blake2b.New256(nil)

	var header [8]byte
	binary.BigEndian.PutUint32(header[:4], uint32(m.width))
	binary.BigEndian.PutUint32(header[4:], uint32(m.height))
	h.Write(header[:])

	walls := make([]byte, len(m.cells))
	for i, c := range m.cells {
		if c.TopWall {
			walls[i] |= 1 << 1
		}
		if c.LeftWall {
			walls[i] |= 1
		}
	}
	h.Write(walls)

	return hex.EncodeToString(h.Sum(nil))
}
