package maze

import (
	"math/rand"
)

// Source supplies uniform pseudo-random integers in [0, n).
// *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// NewSource returns the random source used for seed-driven generation.
// Two sources built from the same seed produce the same mazes.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Generate carves a perfect width x height maze with a randomized
// depth-first backtracker starting at (startX, startY).
//
// A start outside the grid is silently replaced by (0, 0). The only error is
// ErrInvalidDimension. rng must not be nil; every random draw comes from it,
// so a freshly seeded source reproduces the same maze.
func Generate(width, height, startX, startY int, rng Source) (*Maze, error) {
	m, err := New(width, height)
	if err != nil {
		return nil, err
	}

	// TODO: report the clamp to callers instead of hiding it once the save
	// format can carry a start coordinate.
	if !m.InBounds(startX, startY) {
		startX, startY = 0, 0
	}

	c := &carver{
		maze:    m,
		rng:     rng,
		visited: make([]bool, m.Size()),
		path:    make([]Point, 0, m.Size()),
	}
	c.carve(Point{X: startX, Y: startY})

	return m, nil
}

// carver holds the scratch state of a single Generate call.
type carver struct {
	maze    *Maze
	rng     Source
	visited []bool
	path    []Point
}

// carve runs the backtracker until the path stack is exhausted.
func (c *carver) carve(start Point) {
	c.enter(start)
	current := start

	for {
		next, ok := c.unvisitedNeighbor(current)
		if !ok {
			current, next, ok = c.backtrack()
			if !ok {
				return
			}
		}

		c.breakWall(current, next)
		c.enter(next)
		current = next
	}
}

// enter marks a cell visited and pushes it on the path.
func (c *carver) enter(p Point) {
	c.visited[c.maze.index(p.X, p.Y)] = true
	c.path = append(c.path, p)
}

// backtrack pops the path until a popped cell has an unvisited neighbor.
// It returns that cell and the neighbor, or false once the path is empty.
func (c *carver) backtrack() (Point, Point, bool) {
	for len(c.path) > 0 {
		cell := c.path[len(c.path)-1]
		c.path = c.path[:len(c.path)-1]

		if next, ok := c.unvisitedNeighbor(cell); ok {
			return cell, next, true
		}
	}
	return Point{}, Point{}, false
}

// unvisitedNeighbor scans the directions in a fresh random order and returns
// the first in-bounds neighbor that has not been entered yet.
func (c *carver) unvisitedNeighbor(p Point) (Point, bool) {
	for _, d := range c.shuffledDirections() {
		n := p.Step(d)
		if c.maze.InBounds(n.X, n.Y) && !c.visited[c.maze.index(n.X, n.Y)] {
			return n, true
		}
	}
	return p, false
}

// shuffledDirections draws a permutation of the four directions by
// repeatedly picking one of the remaining entries. It consumes exactly four
// values from the source.
func (c *carver) shuffledDirections() []Direction {
	remaining := AllDirections()
	order := make([]Direction, 0, len(remaining))

	for len(remaining) > 0 {
		i := c.rng.Intn(len(remaining))
		order = append(order, remaining[i])
		remaining = append(remaining[:i], remaining[i+1:]...)
	}
	return order
}

// breakWall clears the one stored wall shared by primary (the cell being
// left) and secondary (the cell being entered).
func (c *carver) breakWall(primary, secondary Point) {
	m := c.maze
	switch {
	case primary.X > secondary.X:
		m.cells[m.index(primary.X, primary.Y)].LeftWall = false
	case primary.X < secondary.X:
		m.cells[m.index(secondary.X, secondary.Y)].LeftWall = false
	case primary.Y < secondary.Y:
		m.cells[m.index(primary.X, primary.Y)].TopWall = false
	case primary.Y > secondary.Y:
		m.cells[m.index(secondary.X, secondary.Y)].TopWall = false
	}
}
