package maze

import (
	"errors"
)

// ErrNoPath is returned when no passage connects two cells. It cannot happen
// on a generated maze; it guards points that fall off the grid.
var ErrNoPath = errors.New("no path between cells")

// Path returns the cells along the passage from one point to another,
// both endpoints included. In a perfect maze this path is unique.
func (m *Maze) Path(from, to Point) ([]Point, error) {
	if !m.InBounds(from.X, from.Y) || !m.InBounds(to.X, to.Y) {
		return nil, ErrNoPath
	}

	// Breadth-first search; cameFrom doubles as the visited set.
	cameFrom := map[Point]Point{from: from}
	queue := []Point{from}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == to {
			return rebuildPath(cameFrom, from, to), nil
		}

		for _, d := range AllDirections() {
			if !m.Open(current, d) {
				continue
			}
			next := current.Step(d)
			if _, seen := cameFrom[next]; seen {
				continue
			}
			cameFrom[next] = current
			queue = append(queue, next)
		}
	}

	return nil, ErrNoPath
}

func rebuildPath(cameFrom map[Point]Point, from, to Point) []Point {
	var reversed []Point
	for p := to; p != from; p = cameFrom[p] {
		reversed = append(reversed, p)
	}
	reversed = append(reversed, from)

	path := make([]Point, len(reversed))
	for i, p := range reversed {
		path[len(reversed)-1-i] = p
	}
	return path
}

// Distances returns the passage distance from the given point to every
// reachable cell, indexed row-major like Cells. Unreachable cells hold -1.
func (m *Maze) Distances(from Point) []int {
	dist := make([]int, m.Size())
	for i := range dist {
		dist[i] = -1
	}
	if !m.InBounds(from.X, from.Y) {
		return dist
	}

	dist[m.index(from.X, from.Y)] = 0
	queue := []Point{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, d := range AllDirections() {
			if !m.Open(current, d) {
				continue
			}
			next := current.Step(d)
			if dist[m.index(next.X, next.Y)] >= 0 {
				continue
			}
			dist[m.index(next.X, next.Y)] = dist[m.index(current.X, current.Y)] + 1
			queue = append(queue, next)
		}
	}
	return dist
}

// DeadEnds returns every cell with exactly one open passage, in row-major order.
func (m *Maze) DeadEnds() []Point {
	var deadEnds []Point
	for _, c := range m.cells {
		if len(m.Exits(c.Point())) == 1 {
			deadEnds = append(deadEnds, c.Point())
		}
	}
	return deadEnds
}
