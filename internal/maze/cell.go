package maze

// Direction represents a cardinal direction on the grid.
// Up moves toward larger y, Right toward larger x.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// AllDirections returns the four cardinal directions in their canonical order.
func AllDirections() []Direction {
	return []Direction{Up, Down, Left, Right}
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return Up
}

// Delta returns the coordinate offset of one step in this direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, 1
	case Down:
		return 0, -1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// String returns the compass name used for room exits and the API.
func (d Direction) String() string {
	switch d {
	case Up:
		return "north"
	case Down:
		return "south"
	case Left:
		return "west"
	case Right:
		return "east"
	}
	return "unknown"
}

// ParseDirection accepts the compass names produced by String.
func ParseDirection(s string) (Direction, bool) {
	for _, d := range AllDirections() {
		if d.String() == s {
			return d, true
		}
	}
	return 0, false
}

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Step returns the neighboring point in the given direction.
func (p Point) Step(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// DirectionTo returns the direction leading from p to an adjacent point q.
func (p Point) DirectionTo(q Point) (Direction, bool) {
	for _, d := range AllDirections() {
		if p.Step(d) == q {
			return d, true
		}
	}
	return 0, false
}

// Cell is one grid position. Only the top and left walls are stored;
// a cell's bottom wall is the top wall of the cell below it and its right
// wall is the left wall of the cell to its right.
type Cell struct {
	X, Y     int
	TopWall  bool
	LeftWall bool
}

// Point returns the cell's coordinate.
func (c Cell) Point() Point {
	return Point{X: c.X, Y: c.Y}
}
