package maze

import (
	"errors"
	"testing"
)

func canonicalMaze(t *testing.T) *Maze {
	t.Helper()
	m, err := Generate(2, 2, 0, 0, &firstSource{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return m
}

func TestOpen(t *testing.T) {
	m := canonicalMaze(t)

	tests := []struct {
		p    Point
		d    Direction
		want bool
	}{
		{Point{0, 0}, Up, true},
		{Point{0, 1}, Down, true},
		{Point{0, 1}, Right, true},
		{Point{1, 1}, Left, true},
		{Point{1, 1}, Down, true},
		{Point{1, 0}, Up, true},
		{Point{0, 0}, Right, false},
		{Point{1, 0}, Left, false},
		{Point{0, 0}, Left, false},
		{Point{0, 0}, Down, false},
		{Point{1, 1}, Up, false},
		{Point{1, 1}, Right, false},
	}

	for _, tt := range tests {
		if got := m.Open(tt.p, tt.d); got != tt.want {
			t.Errorf("Open(%v, %s) = %v, want %v", tt.p, tt.d, got, tt.want)
		}
	}
}

func TestPath(t *testing.T) {
	m := canonicalMaze(t)

	path, err := m.Path(Point{0, 0}, Point{1, 0})
	if err != nil {
		t.Fatalf("Path failed: %v", err)
	}

	want := []Point{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("path[%d] = %v, want %v", i, path[i], want[i])
		}
	}

	self, err := m.Path(Point{1, 1}, Point{1, 1})
	if err != nil || len(self) != 1 {
		t.Errorf("Path to self = %v, %v", self, err)
	}

	if _, err := m.Path(Point{0, 0}, Point{5, 5}); !errors.Is(err, ErrNoPath) {
		t.Errorf("Path off the grid error = %v, want ErrNoPath", err)
	}
}

func TestPathStepsAreOpen(t *testing.T) {
	m, _ := Generate(15, 11, 0, 0, NewSource(2024))

	path, err := m.Path(Point{0, 0}, Point{14, 10})
	if err != nil {
		t.Fatalf("Path failed: %v", err)
	}
	for i := 1; i < len(path); i++ {
		d, ok := path[i-1].DirectionTo(path[i])
		if !ok || !m.Open(path[i-1], d) {
			t.Fatalf("step %v -> %v is not an open passage", path[i-1], path[i])
		}
	}

	dist := m.Distances(Point{0, 0})
	if dist[m.index(14, 10)] != len(path)-1 {
		t.Errorf("distance to corner = %d, path length = %d", dist[m.index(14, 10)], len(path)-1)
	}
}

func TestDistancesReachEverything(t *testing.T) {
	m, _ := Generate(9, 9, 4, 4, NewSource(5))

	for i, d := range m.Distances(Point{4, 4}) {
		if d < 0 {
			t.Errorf("cell %d unreachable", i)
		}
	}

	off := m.Distances(Point{-1, 0})
	for _, d := range off {
		if d != -1 {
			t.Fatal("Distances from an off-grid point reached a cell")
		}
	}
}

func TestDeadEnds(t *testing.T) {
	m := canonicalMaze(t)

	dead := m.DeadEnds()
	want := []Point{{0, 0}, {1, 0}}
	if len(dead) != len(want) {
		t.Fatalf("DeadEnds() = %v, want %v", dead, want)
	}
	for i := range want {
		if dead[i] != want[i] {
			t.Errorf("DeadEnds()[%d] = %v, want %v", i, dead[i], want[i])
		}
	}
}

func TestString(t *testing.T) {
	m := canonicalMaze(t)

	want := "" +
		"+---+---+\n" +
		"|       |\n" +
		"+   +   +\n" +
		"|   |   |\n" +
		"+---+---+\n"

	if got := m.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestRasterHelpers(t *testing.T) {
	m := canonicalMaze(t)

	row, col := m.RasterCenter(Point{0, 1})
	if row != 1 || col != 2 {
		t.Errorf("RasterCenter(0,1) = (%d,%d), want (1,2)", row, col)
	}

	row, from, to := m.RasterWall(Point{1, 1}, Up)
	if row != 0 || from != 5 || to != 7 {
		t.Errorf("RasterWall(1,1 north) = (%d,%d,%d), want (0,5,7)", row, from, to)
	}

	row, from, to = m.RasterWall(Point{1, 1}, Right)
	if row != 1 || from != 8 || to != 8 {
		t.Errorf("RasterWall(1,1 east) = (%d,%d,%d), want (1,8,8)", row, from, to)
	}
}
