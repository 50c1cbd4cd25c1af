package layout

import (
	"errors"
	"testing"

	"github.com/lawnchairsociety/mazecarver/internal/maze"
)

func generate(t *testing.T, width, height int, seed int64) *maze.Maze {
	t.Helper()
	m, err := maze.Generate(width, height, 0, 0, maze.NewSource(seed))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return m
}

func TestPlaceExitAndKey(t *testing.T) {
	m := generate(t, 10, 8, 1)

	for seed := int64(0); seed < 50; seed++ {
		l, err := Place(m, maze.Point{}, Top, maze.NewSource(seed))
		if err != nil {
			t.Fatalf("Place failed: %v", err)
		}

		if l.Exit != (maze.Point{X: 9, Y: 7}) {
			t.Errorf("Exit = %v, want (9,7)", l.Exit)
		}
		if l.Key == l.Start || l.Key == l.Exit {
			t.Errorf("key %v placed on start or exit", l.Key)
		}
		if l.Key.X < 1 || l.Key.X > 8 || l.Key.Y < 1 || l.Key.Y > 6 {
			t.Errorf("key %v is not an interior cell", l.Key)
		}
	}
}

func TestPlaceDeterministic(t *testing.T) {
	m := generate(t, 12, 12, 3)

	a, _ := Place(m, maze.Point{}, Right, maze.NewSource(77))
	b, _ := Place(m, maze.Point{}, Right, maze.NewSource(77))
	if a != b {
		t.Errorf("same source produced %+v and %+v", a, b)
	}
}

func TestPlaceNarrowMazeFallsBack(t *testing.T) {
	m := generate(t, 1, 4, 9)

	l, err := Place(m, maze.Point{}, Top, maze.NewSource(1))
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if l.Key == l.Start || l.Key == l.Exit {
		t.Errorf("key %v placed on start or exit", l.Key)
	}
	if l.Key.Y != 1 && l.Key.Y != 2 {
		t.Errorf("key %v outside the middle of the corridor", l.Key)
	}
}

func TestPlaceNoKeyCell(t *testing.T) {
	for _, size := range []struct{ w, h int }{{1, 1}, {1, 2}, {2, 1}} {
		m := generate(t, size.w, size.h, 1)
		if _, err := Place(m, maze.Point{}, Top, maze.NewSource(1)); !errors.Is(err, ErrNoKeyCell) {
			t.Errorf("%dx%d: error = %v, want ErrNoKeyCell", size.w, size.h, err)
		}
	}
}

func TestPlaceNormalizesStart(t *testing.T) {
	m := generate(t, 5, 5, 2)

	l, err := Place(m, maze.Point{X: -4, Y: 9}, Top, maze.NewSource(3))
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if l.Start != (maze.Point{}) {
		t.Errorf("Start = %v, want (0,0)", l.Start)
	}
}

func TestWallsAtOpensExitOnly(t *testing.T) {
	m := generate(t, 6, 6, 4)

	for _, side := range []ExitSide{Top, Right} {
		l, err := Place(m, maze.Point{}, side, maze.NewSource(5))
		if err != nil {
			t.Fatalf("Place failed: %v", err)
		}

		walls, ok := l.WallsAt(m, l.Exit)
		if !ok {
			t.Fatal("WallsAt rejected the exit cell")
		}
		if side == Top && walls.Top {
			t.Error("top exit still has a top wall")
		}
		if side == Right && walls.Right {
			t.Error("right exit still has a right wall")
		}

		for _, c := range m.Cells() {
			if c.Point() == l.Exit {
				continue
			}
			got, _ := l.WallsAt(m, c.Point())
			if got != m.WallsOf(c) {
				t.Errorf("%s exit: cell %v walls changed", side, c.Point())
			}
		}
	}

	if _, ok := (Layout{}).WallsAt(m, maze.Point{X: 6, Y: 0}); ok {
		t.Error("WallsAt accepted an off-grid point")
	}
}

func TestParseExitSide(t *testing.T) {
	tests := []struct {
		input   string
		want    ExitSide
		wantErr bool
	}{
		{"top", Top, false},
		{"RIGHT", Right, false},
		{" right ", Right, false},
		{"", Top, false},
		{"left", Top, true},
	}

	for _, tt := range tests {
		got, err := ParseExitSide(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseExitSide(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseExitSide(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}

	if Top.Direction() != maze.Up || Right.Direction() != maze.Right {
		t.Error("exit side directions are wrong")
	}
}
