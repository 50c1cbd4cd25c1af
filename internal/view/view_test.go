package view

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lawnchairsociety/mazecarver/internal/layout"
	"github.com/lawnchairsociety/mazecarver/internal/maze"
	"github.com/lawnchairsociety/mazecarver/internal/session"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init failed: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func newGame(t *testing.T, side layout.ExitSide) *session.Game {
	t.Helper()
	g, err := session.New(session.Options{Width: 6, Height: 5, ExitSide: side}, 17)
	if err != nil {
		t.Fatalf("session.New failed: %v", err)
	}
	return g
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestDrawMarkers(t *testing.T) {
	screen := newScreen(t)
	g := newGame(t, layout.Top)

	Draw(screen, g)

	row, col := g.Maze.RasterCenter(g.Player)
	if got := runeAt(screen, col, row); got != PlayerRune {
		t.Errorf("player cell = %q, want %q", got, PlayerRune)
	}
	row, col = g.Maze.RasterCenter(g.Layout.Key)
	if got := runeAt(screen, col, row); got != KeyRune {
		t.Errorf("key cell = %q, want %q", got, KeyRune)
	}
	row, col = g.Maze.RasterCenter(g.Layout.Exit)
	if got := runeAt(screen, col, row); got != ExitRune {
		t.Errorf("exit cell = %q, want %q", got, ExitRune)
	}
}

func TestDrawWalls(t *testing.T) {
	screen := newScreen(t)
	g := newGame(t, layout.Top)

	Draw(screen, g)

	raster := g.Maze.Raster()
	exitRow, exitFrom, exitTo := g.Maze.RasterWall(g.Layout.Exit, maze.Up)
	for row, line := range raster {
		for col, want := range line {
			if row == exitRow && col >= exitFrom && col <= exitTo {
				continue
			}
			if want == ' ' {
				continue
			}
			if got := runeAt(screen, col, row); got != want {
				t.Fatalf("(%d,%d) = %q, want %q", col, row, got, want)
			}
		}
	}
}

func TestDrawOpensExitSide(t *testing.T) {
	for _, side := range []layout.ExitSide{layout.Top, layout.Right} {
		t.Run(side.String(), func(t *testing.T) {
			screen := newScreen(t)
			g := newGame(t, side)

			row, from, to := g.Maze.RasterWall(g.Layout.Exit, side.Direction())
			raster := g.Maze.Raster()
			if raster[row][from] == ' ' {
				t.Fatalf("raster has no wall at the exit side to open")
			}

			Draw(screen, g)

			for col := from; col <= to; col++ {
				if got := runeAt(screen, col, row); got != ' ' {
					t.Errorf("exit side (%d,%d) = %q, want open", col, row, got)
				}
			}
		})
	}
}

func TestDrawHidesCollectedKey(t *testing.T) {
	screen := newScreen(t)
	g := newGame(t, layout.Top)
	g.HasKey = true

	Draw(screen, g)

	row, col := g.Maze.RasterCenter(g.Layout.Key)
	if got := runeAt(screen, col, row); got == KeyRune {
		t.Error("collected key is still drawn")
	}
}

func TestStatusLine(t *testing.T) {
	screen := newScreen(t)
	g := newGame(t, layout.Top)
	g.Escaped = true

	Draw(screen, g)

	line := StatusLine(g)
	if !strings.Contains(line, "Seed 17") || !strings.Contains(line, "Lives 2") || !strings.HasSuffix(line, "ESCAPED") {
		t.Errorf("StatusLine() = %q", line)
	}

	y := len(g.Maze.Raster())
	var drawn []rune
	for x := 0; x < len(line); x++ {
		drawn = append(drawn, runeAt(screen, x, y))
	}
	if string(drawn) != line {
		t.Errorf("status drawn as %q, want %q", string(drawn), line)
	}
}

func TestDrawMessage(t *testing.T) {
	screen := newScreen(t)
	g := newGame(t, layout.Top)

	Draw(screen, g)
	DrawMessage(screen, g, "go north")

	y := len(g.Maze.Raster()) + 1
	if got := runeAt(screen, 0, y); got != 'g' {
		t.Errorf("message starts with %q, want 'g'", got)
	}
}
