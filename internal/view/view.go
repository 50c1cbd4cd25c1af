// Package view draws a game onto a terminal screen.
package view

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lawnchairsociety/mazecarver/internal/session"
)

// Markers drawn at cell centers.
const (
	PlayerRune = '@'
	KeyRune    = 'k'
	ExitRune   = 'E'
)

// Styles holds the colors used by Draw.
type Styles struct {
	Wall   tcell.Style
	Player tcell.Style
	Key    tcell.Style
	Exit   tcell.Style
	Status tcell.Style
}

// DefaultStyles returns the standard color scheme.
func DefaultStyles() Styles {
	return Styles{
		Wall:   tcell.StyleDefault.Foreground(tcell.ColorGray),
		Player: tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
		Key:    tcell.StyleDefault.Foreground(tcell.ColorGreen),
		Exit:   tcell.StyleDefault.Foreground(tcell.ColorRed),
		Status: tcell.StyleDefault.Foreground(tcell.ColorWhite),
	}
}

// Draw paints the game with the default styles. It does not call Show.
func Draw(screen tcell.Screen, g *session.Game) {
	DrawWithStyles(screen, g, DefaultStyles())
}

// DrawWithStyles paints the maze walls with the exit side opened, the exit,
// the key while it lies on the floor, the player and a status line under
// the maze.
func DrawWithStyles(screen tcell.Screen, g *session.Game, st Styles) {
	screen.Clear()

	m := g.Maze
	raster := m.Raster()
	for row, line := range raster {
		for col, r := range line {
			screen.SetContent(col, row, r, nil, st.Wall)
		}
	}

	row, from, to := m.RasterWall(g.Layout.Exit, g.Layout.ExitSide.Direction())
	for col := from; col <= to; col++ {
		screen.SetContent(col, row, ' ', nil, st.Wall)
	}

	row, col := m.RasterCenter(g.Layout.Exit)
	screen.SetContent(col, row, ExitRune, nil, st.Exit)

	if !g.HasKey {
		row, col = m.RasterCenter(g.Layout.Key)
		screen.SetContent(col, row, KeyRune, nil, st.Key)
	}

	row, col = m.RasterCenter(g.Player)
	screen.SetContent(col, row, PlayerRune, nil, st.Player)

	drawText(screen, 0, len(raster), StatusLine(g), st.Status)
}

// StatusLine summarizes the game state in one line.
func StatusLine(g *session.Game) string {
	key := "no"
	if g.HasKey {
		key = "yes"
	}
	status := fmt.Sprintf("Seed %d  Lives %d  Key %s  Time %s",
		g.Seed, g.Lives, key, g.PlayTime.Truncate(time.Second))
	if g.Escaped {
		status += "  ESCAPED"
	}
	return status
}

// DrawMessage writes text on the line below the status line.
func DrawMessage(screen tcell.Screen, g *session.Game, text string) {
	drawText(screen, 0, len(g.Maze.Raster())+1, text, DefaultStyles().Status)
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
