package maze

import (
	"strings"
)

// Raster geometry: each cell spans cellCols x cellRows characters between
// its corner posts, and rows are drawn north (largest y) first.
const (
	cellCols = 4
	cellRows = 2
)

// Raster draws the maze as a grid of runes using the derived wall tuple of
// every cell. Posts are '+', horizontal walls '-' and vertical walls '|'.
func (m *Maze) Raster() [][]rune {
	rows := m.height*cellRows + 1
	cols := m.width*cellCols + 1

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, cols)
		for c := range grid[r] {
			if r%cellRows == 0 && c%cellCols == 0 {
				grid[r][c] = '+'
			} else {
				grid[r][c] = ' '
			}
		}
	}

	for _, cell := range m.cells {
		walls := m.WallsOf(cell)
		top, left := m.rasterOrigin(cell.Point())
		bottom, right := top+cellRows, left+cellCols

		if walls.Top {
			fillRow(grid[top], left+1, right)
		}
		if walls.Bottom {
			fillRow(grid[bottom], left+1, right)
		}
		if walls.Left {
			grid[top+1][left] = '|'
		}
		if walls.Right {
			grid[top+1][right] = '|'
		}
	}

	return grid
}

func fillRow(row []rune, from, to int) {
	for c := from; c < to; c++ {
		row[c] = '-'
	}
}

// rasterOrigin returns the raster row and column of a cell's top-left post.
func (m *Maze) rasterOrigin(p Point) (row, col int) {
	return (m.height - 1 - p.Y) * cellRows, p.X * cellCols
}

// RasterCenter returns the raster row and column at the middle of a cell,
// where markers such as the player are drawn.
func (m *Maze) RasterCenter(p Point) (row, col int) {
	row, col = m.rasterOrigin(p)
	return row + cellRows/2, col + cellCols/2
}

// RasterWall returns the raster span covering one side of a cell:
// the row, and the first and last column (inclusive).
func (m *Maze) RasterWall(p Point, d Direction) (row, fromCol, toCol int) {
	top, left := m.rasterOrigin(p)
	switch d {
	case Up:
		return top, left + 1, left + cellCols - 1
	case Down:
		return top + cellRows, left + 1, left + cellCols - 1
	case Left:
		return top + 1, left, left
	default:
		return top + 1, left + cellCols, left + cellCols
	}
}

// String renders the maze as ASCII art.
func (m *Maze) String() string {
	var b strings.Builder
	for _, row := range m.Raster() {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
