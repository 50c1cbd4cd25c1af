package maze

// Walls is the four-sided wall configuration a renderer instantiates for a cell.
type Walls struct {
	Top    bool
	Bottom bool
	Left   bool
	Right  bool
}

// DeriveWalls computes the wall tuple of a cell in a grid of the given width.
//
// Top and left come straight from the stored flags. Bottom is only reported on
// the southern boundary row and right only on the eastern boundary column:
// every interior bottom/right edge is already drawn as the neighbor's
// top/left wall, and the boundary edges are never carved.
func DeriveWalls(c Cell, width int) Walls {
	return Walls{
		Top:    c.TopWall,
		Bottom: c.Y == 0,
		Left:   c.LeftWall,
		Right:  c.X == width-1,
	}
}

// Count returns how many of the four sides carry a wall.
func (w Walls) Count() int {
	n := 0
	for _, present := range []bool{w.Top, w.Bottom, w.Left, w.Right} {
		if present {
			n++
		}
	}
	return n
}
