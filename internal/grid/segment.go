package grid

const (
	// PuzzleRows and PuzzleCols are the fixed puzzle dimensions
	PuzzleRows = 4
	PuzzleCols = 4
	// PuzzleCells is the number of tiles, indexed 0..15 in reading order
	PuzzleCells = PuzzleRows * PuzzleCols
)

// CellRect is one puzzle tile. Index = Row*4 + Col is the reading order used
// by every consumer.
type CellRect struct {
	Rect
	Row   int `json:"row"`
	Col   int `json:"col"`
	Index int `json:"index"`
}

// Segment divides box into the 4x4 puzzle lattice, row-major. Boundaries are
// computed from the box origin so the cells tile it with no gaps even when
// the size is not divisible by four.
func Segment(box Rect) [PuzzleCells]CellRect {
	var cells [PuzzleCells]CellRect
	for row := 0; row < PuzzleRows; row++ {
		y0 := box.Y + row*box.Height/PuzzleRows
		y1 := box.Y + (row+1)*box.Height/PuzzleRows
		for col := 0; col < PuzzleCols; col++ {
			x0 := box.X + col*box.Width/PuzzleCols
			x1 := box.X + (col+1)*box.Width/PuzzleCols
			idx := row*PuzzleCols + col
			cells[idx] = CellRect{
				Rect:  Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0},
				Row:   row,
				Col:   col,
				Index: idx,
			}
		}
	}
	return cells
}

// Shrink insets the cell by margin on every side. The result never drops
// below one pixel in either dimension and stays inside the original cell.
func (c CellRect) Shrink(margin int) CellRect {
	if margin <= 0 {
		return c
	}
	out := c
	mx := min(margin, max(0, (c.Width-1)/2))
	my := min(margin, max(0, (c.Height-1)/2))
	out.X += mx
	out.Y += my
	out.Width -= 2 * mx
	out.Height -= 2 * my
	return out
}
