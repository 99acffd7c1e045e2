package grid

import "github.com/jeeftor/wordgrid/internal/pixel"

// DefaultCellSize is the edge length of a coarse scanning cell. It is larger
// than stray glyphs and dots but well below the size of a puzzle tile.
const DefaultCellSize = 10

// CellCoord indexes the coarse scanning lattice
type CellCoord struct {
	X, Y int
}

// Lattice describes the coarse scanning lattice over an image
type Lattice struct {
	CellSize int
	Cols     int
	Rows     int
}

// NewLattice returns ceil(width/cellSize) x ceil(height/cellSize) cells
func NewLattice(width, height, cellSize int) Lattice {
	return Lattice{
		CellSize: cellSize,
		Cols:     (width + cellSize - 1) / cellSize,
		Rows:     (height + cellSize - 1) / cellSize,
	}
}

// BackgroundAllowance returns the fraction of background pixels a cell may hold
// and still count as filled. Light themes bleed more at tile edges.
func BackgroundAllowance(bg Color) float64 {
	if bg.Brightness() > 0.7 {
		return 0.15
	}
	return 0.05
}

// ScanFilled returns the lattice cells covered by tiles, in row-major order.
// A cell is filled when fewer than BackgroundAllowance of its pixels match the background.
func ScanFilled(buf *pixel.Buffer, bg Color, cellSize int) []CellCoord {
	if buf == nil || buf.Width == 0 || buf.Height == 0 || cellSize <= 0 {
		return nil
	}

	lat := NewLattice(buf.Width, buf.Height, cellSize)
	cls := NewClassifier(bg)
	bgCounts := make([]int, lat.Cols*lat.Rows)

	for y := 0; y < buf.Height; y++ {
		row := (y / cellSize) * lat.Cols
		for x := 0; x < buf.Width; x++ {
			r, g, b := buf.RGB(x, y)
			if !cls.IsTile(r, g, b) {
				bgCounts[row+x/cellSize]++
			}
		}
	}

	allowance := BackgroundAllowance(bg)
	var filled []CellCoord
	for cy := 0; cy < lat.Rows; cy++ {
		h := min(cellSize, buf.Height-cy*cellSize)
		for cx := 0; cx < lat.Cols; cx++ {
			w := min(cellSize, buf.Width-cx*cellSize)
			total := w * h
			if float64(bgCounts[cy*lat.Cols+cx]) < allowance*float64(total) {
				filled = append(filled, CellCoord{cx, cy})
			}
		}
	}
	return filled
}
