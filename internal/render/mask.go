package render

import (
	"fmt"
	"io"

	"github.com/jeeftor/wordgrid/internal/grid"
	"github.com/jeeftor/wordgrid/internal/styles"
)

const (
	filledGlyph = "█"
	emptyGlyph  = "·"
)

// Mask writes the kept lattice cells of det as text, one glyph per block of
// lattice cells. Blocks are widened until the mask fits in width columns.
func Mask(w io.Writer, det grid.Detection, width int, useColor bool) error {
	lat := det.Lattice
	if lat.Cols == 0 || lat.Rows == 0 {
		_, err := fmt.Fprintln(w, "(empty image)")
		return err
	}

	filled := make(map[grid.CellCoord]bool, len(det.Mask))
	for _, c := range det.Mask {
		filled[c] = true
	}

	step := 1
	for width > 0 && (lat.Cols+step-1)/step > width {
		step++
	}

	for y := 0; y < lat.Rows; y += step {
		for x := 0; x < lat.Cols; x += step {
			glyph, style := emptyGlyph, styles.MaskEmptyStyle
			if blockFilled(filled, x, y, step) {
				glyph, style = filledGlyph, styles.MaskFilledStyle
			}
			if useColor {
				glyph = style.Render(glyph)
			}
			if _, err := io.WriteString(w, glyph); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func blockFilled(filled map[grid.CellCoord]bool, x0, y0, step int) bool {
	for y := y0; y < y0+step; y++ {
		for x := x0; x < x0+step; x++ {
			if filled[grid.CellCoord{X: x, Y: y}] {
				return true
			}
		}
	}
	return false
}
