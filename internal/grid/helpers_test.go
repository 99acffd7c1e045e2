package grid

import (
	"github.com/jeeftor/wordgrid/internal/pixel"
)

// solid returns a width x height buffer filled with c
func solid(width, height int, c Color) *pixel.Buffer {
	pix := make([]byte, width*height*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, 255
	}
	return pixel.New(width, height, pix)
}

// fill paints the rectangle [x0,x1) x [y0,y1) with c
func fill(buf *pixel.Buffer, x0, y0, x1, y1 int, c Color) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			i := (y*buf.Width + x) * 4
			buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2] = c.R, c.G, c.B
		}
	}
}

// puzzle draws a 4x4 grid of tiles of edge tile with gap pixels between
// them, starting at (origin, origin)
func puzzle(buf *pixel.Buffer, origin, tile, gap int, c Color) {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			x := origin + col*(tile+gap)
			y := origin + row*(tile+gap)
			fill(buf, x, y, x+tile, y+tile, c)
		}
	}
}
