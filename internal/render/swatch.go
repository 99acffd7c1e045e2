package render

import (
	"github.com/jeeftor/wordgrid/internal/grid"
	"github.com/jeeftor/wordgrid/internal/styles"
)

const swatchWidth = 4

// Swatch renders c as its hex code followed by a small block painted in c.
// Without color only the hex code is returned.
func Swatch(c grid.Color, useColor bool) string {
	hex := string(styles.HexColor(c.R, c.G, c.B))
	if !useColor {
		return hex
	}
	block := styles.CreateBgStyle(c.R, c.G, c.B).Width(swatchWidth).Render("")
	return hex + " " + block
}
