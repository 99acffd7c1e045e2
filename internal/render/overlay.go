package render

import (
	"image"
	"image/color"

	"github.com/jeeftor/wordgrid/internal/grid"
	"github.com/jeeftor/wordgrid/internal/pixel"
	"golang.org/x/image/draw"
)

var (
	// BoxColor outlines the resolved bounding box
	BoxColor = color.NRGBA{R: 255, A: 255}
	// CellColor outlines the 16 puzzle cells
	CellColor = color.NRGBA{G: 200, B: 255, A: 255}
	// MaskColor tints the kept lattice cells
	MaskColor = color.NRGBA{G: 255, A: 80}
)

// Overlay returns a copy of buf with the kept lattice cells tinted, the cell
// grid outlined and the bounding box drawn on top
func Overlay(buf *pixel.Buffer, det grid.Detection) *image.NRGBA {
	dst := image.NewNRGBA(buf.Bounds())
	draw.Draw(dst, dst.Bounds(), buf.Image(), image.Point{}, draw.Src)

	tint := image.NewUniform(MaskColor)
	size := det.Lattice.CellSize
	for _, c := range det.Mask {
		r := image.Rect(c.X*size, c.Y*size, (c.X+1)*size, (c.Y+1)*size)
		draw.Draw(dst, r.Intersect(dst.Bounds()), tint, image.Point{}, draw.Over)
	}

	for _, cell := range det.Cells {
		outline(dst, cell.Image(), 1, CellColor)
	}
	outline(dst, det.BoundingBox.Image(), 2, BoxColor)
	return dst
}

// outline draws a border of the given thickness just inside r
func outline(dst *image.NRGBA, r image.Rectangle, thickness int, c color.Color) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	src := image.NewUniform(c)
	t := min(thickness, r.Dx(), r.Dy())
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t),
		image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y),
		image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e, src, image.Point{}, draw.Src)
	}
}
