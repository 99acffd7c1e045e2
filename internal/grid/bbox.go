package grid

import (
	"fmt"
	"image"
)

// Rect is an axis-aligned pixel rectangle
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Image converts r to an image.Rectangle
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Empty reports whether r has no area
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point lies inside r (right and bottom edges excluded)
func (r Rect) Contains(x, y float64) bool {
	return x >= float64(r.X) && x < float64(r.X+r.Width) &&
		y >= float64(r.Y) && y < float64(r.Y+r.Height)
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// BoundingBox is the pixel rectangle believed to hold the whole puzzle, plus
// the source dimensions so consumers can rescale it.
type BoundingBox struct {
	Rect
	ImageWidth  int `json:"imageWidth"`
	ImageHeight int `json:"imageHeight"`
	// Fallback is set when no filled cells were found and the box is the full image
	Fallback bool `json:"fallback"`
}

// FullImage returns the box covering the entire image, marked as a fallback
func FullImage(width, height int) BoundingBox {
	return BoundingBox{
		Rect:        Rect{0, 0, width, height},
		ImageWidth:  width,
		ImageHeight: height,
		Fallback:    true,
	}
}

// ResolveBounds reduces the cell set to a pixel rectangle, expanded by padding
// on every side and clamped to the image. An empty set yields FullImage.
func ResolveBounds(cells []CellCoord, width, height, cellSize, padding int) BoundingBox {
	if len(cells) == 0 || cellSize <= 0 {
		return FullImage(width, height)
	}

	minX, minY := cells[0].X, cells[0].Y
	maxX, maxY := minX, minY
	for _, c := range cells[1:] {
		minX = min(minX, c.X)
		minY = min(minY, c.Y)
		maxX = max(maxX, c.X)
		maxY = max(maxY, c.Y)
	}

	x0 := max(0, minX*cellSize-padding)
	y0 := max(0, minY*cellSize-padding)
	x1 := min(width, (maxX+1)*cellSize+padding)
	y1 := min(height, (maxY+1)*cellSize+padding)

	return BoundingBox{
		Rect:        Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0},
		ImageWidth:  width,
		ImageHeight: height,
	}
}
