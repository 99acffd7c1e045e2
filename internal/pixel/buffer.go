// Package pixel decodes screenshots into flat RGBA buffers.
package pixel

import (
	"image"

	"golang.org/x/image/draw"
)

// Buffer is a decoded image: Width*Height pixels, 4 bytes each (R, G, B, A), row-major.
// A Buffer is read-only once constructed.
type Buffer struct {
	Width  int
	Height int
	Pix    []byte
}

// FromImage copies img into a Buffer with its origin moved to (0,0)
func FromImage(img image.Image) *Buffer {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)

	return &Buffer{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    dst.Pix,
	}
}

// New wraps raw RGBA bytes. It returns nil when len(pix) does not match the dimensions.
func New(width, height int, pix []byte) *Buffer {
	if width < 0 || height < 0 || len(pix) != width*height*4 {
		return nil
	}
	return &Buffer{Width: width, Height: height, Pix: pix}
}

// RGB returns the color channels of the pixel at (x, y)
func (b *Buffer) RGB(x, y int) (r, g, bl uint8) {
	i := (y*b.Width + x) * 4
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// Bounds returns the buffer extent
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// Image returns an image view sharing the buffer's pixels
func (b *Buffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   b.Bounds(),
	}
}
