// Package crop cuts rectangles out of a pixel buffer and encodes them for a
// text recognizer.
package crop

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/jeeftor/wordgrid/internal/pixel"
	"golang.org/x/image/draw"
)

// MaxScale caps upscaling so a small tile cannot blow up into a huge bitmap
const MaxScale = 8.0

// Cropper extracts sub-images. Scale > 1 enlarges the crop, which helps
// recognizers with small on-screen text.
type Cropper struct {
	Scale float64
}

// NewCropper returns a cropper with the given scale factor clamped to [1, MaxScale]
func NewCropper(scale float64) *Cropper {
	return &Cropper{Scale: clampScale(scale)}
}

func clampScale(s float64) float64 {
	if s < 1 || math.IsNaN(s) {
		return 1
	}
	return math.Min(s, MaxScale)
}

// Factor returns the scale actually applied to crops
func (c *Cropper) Factor() float64 {
	return clampScale(c.Scale)
}

// Crop returns the part of buf inside rect as a new image, scaled by c.Scale.
// The rectangle is clipped to the buffer; an empty intersection is an error.
func (c *Cropper) Crop(buf *pixel.Buffer, rect image.Rectangle) (*image.NRGBA, error) {
	if buf == nil {
		return nil, fmt.Errorf("no image to crop")
	}
	r := rect.Intersect(buf.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("crop rectangle %v is outside image %dx%d", rect, buf.Width, buf.Height)
	}

	src := buf.Image()
	scale := c.Factor()
	w := int(math.Round(float64(r.Dx()) * scale))
	h := int(math.Round(float64(r.Dy()) * scale))
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	if scale == 1 {
		draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, r, draw.Src, nil)
	}
	return dst, nil
}

// Encode crops rect and encodes the result as PNG
func (c *Cropper) Encode(buf *pixel.Buffer, rect image.Rectangle) ([]byte, error) {
	img, err := c.Crop(buf, rect)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return nil, fmt.Errorf("failed to encode crop: %w", err)
	}
	return out.Bytes(), nil
}
