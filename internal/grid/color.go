// Package grid locates a 4x4 word puzzle inside a screenshot and splits it
// into cells in reading order. Everything here is a pure function of its
// inputs; no state survives between calls.
package grid

import (
	"fmt"

	"github.com/jeeftor/wordgrid/internal/logging"
	"github.com/jeeftor/wordgrid/internal/pixel"
)

// DefaultCornerSize is the edge length in pixels of each sampled corner square
const DefaultCornerSize = 20

// quantStep is the bucket width used when building the background histogram
const quantStep = 8

// Color is an 8-bit RGB triple
type Color struct {
	R, G, B uint8
}

// White is returned when there is nothing to sample
var White = Color{255, 255, 255}

// Brightness returns the luma-weighted brightness in [0,1]
func (c Color) Brightness() float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// ColorKey is a color quantized to multiples of 8
type ColorKey struct {
	R, G, B uint8
}

// quantize rounds v to the nearest multiple of quantStep, clamped to 255
func quantize(v uint8) uint8 {
	q := (int(v) + quantStep/2) / quantStep * quantStep
	if q > 255 {
		q = 255
	}
	return uint8(q)
}

// KeyOf returns the histogram bucket for c
func KeyOf(c Color) ColorKey {
	return ColorKey{quantize(c.R), quantize(c.G), quantize(c.B)}
}

// Histogram counts quantized colors and remembers the order buckets were first seen
type Histogram struct {
	counts map[ColorKey]int
	first  map[ColorKey]Color
	order  []ColorKey
}

// NewHistogram creates an empty histogram
func NewHistogram() *Histogram {
	return &Histogram{
		counts: make(map[ColorKey]int),
		first:  make(map[ColorKey]Color),
	}
}

// Add records one sample
func (h *Histogram) Add(c Color) {
	k := KeyOf(c)
	if _, ok := h.counts[k]; !ok {
		h.order = append(h.order, k)
		h.first[k] = c
	}
	h.counts[k]++
}

// Len returns the number of distinct buckets
func (h *Histogram) Len() int {
	return len(h.order)
}

// Count returns the number of samples in the bucket holding c
func (h *Histogram) Count(c Color) int {
	return h.counts[KeyOf(c)]
}

// Mode returns the first original color seen in the most populated bucket.
// Ties go to the bucket seen first. ok is false for an empty histogram.
func (h *Histogram) Mode() (c Color, count int, ok bool) {
	for _, k := range h.order {
		if h.counts[k] > count {
			count = h.counts[k]
			c = h.first[k]
		}
	}
	return c, count, count > 0
}

// EstimateBackground infers the page background from four corner squares of
// edge cornerSize. Squares are clamped to the image and may overlap.
func EstimateBackground(buf *pixel.Buffer, cornerSize int) Color {
	if buf == nil || buf.Width == 0 || buf.Height == 0 || cornerSize <= 0 {
		return White
	}

	sw := min(cornerSize, buf.Width)
	sh := min(cornerSize, buf.Height)
	origins := [4][2]int{
		{0, 0},
		{buf.Width - sw, 0},
		{0, buf.Height - sh},
		{buf.Width - sw, buf.Height - sh},
	}

	hist := NewHistogram()
	for _, o := range origins {
		for y := o[1]; y < o[1]+sh; y++ {
			for x := o[0]; x < o[0]+sw; x++ {
				r, g, b := buf.RGB(x, y)
				hist.Add(Color{r, g, b})
			}
		}
	}

	bg, count, ok := hist.Mode()
	if !ok {
		return White
	}
	logging.Trace("Background histogram",
		"buckets", hist.Len(),
		"winner", bg.String(),
		"count", count)
	return bg
}
