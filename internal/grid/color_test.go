package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrightness(t *testing.T) {
	assert.InDelta(t, 1.0, White.Brightness(), 1e-9)
	assert.InDelta(t, 0.0, Color{}.Brightness(), 1e-9)
	assert.InDelta(t, 0.299, Color{255, 0, 0}.Brightness(), 1e-9)
	assert.InDelta(t, 0.587, Color{0, 255, 0}.Brightness(), 1e-9)
	assert.InDelta(t, 0.114, Color{0, 0, 255}.Brightness(), 1e-9)
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		in, want uint8
	}{
		{0, 0},
		{3, 0},
		{4, 8},
		{12, 16},
		{247, 248},
		{251, 248},
		{252, 255},
		{255, 255},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, quantize(tt.in), "quantize(%d)", tt.in)
	}
}

func TestHistogramMode(t *testing.T) {
	h := NewHistogram()
	_, _, ok := h.Mode()
	assert.False(t, ok, "empty histogram has no mode")

	// 30 and 31 share a bucket; the first sample is the representative
	h.Add(Color{30, 30, 30})
	h.Add(Color{31, 31, 31})
	h.Add(Color{200, 0, 0})

	c, count, ok := h.Mode()
	assert.True(t, ok)
	assert.Equal(t, Color{30, 30, 30}, c)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 2, h.Count(Color{29, 29, 29}))
}

func TestHistogramTieGoesToFirstSeen(t *testing.T) {
	h := NewHistogram()
	h.Add(Color{0, 0, 200})
	h.Add(Color{200, 0, 0})
	h.Add(Color{200, 0, 0})
	h.Add(Color{0, 0, 200})

	c, _, _ := h.Mode()
	assert.Equal(t, Color{0, 0, 200}, c)
}

func TestEstimateBackgroundSolid(t *testing.T) {
	colors := []Color{White, {30, 30, 30}, {18, 18, 19}, {250, 249, 245}, {0, 0, 0}}
	sizes := [][2]int{{1, 1}, {7, 3}, {40, 40}, {301, 157}}

	for _, c := range colors {
		for _, s := range sizes {
			buf := solid(s[0], s[1], c)
			assert.Equal(t, c, EstimateBackground(buf, DefaultCornerSize),
				"solid %v at %dx%d", c, s[0], s[1])
		}
	}
}

func TestEstimateBackgroundEmpty(t *testing.T) {
	assert.Equal(t, White, EstimateBackground(solid(0, 0, Color{}), DefaultCornerSize))
	assert.Equal(t, White, EstimateBackground(nil, DefaultCornerSize))
}

func TestEstimateBackgroundIgnoresCenter(t *testing.T) {
	bg := Color{18, 18, 18}
	buf := solid(200, 200, bg)
	fill(buf, 20, 20, 180, 180, Color{90, 90, 90})
	// a tile touching one corner does not outvote the other three
	fill(buf, 0, 0, 15, 15, Color{200, 200, 60})

	assert.Equal(t, bg, EstimateBackground(buf, DefaultCornerSize))
}
