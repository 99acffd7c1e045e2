package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierOf(t *testing.T) {
	tests := []struct {
		brightness float64
		want       Tier
	}{
		{0.0, TierDark},
		{0.29, TierDark},
		{0.3, TierMedium},
		{0.5, TierMedium},
		{0.7, TierMedium},
		{0.71, TierLight},
		{1.0, TierLight},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierOf(tt.brightness), "brightness %.2f", tt.brightness)
	}
}

func TestThresholdsFor(t *testing.T) {
	assert.Equal(t, Thresholds{12, 0.08}, ThresholdsFor(Color{10, 10, 10}))
	assert.Equal(t, Thresholds{25, 0.10}, ThresholdsFor(Color{128, 128, 128}))
	assert.Equal(t, Thresholds{20, 0.05}, ThresholdsFor(White))
}

func TestIsTile(t *testing.T) {
	tests := []struct {
		name string
		px   Color
		bg   Color
		want bool
	}{
		{"identical light", White, White, false},
		{"anti-alias speck on light", Color{250, 250, 250}, White, false},
		{"beige tile on white", Color{239, 239, 230}, White, true},
		{"subtly darker gray on white", Color{238, 238, 238}, White, true},
		{"identical dark", Color{18, 18, 18}, Color{18, 18, 18}, false},
		{"near-black noise on dark", Color{22, 22, 22}, Color{18, 18, 18}, false},
		{"charcoal tile on dark", Color{40, 40, 40}, Color{18, 18, 18}, true},
		{"gray noise on medium", Color{138, 138, 138}, Color{128, 128, 128}, false},
		{"hue shift on medium", Color{160, 110, 128}, Color{128, 128, 128}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTile(tt.px, tt.bg))
		})
	}
}

func TestIsTileBrightnessInverted(t *testing.T) {
	// Light-mode screenshot and its inverted dark-mode copy classify the same pixels
	light := Color{250, 250, 250}
	dark := Color{5, 5, 5}
	pixels := []Color{
		{250, 250, 250},
		{246, 246, 246},
		{225, 225, 220},
		{120, 120, 120},
		{0, 0, 0},
	}

	invert := func(c Color) Color { return Color{255 - c.R, 255 - c.G, 255 - c.B} }
	assert.InDelta(t, 1-light.Brightness(), invert(light).Brightness(), 1e-9)
	assert.Equal(t, dark, invert(light))

	for _, px := range pixels {
		assert.Equal(t, IsTile(px, light), IsTile(invert(px), dark), "pixel %v", px)
	}
}
