package grid

import "math"

// Tier is a background brightness band
type Tier int

const (
	TierDark Tier = iota
	TierMedium
	TierLight
)

func (t Tier) String() string {
	switch t {
	case TierDark:
		return "dark"
	case TierMedium:
		return "medium"
	case TierLight:
		return "light"
	default:
		return "unknown"
	}
}

// Thresholds used to tell a tile pixel from background
type Thresholds struct {
	Distance float64 // Euclidean RGB distance, 0-255 units
	Luma     float64 // absolute brightness difference, 0-1
}

// TierOf buckets a background brightness
func TierOf(brightness float64) Tier {
	switch {
	case brightness < 0.3:
		return TierDark
	case brightness > 0.7:
		return TierLight
	default:
		return TierMedium
	}
}

// ThresholdsFor returns the classifier thresholds for a background
func ThresholdsFor(bg Color) Thresholds {
	switch TierOf(bg.Brightness()) {
	case TierDark:
		return Thresholds{Distance: 12, Luma: 0.08}
	case TierLight:
		return Thresholds{Distance: 20, Luma: 0.05}
	default:
		return Thresholds{Distance: 25, Luma: 0.10}
	}
}

// Classifier decides whether a pixel belongs to a tile. It caches the
// background-derived values so the per-pixel test stays cheap.
type Classifier struct {
	bg         Color
	brightness float64
	th         Thresholds
}

// NewClassifier builds a classifier for the given background
func NewClassifier(bg Color) Classifier {
	return Classifier{bg: bg, brightness: bg.Brightness(), th: ThresholdsFor(bg)}
}

// Background returns the reference color
func (c Classifier) Background() Color {
	return c.bg
}

// IsTile reports whether the pixel differs from the background in color or brightness
func (c Classifier) IsTile(r, g, b uint8) bool {
	dr := float64(r) - float64(c.bg.R)
	dg := float64(g) - float64(c.bg.G)
	db := float64(b) - float64(c.bg.B)
	if math.Sqrt(dr*dr+dg*dg+db*db) > c.th.Distance {
		return true
	}

	luma := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
	return math.Abs(luma-c.brightness) > c.th.Luma
}

// IsTile is a convenience wrapper around Classifier.IsTile
func IsTile(px Color, bg Color) bool {
	return NewClassifier(bg).IsTile(px.R, px.G, px.B)
}
