package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBoundsEmptyFallsBackToFullImage(t *testing.T) {
	box := ResolveBounds(nil, 640, 480, 10, 5)
	assert.Equal(t, Rect{0, 0, 640, 480}, box.Rect)
	assert.True(t, box.Fallback)
	assert.Equal(t, 640, box.ImageWidth)
	assert.Equal(t, 480, box.ImageHeight)
}

func TestResolveBounds(t *testing.T) {
	tests := []struct {
		name    string
		cells   []CellCoord
		padding int
		want    Rect
	}{
		{
			name:  "single cell",
			cells: []CellCoord{{3, 2}},
			want:  Rect{30, 20, 10, 10},
		},
		{
			name:  "spread cells",
			cells: []CellCoord{{5, 8}, {2, 4}, {7, 6}},
			want:  Rect{20, 40, 60, 50},
		},
		{
			name:    "padding",
			cells:   []CellCoord{{2, 2}, {4, 4}},
			padding: 5,
			want:    Rect{15, 15, 40, 40},
		},
		{
			name:    "padding clamped at origin",
			cells:   []CellCoord{{0, 0}, {1, 1}},
			padding: 8,
			want:    Rect{0, 0, 28, 28},
		},
		{
			name:  "partial edge cell clamped to image",
			cells: []CellCoord{{9, 9}},
			want:  Rect{90, 90, 5, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := ResolveBounds(tt.cells, 95, 95, 10, tt.padding)
			assert.Equal(t, tt.want, box.Rect)
			assert.False(t, box.Fallback)
			assert.LessOrEqual(t, box.X+box.Width, box.ImageWidth)
			assert.LessOrEqual(t, box.Y+box.Height, box.ImageHeight)
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{10, 10, 20, 20}
	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(29.5, 29.5))
	assert.False(t, r.Contains(30, 15))
	assert.False(t, r.Contains(9.9, 15))
}
