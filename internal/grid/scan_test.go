package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLattice(t *testing.T) {
	lat := NewLattice(95, 40, 10)
	assert.Equal(t, 10, lat.Cols)
	assert.Equal(t, 4, lat.Rows)

	lat = NewLattice(100, 100, 10)
	assert.Equal(t, 10, lat.Cols)
	assert.Equal(t, 10, lat.Rows)
}

func TestBackgroundAllowance(t *testing.T) {
	assert.Equal(t, 0.15, BackgroundAllowance(White))
	assert.Equal(t, 0.05, BackgroundAllowance(Color{128, 128, 128}))
	assert.Equal(t, 0.05, BackgroundAllowance(Color{18, 18, 18}))
}

func TestScanFilledUniform(t *testing.T) {
	buf := solid(120, 80, White)
	assert.Empty(t, ScanFilled(buf, White, 10))
}

func TestScanFilledBlock(t *testing.T) {
	buf := solid(100, 100, White)
	fill(buf, 20, 30, 50, 50, Color{200, 200, 200})

	cells := ScanFilled(buf, White, 10)
	require.Len(t, cells, 6)
	// row-major order
	assert.Equal(t, []CellCoord{
		{2, 3}, {3, 3}, {4, 3},
		{2, 4}, {3, 4}, {4, 4},
	}, cells)
}

func TestScanFilledAllowance(t *testing.T) {
	tile := Color{200, 200, 200}

	// 10 of 100 pixels are background: 10% passes on light (15%) but not on dark (5%)
	light := solid(10, 10, White)
	fill(light, 0, 0, 10, 10, tile)
	fill(light, 0, 0, 10, 1, White)
	assert.Len(t, ScanFilled(light, White, 10), 1)

	darkBg := Color{10, 10, 10}
	dark := solid(10, 10, darkBg)
	fill(dark, 0, 0, 10, 10, tile)
	fill(dark, 0, 0, 10, 1, darkBg)
	assert.Empty(t, ScanFilled(dark, darkBg, 10))
}

func TestScanFilledPartialEdgeCells(t *testing.T) {
	// 25x25 image: the last lattice column and row are 5 pixels wide
	buf := solid(25, 25, White)
	fill(buf, 20, 20, 25, 25, Color{0, 0, 0})

	cells := ScanFilled(buf, White, 10)
	assert.Equal(t, []CellCoord{{2, 2}}, cells)
}
