package grid

import (
	"fmt"

	"github.com/jeeftor/wordgrid/internal/logging"
	"github.com/jeeftor/wordgrid/internal/pixel"
)

// Params tunes detection
type Params struct {
	CellSize   int `json:"cellSize" mapstructure:"cell_size"`
	CornerSize int `json:"cornerSize" mapstructure:"corner_size"`
	// Padding expands the resolved box on every side
	Padding int `json:"padding" mapstructure:"padding"`
	// CellMargin shrinks each puzzle cell before it is handed to recognition
	CellMargin int `json:"cellMargin" mapstructure:"cell_margin"`
}

// DefaultParams returns the stock detection parameters
func DefaultParams() Params {
	return Params{
		CellSize:   DefaultCellSize,
		CornerSize: DefaultCornerSize,
		Padding:    0,
		CellMargin: 4,
	}
}

// Validate checks that the parameters are usable
func (p Params) Validate() error {
	if p.CellSize <= 0 {
		return fmt.Errorf("cell size must be positive: %d", p.CellSize)
	}
	if p.CornerSize <= 0 {
		return fmt.Errorf("corner size must be positive: %d", p.CornerSize)
	}
	if p.Padding < 0 {
		return fmt.Errorf("padding must not be negative: %d", p.Padding)
	}
	if p.CellMargin < 0 {
		return fmt.Errorf("cell margin must not be negative: %d", p.CellMargin)
	}
	return nil
}

// Detection is the full geometry computed for one image
type Detection struct {
	Background  Color                 `json:"background"`
	Tier        string                `json:"tier"`
	Filled      int                   `json:"filled"`
	Kept        int                   `json:"kept"`
	BoundingBox BoundingBox           `json:"boundingBox"`
	Cells       [PuzzleCells]CellRect `json:"cells"`
	// Mask holds the kept lattice cells, for debug rendering
	Mask []CellCoord `json:"-"`
	// Lattice is the coarse scanning lattice the mask refers to
	Lattice Lattice `json:"-"`
}

// RecognitionRects returns the 16 cells shrunk by margin, in reading order
func (d Detection) RecognitionRects(margin int) [PuzzleCells]CellRect {
	var out [PuzzleCells]CellRect
	for i, c := range d.Cells {
		out[i] = c.Shrink(margin)
	}
	return out
}

// Detect runs the full geometry pipeline on buf: background estimation,
// coarse scan, outlier filtering, box resolution and 4x4 segmentation.
// Invalid parameters fall back to DefaultParams.
func Detect(buf *pixel.Buffer, p Params) Detection {
	if err := p.Validate(); err != nil {
		logging.Warn("Invalid detection parameters, using defaults", "error", err)
		p = DefaultParams()
	}

	var width, height int
	if buf != nil {
		width, height = buf.Width, buf.Height
	}

	bg := EstimateBackground(buf, p.CornerSize)
	filled := ScanFilled(buf, bg, p.CellSize)
	kept := FilterOutliers(filled)
	box := ResolveBounds(kept, width, height, p.CellSize, p.Padding)

	det := Detection{
		Background:  bg,
		Tier:        TierOf(bg.Brightness()).String(),
		Filled:      len(filled),
		Kept:        len(kept),
		BoundingBox: box,
		Cells:       Segment(box.Rect),
		Mask:        kept,
		Lattice:     NewLattice(width, height, p.CellSize),
	}

	logging.Debug("Grid detection",
		"imageSize", fmt.Sprintf("%dx%d", width, height),
		"background", bg.String(),
		"tier", det.Tier,
		"filled", det.Filled,
		"kept", det.Kept,
		"box", box.Rect.String(),
		"fallback", box.Fallback)

	return det
}
