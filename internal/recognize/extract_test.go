package recognize

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jeeftor/wordgrid/internal/crop"
	"github.com/jeeftor/wordgrid/internal/grid"
	"github.com/jeeftor/wordgrid/internal/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fruit = [grid.PuzzleCells]string{
	"APPLE", "PEAR", "PLUM", "FIG",
	"KIWI", "LIME", "DATE", "SLOE",
	"YUZU", "UGLI", "NONI", "GUAVA",
	"MANGO", "PAPAYA", "LEMON", "CHERRY",
}

// tiledPuzzle is a 400x400 image whose 16 cells are solid colors with
// red = 10*index + 5, so a recognizer can tell which cell it was given.
func tiledPuzzle() (*pixel.Buffer, grid.Detection) {
	img := image.NewNRGBA(image.Rect(0, 0, 400, 400))
	for y := 0; y < 400; y++ {
		for x := 0; x < 400; x++ {
			idx := (y/100)*4 + x/100
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(10*idx + 5), A: 255})
		}
	}
	box := grid.FullImage(400, 400)
	box.Fallback = false
	det := grid.Detection{BoundingBox: box, Cells: grid.Segment(box.Rect)}
	return pixel.FromImage(img), det
}

// cellIndex recovers the cell index from an encoded crop
func cellIndex(data []byte) int {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		panic(err)
	}
	r, _, _, _ := img.At(img.Bounds().Min.X, img.Bounds().Min.Y).RGBA()
	return (int(r>>8) - 5) / 10
}

func testOptions() Options {
	return Options{
		CellTimeout: time.Second,
		Timeout:     time.Second,
		Concurrency: 4,
		CellMargin:  4,
	}
}

func TestExtractCellsReadingOrder(t *testing.T) {
	buf, det := tiledPuzzle()

	rec := RecognizerFunc(func(ctx context.Context, data []byte) ([]Word, error) {
		idx := cellIndex(data)
		// later cells finish first
		time.Sleep(time.Duration(grid.PuzzleCells-idx) * time.Millisecond)
		return []Word{{Text: fruit[idx], Box: image.Rect(2, 2, 60, 20), Confidence: 0.9}}, nil
	})

	opts := testOptions()
	opts.Concurrency = grid.PuzzleCells
	res, err := NewExtractor(rec, nil, opts).ExtractCells(context.Background(), buf, det)
	require.NoError(t, err)

	assert.Equal(t, ModeCells, res.Mode)
	assert.Equal(t, fruit, res.Tokens)
	require.Len(t, res.Cells, grid.PuzzleCells)
	for i, c := range res.Cells {
		assert.Equal(t, i, c.Index)
		assert.Equal(t, CellOK, c.Status)
	}
	assert.Nil(t, res.CellErrors())
}

func TestExtractCellsCropsShrunkenCells(t *testing.T) {
	buf, det := tiledPuzzle()

	var sizes [grid.PuzzleCells]image.Point
	rec := RecognizerFunc(func(ctx context.Context, data []byte) ([]Word, error) {
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		sizes[cellIndex(data)] = img.Bounds().Size()
		return nil, nil
	})

	opts := testOptions()
	opts.CellMargin = 10
	_, err := NewExtractor(rec, crop.NewCropper(2), opts).ExtractCells(context.Background(), buf, det)
	require.ErrorIs(t, err, ErrNoWordsFound)

	for i, s := range sizes {
		assert.Equal(t, image.Pt(160, 160), s, "cell %d", i)
	}
}

func TestExtractCellsTimeoutDegradesOneCell(t *testing.T) {
	buf, det := tiledPuzzle()

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	rec := RecognizerFunc(func(ctx context.Context, data []byte) ([]Word, error) {
		idx := cellIndex(data)
		if idx == 5 {
			// ignores ctx entirely
			<-release
			return nil, nil
		}
		return []Word{{Text: fruit[idx]}}, nil
	})

	opts := testOptions()
	opts.CellTimeout = 50 * time.Millisecond

	start := time.Now()
	res, err := NewExtractor(rec, nil, opts).ExtractCells(context.Background(), buf, det)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)

	assert.Equal(t, "WORD 6", res.Tokens[5])
	assert.Equal(t, CellTimeout, res.Cells[5].Status)
	assert.ErrorIs(t, res.Cells[5].Err, ErrTimeout)
	for i, tok := range res.Tokens {
		if i != 5 {
			assert.Equal(t, fruit[i], tok)
		}
	}

	cellErrs := res.CellErrors()
	require.NotNil(t, cellErrs)
	assert.Len(t, cellErrs.Errors, 1)
	assert.ErrorIs(t, cellErrs, ErrTimeout)
}

func TestExtractCellsRecognizerFailure(t *testing.T) {
	buf, det := tiledPuzzle()
	boom := errors.New("engine crashed")

	rec := RecognizerFunc(func(ctx context.Context, data []byte) ([]Word, error) {
		idx := cellIndex(data)
		if idx == 0 {
			return nil, boom
		}
		return []Word{{Text: fruit[idx]}}, nil
	})

	res, err := NewExtractor(rec, nil, testOptions()).ExtractCells(context.Background(), buf, det)
	require.NoError(t, err)

	assert.Equal(t, "WORD 1", res.Tokens[0])
	assert.Equal(t, CellFailed, res.Cells[0].Status)
	assert.ErrorIs(t, res.Cells[0].Err, boom)
	assert.Equal(t, "PEAR", res.Tokens[1])
}

func TestExtractCellsNoWords(t *testing.T) {
	buf, det := tiledPuzzle()

	rec := RecognizerFunc(func(ctx context.Context, data []byte) ([]Word, error) {
		// single characters never survive normalization
		return []Word{{Text: "x"}}, nil
	})

	res, err := NewExtractor(rec, nil, testOptions()).ExtractCells(context.Background(), buf, det)
	require.ErrorIs(t, err, ErrNoWordsFound)
	require.NotNil(t, res)
	for i, tok := range res.Tokens {
		assert.True(t, IsPlaceholder(tok, i))
		assert.Equal(t, CellEmpty, res.Cells[i].Status)
	}
}

func TestExtractCellsConcurrencyLimit(t *testing.T) {
	buf, det := tiledPuzzle()

	var active, peak int32
	rec := RecognizerFunc(func(ctx context.Context, data []byte) ([]Word, error) {
		n := atomic.AddInt32(&active, 1)
		defer atomic.AddInt32(&active, -1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		return []Word{{Text: "TILE"}}, nil
	})

	opts := testOptions()
	opts.Concurrency = 3
	_, err := NewExtractor(rec, nil, opts).ExtractCells(context.Background(), buf, det)
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&peak), int32(1))
}

func TestExtractCellsCancelled(t *testing.T) {
	buf, det := tiledPuzzle()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := RecognizerFunc(func(ctx context.Context, data []byte) ([]Word, error) {
		return []Word{{Text: "TILE"}}, nil
	})

	res, err := NewExtractor(rec, nil, testOptions()).ExtractCells(ctx, buf, det)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

func TestExtractCellsMinConfidence(t *testing.T) {
	buf, det := tiledPuzzle()

	rec := RecognizerFunc(func(ctx context.Context, data []byte) ([]Word, error) {
		idx := cellIndex(data)
		return []Word{
			{Text: fruit[idx], Confidence: 0.9},
			{Text: "NOISE", Confidence: 0.2},
		}, nil
	})

	opts := testOptions()
	opts.MinConfidence = 0.5
	res, err := NewExtractor(rec, nil, opts).ExtractCells(context.Background(), buf, det)
	require.NoError(t, err)
	assert.Equal(t, fruit, res.Tokens)
}

func regionDetection() grid.Detection {
	box := grid.BoundingBox{Rect: grid.Rect{X: 100, Y: 100, Width: 200, Height: 200}, ImageWidth: 400, ImageHeight: 400}
	return grid.Detection{BoundingBox: box, Cells: grid.Segment(box.Rect)}
}

func TestExtractRegion(t *testing.T) {
	buf, _ := tiledPuzzle()
	det := regionDetection()

	var cropSize image.Point
	rec := RecognizerFunc(func(ctx context.Context, data []byte) ([]Word, error) {
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		cropSize = img.Bounds().Size()

		// boxes are in the coordinates of the 2x crop
		return []Word{
			{Text: "gamma", Box: image.Rect(20, 220, 100, 260), Confidence: 0.8},
			{Text: "beta", Box: image.Rect(220, 24, 300, 64), Confidence: 0.8},
			{Text: "b", Box: image.Rect(320, 24, 340, 64), Confidence: 0.8},
			{Text: "alpha", Box: image.Rect(20, 20, 100, 60), Confidence: 0.8},
		}, nil
	})

	res, err := NewExtractor(rec, crop.NewCropper(2), testOptions()).ExtractRegion(context.Background(), buf, det)
	require.NoError(t, err)

	assert.Equal(t, image.Pt(400, 400), cropSize)
	assert.Equal(t, ModeRegion, res.Mode)
	assert.Equal(t, "ALPHA", res.Tokens[0])
	assert.Equal(t, "BETA", res.Tokens[1])
	assert.Equal(t, "GAMMA", res.Tokens[2])
	assert.Equal(t, "WORD 4", res.Tokens[3])
	assert.Equal(t, "WORD 16", res.Tokens[15])

	require.Len(t, res.Words, 3)
	for _, w := range res.Words {
		if w.Text == "ALPHA" {
			assert.Equal(t, image.Rect(110, 110, 150, 130), w.Box)
		}
	}
}

func TestExtractRegionNoWords(t *testing.T) {
	buf, _ := tiledPuzzle()

	rec := RecognizerFunc(func(ctx context.Context, data []byte) ([]Word, error) {
		return nil, nil
	})

	res, err := NewExtractor(rec, nil, testOptions()).ExtractRegion(context.Background(), buf, regionDetection())
	require.ErrorIs(t, err, ErrNoWordsFound)
	assert.Equal(t, "WORD 1", res.Tokens[0])
}

func TestExtractRegionTimeout(t *testing.T) {
	buf, _ := tiledPuzzle()

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	rec := RecognizerFunc(func(ctx context.Context, data []byte) ([]Word, error) {
		<-release
		return nil, nil
	})

	opts := testOptions()
	opts.Timeout = 30 * time.Millisecond
	_, err := NewExtractor(rec, nil, opts).ExtractRegion(context.Background(), buf, regionDetection())
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestExtractDispatch(t *testing.T) {
	buf, det := tiledPuzzle()
	rec := RecognizerFunc(func(ctx context.Context, data []byte) ([]Word, error) {
		return []Word{{Text: "TILE", Box: image.Rect(10, 10, 50, 30)}}, nil
	})
	e := NewExtractor(rec, nil, testOptions())

	res, err := e.Extract(context.Background(), buf, det, ModeCells)
	require.NoError(t, err)
	assert.Equal(t, ModeCells, res.Mode)

	res, err = e.Extract(context.Background(), buf, det, ModeRegion)
	require.NoError(t, err)
	assert.Equal(t, ModeRegion, res.Mode)
	assert.Equal(t, "TILE", res.Tokens[0])
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeCells, m)

	m, err = ParseMode(" Region ")
	require.NoError(t, err)
	assert.Equal(t, ModeRegion, m)

	_, err = ParseMode("pixels")
	assert.Error(t, err)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Positive(t, opts.CellTimeout)
	assert.Positive(t, opts.Timeout)
	assert.Positive(t, opts.Concurrency)
	assert.Equal(t, grid.DefaultParams().CellMargin, opts.CellMargin)
}
