package recognize

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"strings"
	"time"

	"github.com/jeeftor/wordgrid/internal/constants"
	"github.com/jeeftor/wordgrid/internal/crop"
	"github.com/jeeftor/wordgrid/internal/grid"
	"github.com/jeeftor/wordgrid/internal/logging"
	"github.com/jeeftor/wordgrid/internal/pixel"
	"github.com/jeeftor/wordgrid/internal/utils"
	"golang.org/x/sync/errgroup"
)

// Mode selects how text is pulled out of the grid
type Mode string

const (
	// ModeCells recognizes each of the 16 cells separately
	ModeCells Mode = "cells"
	// ModeRegion recognizes the whole grid once and groups words into rows
	ModeRegion Mode = "region"
)

// ParseMode converts a mode name, defaulting to ModeCells for ""
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeCells:
		return ModeCells, nil
	case ModeRegion:
		return ModeRegion, nil
	default:
		return "", fmt.Errorf("unknown recognition mode %q (want %q or %q)", s, ModeCells, ModeRegion)
	}
}

// Options control extraction
type Options struct {
	// CellTimeout bounds each per-cell recognizer call
	CellTimeout time.Duration `json:"cellTimeout"`
	// Timeout bounds the single call made in region mode
	Timeout time.Duration `json:"timeout"`
	// Concurrency is the number of cells recognized at once
	Concurrency int `json:"concurrency"`
	// MinConfidence drops words the recognizer is unsure of
	MinConfidence float64 `json:"minConfidence"`
	// CellMargin shrinks each cell before cropping
	CellMargin int `json:"cellMargin"`
}

// DefaultOptions returns the stock extraction options
func DefaultOptions() Options {
	return Options{
		CellTimeout:   constants.CellRecognitionTimeout,
		Timeout:       constants.RegionRecognitionTimeout,
		Concurrency:   constants.DefaultConcurrency,
		MinConfidence: 0,
		CellMargin:    grid.DefaultParams().CellMargin,
	}
}

// CellStatus describes how recognition of one cell ended
type CellStatus string

const (
	CellOK      CellStatus = "ok"
	CellEmpty   CellStatus = "empty"
	CellTimeout CellStatus = "timeout"
	CellFailed  CellStatus = "failed"
)

// CellResult is the outcome for one puzzle cell
type CellResult struct {
	Index  int           `json:"index"`
	Rect   grid.CellRect `json:"rect"`
	Words  []Word        `json:"words,omitempty"`
	Token  string        `json:"token"`
	Status CellStatus    `json:"status"`
	Err    error         `json:"-"`
}

// Result holds the 16 tokens in reading order
type Result struct {
	Mode   Mode                     `json:"mode"`
	Tokens [grid.PuzzleCells]string `json:"tokens"`
	Cells  []CellResult             `json:"cells,omitempty"`
	Words  []Word                   `json:"words,omitempty"`
}

// CellErrors collects the per-cell failures, or nil when every cell finished
func (r *Result) CellErrors() *utils.MultiError {
	m := utils.NewMultiError("cell recognition")
	for _, c := range r.Cells {
		if c.Err != nil {
			m.Add(fmt.Errorf("cell %d: %w", c.Index, c.Err))
		}
	}
	if !m.HasErrors() {
		return nil
	}
	return m
}

// Extractor runs a Recognizer over a detected grid
type Extractor struct {
	recognizer Recognizer
	cropper    *crop.Cropper
	opts       Options
	logger     *logging.ContextualLogger
}

// NewExtractor creates an extractor. A nil cropper crops without scaling.
func NewExtractor(r Recognizer, c *crop.Cropper, opts Options) *Extractor {
	if c == nil {
		c = crop.NewCropper(1)
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &Extractor{
		recognizer: r,
		cropper:    c,
		opts:       opts,
		logger:     logging.NewContextualLogger("", "extract"),
	}
}

// SetLogger replaces the extractor's logger
func (e *Extractor) SetLogger(l *logging.ContextualLogger) {
	if l != nil {
		e.logger = l
	}
}

// Extract dispatches on mode
func (e *Extractor) Extract(ctx context.Context, buf *pixel.Buffer, det grid.Detection, mode Mode) (*Result, error) {
	if mode == ModeRegion {
		return e.ExtractRegion(ctx, buf, det)
	}
	return e.ExtractCells(ctx, buf, det)
}

// ExtractCells recognizes every cell on its own. All crops are cut from one
// detection before recognition starts. Cells are recognized concurrently and
// stored by reading-order index; a failing or slow cell degrades to its
// placeholder without holding up the others.
//
// When no cell yields any word the result is returned together with
// ErrNoWordsFound.
func (e *Extractor) ExtractCells(ctx context.Context, buf *pixel.Buffer, det grid.Detection) (*Result, error) {
	rects := det.RecognitionRects(e.opts.CellMargin)

	crops := make([][]byte, len(rects))
	cropErrs := make([]error, len(rects))
	for i, r := range rects {
		crops[i], cropErrs[i] = e.cropper.Encode(buf, r.Image())
	}

	results := make([]CellResult, len(rects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Concurrency)
	for i := range rects {
		g.Go(func() error {
			if cropErrs[i] != nil {
				results[i] = CellResult{Index: i, Rect: rects[i], Status: CellFailed, Err: cropErrs[i]}
				return nil
			}
			results[i] = e.recognizeCell(gctx, rects[i], crops[i])
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Mode: ModeCells, Cells: results}
	tokens := make([]string, len(results))
	found := 0
	for i, c := range results {
		tokens[i] = c.Token
		if c.Token != "" {
			found++
		}
	}
	res.Tokens = FillTokens(tokens)

	e.logger.Debug("Cell extraction finished", "cellsWithWords", found)
	if found == 0 {
		return res, ErrNoWordsFound
	}
	return res, nil
}

func (e *Extractor) recognizeCell(ctx context.Context, rect grid.CellRect, data []byte) CellResult {
	res := CellResult{Index: rect.Index, Rect: rect}

	words, err := e.call(ctx, e.opts.CellTimeout, data)
	switch {
	case errors.Is(err, ErrTimeout):
		res.Status = CellTimeout
		res.Err = err
		e.logger.Warn("Cell recognition timed out", "cell", rect.Index, "timeout", e.opts.CellTimeout)
		return res
	case err != nil:
		res.Status = CellFailed
		res.Err = err
		e.logger.Warn("Cell recognition failed", "cell", rect.Index, "error", err)
		return res
	}

	res.Words = e.confident(words)
	res.Token = JoinWords(res.Words)
	if res.Token == "" {
		res.Status = CellEmpty
	} else {
		res.Status = CellOK
	}

	e.logger.Trace("Cell recognized",
		"cell", rect.Index,
		"rect", rect.Rect.String(),
		"words", len(res.Words),
		"token", res.Token)
	return res
}

// ExtractRegion recognizes the whole bounding box once, maps the word boxes
// back into source coordinates and orders them with GroupRows.
func (e *Extractor) ExtractRegion(ctx context.Context, buf *pixel.Buffer, det grid.Detection) (*Result, error) {
	box := det.BoundingBox.Rect
	data, err := e.cropper.Encode(buf, box.Image())
	if err != nil {
		return nil, fmt.Errorf("failed to crop grid region: %w", err)
	}

	raw, err := e.call(ctx, e.opts.Timeout, data)
	if err != nil {
		return nil, err
	}

	scale := e.cropper.Factor()
	origin := image.Pt(box.X, box.Y)

	words := make([]Word, 0, len(raw))
	for _, w := range e.confident(raw) {
		tok := JoinWords([]Word{w})
		if tok == "" {
			continue
		}
		words = append(words, Word{
			Text:       tok,
			Box:        toSource(w.Box, origin, scale),
			Confidence: w.Confidence,
		})
	}

	res := &Result{
		Mode:   ModeRegion,
		Tokens: FillTokens(GroupRows(words, box)),
		Words:  words,
	}

	e.logger.Debug("Region extraction finished", "raw", len(raw), "kept", len(words))
	if len(words) == 0 {
		return res, ErrNoWordsFound
	}
	return res, nil
}

// call runs the recognizer with a deadline. The recognizer runs on its own
// goroutine so a call that ignores ctx still cannot block past the timeout.
func (e *Extractor) call(ctx context.Context, timeout time.Duration, data []byte) ([]Word, error) {
	if timeout <= 0 {
		return e.recognizer.Recognize(ctx, data)
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		words []Word
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		w, err := e.recognizer.Recognize(cctx, data)
		done <- outcome{w, err}
	}()

	select {
	case o := <-done:
		if o.err != nil && errors.Is(o.err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w after %v", ErrTimeout, timeout)
		}
		return o.words, o.err
	case <-cctx.Done():
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w after %v", ErrTimeout, timeout)
	}
}

func (e *Extractor) confident(words []Word) []Word {
	if e.opts.MinConfidence <= 0 {
		return words
	}
	out := make([]Word, 0, len(words))
	for _, w := range words {
		if w.Confidence >= e.opts.MinConfidence {
			out = append(out, w)
		}
	}
	return out
}

// toSource maps a box from crop coordinates back into the source image
func toSource(r image.Rectangle, origin image.Point, scale float64) image.Rectangle {
	f := func(v int) int { return int(math.Round(float64(v) / scale)) }
	return image.Rect(
		origin.X+f(r.Min.X), origin.Y+f(r.Min.Y),
		origin.X+f(r.Max.X), origin.Y+f(r.Max.Y),
	)
}
