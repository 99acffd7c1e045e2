// Package tesseract implements recognize.Recognizer on top of the Tesseract
// engine through gosseract.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeeftor/wordgrid/internal/logging"
	"github.com/jeeftor/wordgrid/internal/recognize"
	"github.com/otiai10/gosseract/v2"
)

// PuzzleChars is every character a puzzle tile can show
const PuzzleChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789'-"

// Config configures the engine
type Config struct {
	Language string
	// PageSegMode is the Tesseract page segmentation mode. Zero picks a
	// sparse-text mode, which suits both single tiles and whole grids.
	PageSegMode gosseract.PageSegMode
	// Whitelist restricts recognized characters; empty uses PuzzleChars
	Whitelist string
	// ConfigFile is passed to Tesseract at init. Init-only settings such as
	// load_system_dawg only take effect from here.
	ConfigFile string
}

// DefaultConfig returns the stock engine configuration
func DefaultConfig() Config {
	return Config{
		Language:    "eng",
		PageSegMode: gosseract.PSM_SPARSE_TEXT,
		Whitelist:   PuzzleChars,
	}
}

// Engine is a recognize.Recognizer backed by Tesseract. A gosseract client
// is not safe for concurrent use, so every call gets its own.
type Engine struct {
	cfg Config
}

var _ recognize.Recognizer = (*Engine)(nil)

// New creates an engine
func New(cfg Config) *Engine {
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.PageSegMode == 0 {
		cfg.PageSegMode = gosseract.PSM_SPARSE_TEXT
	}
	if cfg.Whitelist == "" {
		cfg.Whitelist = PuzzleChars
	}
	return &Engine{cfg: cfg}
}

// Version returns the linked Tesseract version
func Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}

// Recognize reads the words in an encoded image. Tesseract itself cannot be
// interrupted, so ctx is only checked before the engine starts.
func (e *Engine) Recognize(ctx context.Context, img []byte) ([]recognize.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if e.cfg.ConfigFile != "" {
		if err := client.SetConfigFile(e.cfg.ConfigFile); err != nil {
			return nil, fmt.Errorf("failed to set tesseract config file: %w", err)
		}
	}
	if err := client.SetLanguage(e.cfg.Language); err != nil {
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}
	if err := client.SetPageSegMode(e.cfg.PageSegMode); err != nil {
		return nil, fmt.Errorf("failed to set PSM: %w", err)
	}
	if err := client.SetWhitelist(e.cfg.Whitelist); err != nil {
		return nil, fmt.Errorf("failed to set whitelist: %w", err)
	}
	if err := client.SetImageFromBytes(img); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("failed to get boxes: %w", err)
	}

	words := convert(boxes)
	logging.Trace("Tesseract finished", "boxes", len(boxes), "words", len(words))
	return words, nil
}

// convert maps gosseract boxes to words, dropping blank text and scaling
// confidence from 0-100 down to 0-1
func convert(boxes []gosseract.BoundingBox) []recognize.Word {
	words := make([]recognize.Word, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		conf := b.Confidence / 100
		if conf < 0 {
			conf = 0
		} else if conf > 1 {
			conf = 1
		}
		words = append(words, recognize.Word{Text: text, Box: b.Box, Confidence: conf})
	}
	return words
}
