// Package recognize turns puzzle cells into normalized word tokens using an
// external text recognizer.
package recognize

import (
	"context"
	"errors"
	"image"
)

var (
	// ErrNoWordsFound is returned when recognition produced no usable text anywhere
	ErrNoWordsFound = errors.New("no words found")
	// ErrTimeout marks a recognizer call that did not finish in time
	ErrTimeout = errors.New("recognition timed out")
)

// Word is one recognized word
type Word struct {
	Text string `json:"text"`
	// Box is in the coordinates of the image handed to the recognizer
	Box image.Rectangle `json:"box"`
	// Confidence is in [0,1]
	Confidence float64 `json:"confidence"`
}

// CenterX returns the horizontal center of the word box
func (w Word) CenterX() float64 {
	return float64(w.Box.Min.X+w.Box.Max.X) / 2
}

// CenterY returns the vertical center of the word box
func (w Word) CenterY() float64 {
	return float64(w.Box.Min.Y+w.Box.Max.Y) / 2
}

// Recognizer reads text from an encoded image. Implementations need not be
// safe for concurrent use unless documented; Extractor calls Recognize from
// several goroutines.
type Recognizer interface {
	Recognize(ctx context.Context, img []byte) ([]Word, error)
}

// RecognizerFunc adapts a function to the Recognizer interface
type RecognizerFunc func(ctx context.Context, img []byte) ([]Word, error)

func (f RecognizerFunc) Recognize(ctx context.Context, img []byte) ([]Word, error) {
	return f(ctx, img)
}
