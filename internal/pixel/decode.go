package pixel

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/jeeftor/wordgrid/internal/logging"
	"github.com/spakin/netpbm"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode is matched by every DecodeError
var ErrDecode = errors.New("image decode failed")

// DecodeError reports an image payload that could not be turned into pixels
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("failed to decode image %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("failed to decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// Decode reads an encoded raster image. Netpbm formats are tried first,
// then the registered standard decoders (png, jpeg, gif, bmp, tiff, webp).
func Decode(r io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return decodeBytes(data, "")
}

// DecodeFile opens and decodes an image file
func DecodeFile(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Source: path, Err: err}
	}
	return decodeBytes(data, path)
}

func decodeBytes(data []byte, source string) (*Buffer, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Source: source, Err: errors.New("empty payload")}
	}

	var img image.Image
	img, err := netpbm.Decode(bytes.NewReader(data), nil)
	format := "netpbm"
	if err != nil {
		img, format, err = image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, &DecodeError{Source: source, Err: err}
		}
	}

	buf := FromImage(img)
	logging.Debug("Decoded image",
		"source", source,
		"format", format,
		"size", fmt.Sprintf("%dx%d", buf.Width, buf.Height))
	return buf, nil
}

// DecodeResult is delivered by DecodeAsync
type DecodeResult struct {
	Buffer *Buffer
	Err    error
}

// DecodeAsync decodes r on a separate goroutine. The returned channel receives
// exactly one result; if ctx ends first the result carries ctx.Err().
func DecodeAsync(ctx context.Context, r io.Reader) <-chan DecodeResult {
	out := make(chan DecodeResult, 1)
	done := make(chan DecodeResult, 1)

	go func() {
		buf, err := Decode(r)
		done <- DecodeResult{Buffer: buf, Err: err}
	}()

	go func() {
		select {
		case res := <-done:
			out <- res
		case <-ctx.Done():
			out <- DecodeResult{Err: ctx.Err()}
		}
	}()

	return out
}
