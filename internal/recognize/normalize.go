package recognize

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jeeftor/wordgrid/internal/grid"
)

// MinTokenLength is the shortest normalized word kept
const MinTokenLength = 2

// NormalizeToken uppercases s and strips everything except A-Z, 0-9,
// apostrophe and hyphen. ok is false when fewer than MinTokenLength
// characters survive.
func NormalizeToken(s string) (string, bool) {
	var sb strings.Builder
	for _, r := range strings.ToUpper(s) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '\'', r == '-':
			sb.WriteRune(r)
		}
	}
	out := sb.String()
	if utf8.RuneCountInString(out) < MinTokenLength {
		return "", false
	}
	return out, true
}

// Placeholder returns the stand-in token for an empty cell at index i
func Placeholder(i int) string {
	return fmt.Sprintf("WORD %d", i+1)
}

// IsPlaceholder reports whether tok is the placeholder for index i
func IsPlaceholder(tok string, i int) bool {
	return tok == Placeholder(i)
}

// JoinWords normalizes each word and joins the survivors with single spaces.
// Multi-word tiles ("NEW YORK") keep their recognizer order.
func JoinWords(words []Word) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		for _, field := range strings.Fields(w.Text) {
			if tok, ok := NormalizeToken(field); ok {
				parts = append(parts, tok)
			}
		}
	}
	return strings.Join(parts, " ")
}

// FillTokens copies tokens into a fixed 16-slot grid, truncating extras and
// replacing empty slots with placeholders
func FillTokens(tokens []string) [grid.PuzzleCells]string {
	var out [grid.PuzzleCells]string
	for i := range out {
		if i < len(tokens) && tokens[i] != "" {
			out[i] = tokens[i]
		} else {
			out[i] = Placeholder(i)
		}
	}
	return out
}
