package recognize

import (
	"fmt"
	"image"
	"testing"

	"github.com/jeeftor/wordgrid/internal/grid"
	"github.com/stretchr/testify/assert"
)

// word builds a 30px tall word box centered at (cx, cy)
func word(text string, cx, cy int) Word {
	return Word{Text: text, Box: image.Rect(cx-20, cy-15, cx+20, cy+15), Confidence: 0.9}
}

func TestGroupRowsTwoRows(t *testing.T) {
	box := grid.Rect{X: 0, Y: 0, Width: 400, Height: 400}
	words := []Word{
		word("D", 300, 262),
		word("B", 200, 102),
		word("C", 100, 260),
		word("A", 100, 100),
	}

	assert.Equal(t, []string{"A", "B", "C", "D"}, GroupRows(words, box))
}

func TestGroupRowsDropsOutside(t *testing.T) {
	box := grid.Rect{X: 50, Y: 50, Width: 300, Height: 300}
	words := []Word{
		word("IN", 100, 100),
		word("LEFT", 20, 100),
		word("BELOW", 100, 380),
	}

	assert.Equal(t, []string{"IN"}, GroupRows(words, box))
	assert.Nil(t, GroupRows(words[1:], box))
	assert.Nil(t, GroupRows(nil, box))
}

func TestGroupRowsThresholdIsRelativeToHeight(t *testing.T) {
	box := grid.Rect{X: 0, Y: 0, Width: 1000, Height: 1000}

	// 23px apart with 30px tall boxes: 23 < 24, same row
	same := []Word{word("RIGHT", 300, 123), word("LEFT", 100, 100)}
	assert.Equal(t, []string{"LEFT", "RIGHT"}, GroupRows(same, box))

	// 25px apart: new row, so vertical order wins
	split := []Word{word("RIGHT", 300, 100), word("LEFT", 100, 125)}
	assert.Equal(t, []string{"RIGHT", "LEFT"}, GroupRows(split, box))
}

func TestGroupRowsTruncates(t *testing.T) {
	box := grid.Rect{X: 0, Y: 0, Width: 1000, Height: 1000}
	var words []Word
	for r := 0; r < 5; r++ {
		for c := 0; c < 4; c++ {
			words = append(words, word(fmt.Sprintf("R%dC%d", r, c), 100+c*200, 100+r*150))
		}
	}

	got := GroupRows(words, box)
	assert.Len(t, got, grid.PuzzleCells)
	assert.Equal(t, "R0C0", got[0])
	assert.Equal(t, "R3C3", got[15])
}
