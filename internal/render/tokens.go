package render

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeeftor/wordgrid/internal/grid"
	"github.com/jeeftor/wordgrid/internal/recognize"
	"github.com/jeeftor/wordgrid/internal/styles"
)

const (
	minTileWidth = 6
	// tileChrome is the border plus padding around a tile's text
	tileChrome = 4
)

// TokenGrid renders the 16 tokens as a 4x4 grid of tiles no wider than width
func TokenGrid(tokens [grid.PuzzleCells]string, width int) string {
	inner := tileWidth(tokens, width)

	rows := make([]string, 0, grid.PuzzleRows)
	for r := 0; r < grid.PuzzleRows; r++ {
		tiles := make([]string, 0, grid.PuzzleCols)
		for c := 0; c < grid.PuzzleCols; c++ {
			i := r*grid.PuzzleCols + c
			style := styles.TileStyle
			if recognize.IsPlaceholder(tokens[i], i) {
				style = styles.PlaceholderTileStyle
			}
			tiles = append(tiles, style.Width(inner).Padding(0, 1).Render(tokens[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// tileWidth fits the longest token when the terminal allows it
func tileWidth(tokens [grid.PuzzleCells]string, width int) int {
	longest := 0
	for _, t := range tokens {
		longest = max(longest, utf8.RuneCountInString(t))
	}
	want := longest + 2
	fit := width/grid.PuzzleCols - tileChrome
	return max(min(want, fit), minTileWidth)
}

// TokenLines renders the tokens as plain text, one row of the puzzle per line
func TokenLines(tokens [grid.PuzzleCells]string) string {
	var sb strings.Builder
	for r := 0; r < grid.PuzzleRows; r++ {
		row := tokens[r*grid.PuzzleCols : (r+1)*grid.PuzzleCols]
		sb.WriteString(strings.Join(row, "\t"))
		sb.WriteByte('\n')
	}
	return sb.String()
}
