package recognize

import (
	"sort"

	"github.com/jeeftor/wordgrid/internal/grid"
)

// rowFactor scales the previous word's height into the row-break distance
const rowFactor = 0.8

// GroupRows orders words found over the whole grid into reading order.
// Words centered outside box are dropped. The rest are sorted by vertical
// center and chained into rows: a word joins the current row when its center
// is within 0.8x the previous word's height of the previous word. Each row is
// then sorted left to right. At most 16 texts are returned.
func GroupRows(words []Word, box grid.Rect) []string {
	inside := make([]Word, 0, len(words))
	for _, w := range words {
		if box.Contains(w.CenterX(), w.CenterY()) {
			inside = append(inside, w)
		}
	}
	if len(inside) == 0 {
		return nil
	}

	sort.SliceStable(inside, func(i, j int) bool {
		return inside[i].CenterY() < inside[j].CenterY()
	})

	var rows [][]Word
	current := []Word{inside[0]}
	for i := 1; i < len(inside); i++ {
		prev := inside[i-1]
		threshold := rowFactor * float64(prev.Box.Dy())
		if inside[i].CenterY()-prev.CenterY() < threshold {
			current = append(current, inside[i])
			continue
		}
		rows = append(rows, current)
		current = []Word{inside[i]}
	}
	rows = append(rows, current)

	out := make([]string, 0, len(inside))
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].CenterX() < row[j].CenterX()
		})
		for _, w := range row {
			out = append(out, w.Text)
		}
	}

	if len(out) > grid.PuzzleCells {
		out = out[:grid.PuzzleCells]
	}
	return out
}
