package grid

import (
	"math"
	"sort"

	"github.com/jeeftor/wordgrid/internal/logging"
	"gonum.org/v1/gonum/stat"
)

const (
	// minOutlierSample is the smallest set the filter will touch
	minOutlierSample = 10
	// outlierRadius is the keep radius as a multiple of the median centroid distance
	outlierRadius = 2.5
	// maxRemovedFraction is the share of cells the filter may drop before it gives up
	maxRemovedFraction = 0.4
)

// FilterOutliers drops filled cells far from the cluster centroid, such as an
// overlay window sitting away from the grid. Sets smaller than ten are returned
// unchanged, as is the input when filtering would remove more than 40% of it.
func FilterOutliers(cells []CellCoord) []CellCoord {
	if len(cells) < minOutlierSample {
		return cells
	}

	xs := make([]float64, len(cells))
	ys := make([]float64, len(cells))
	for i, c := range cells {
		xs[i] = float64(c.X)
		ys[i] = float64(c.Y)
	}
	cx := stat.Mean(xs, nil)
	cy := stat.Mean(ys, nil)

	dists := make([]float64, len(cells))
	for i := range cells {
		dists[i] = math.Hypot(xs[i]-cx, ys[i]-cy)
	}
	sorted := append([]float64(nil), dists...)
	sort.Float64s(sorted)
	median := stat.Quantile(0.5, stat.Empirical, sorted, nil)
	limit := outlierRadius * median

	kept := make([]CellCoord, 0, len(cells))
	for i, c := range cells {
		if dists[i] <= limit {
			kept = append(kept, c)
		}
	}

	removed := len(cells) - len(kept)
	if float64(removed) > maxRemovedFraction*float64(len(cells)) {
		logging.Debug("Outlier filter too aggressive, keeping all cells",
			"cells", len(cells),
			"wouldRemove", removed)
		return cells
	}

	logging.Debug("Outlier filter",
		"cells", len(cells),
		"removed", removed,
		"median", median)
	return kept
}
