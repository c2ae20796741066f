package extract

import (
	"math"
	"sort"
)

// bandTolerance is the vertical distance, in pixels, within which a
// detection still belongs to the currently open row. Tuned for
// scoreboard-style layouts; it has no meaning beyond "same printed line".
const bandTolerance = 30.0

// Row is a cluster of detections inferred to lie on the same printed line,
// ordered left to right.
type Row []Detection

// groupRows clusters detections into rows by vertical proximity. A single
// greedy pass over the (CenterY, LeftX)-sorted detections keeps one open
// row buffer: a detection joins it when its CenterY is within bandTolerance
// of the buffer's running average, otherwise the buffer is closed and a new
// row starts. Rows come out top to bottom, members left to right.
//
// A detection whose CenterY drifts slowly across a tall buffer can be
// mis-bucketed. That is an accepted approximation for scoreboard layouts,
// and the downstream acceptance threshold was tuned against exactly this
// average-of-buffer behavior.
func groupRows(detections []Detection) []Row {
	if len(detections) == 0 {
		return nil
	}

	sorted := make([]Detection, len(detections))
	copy(sorted, detections)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].CenterY != sorted[j].CenterY {
			return sorted[i].CenterY < sorted[j].CenterY
		}
		return sorted[i].LeftX < sorted[j].LeftX
	})

	var rows []Row
	current := Row{sorted[0]}
	sumY := sorted[0].CenterY

	closeRow := func() {
		sort.Slice(current, func(i, j int) bool {
			return current[i].LeftX < current[j].LeftX
		})
		rows = append(rows, current)
	}

	for _, d := range sorted[1:] {
		avgY := sumY / float64(len(current))
		if math.Abs(d.CenterY-avgY) > bandTolerance {
			closeRow()
			current = Row{d}
			sumY = d.CenterY
			continue
		}
		current = append(current, d)
		sumY += d.CenterY
	}
	closeRow()

	return rows
}
