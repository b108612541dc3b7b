package core

import "math"

// SeriesPoint is one point of the cumulative balance series. X is
// elapsed seconds from the first timestamped transaction when the
// series uses a time axis, plain sequence index otherwise.
type SeriesPoint struct {
	X float64
	Y float64
}

// PrepareBalanceSeries converts oldest-first transactions to a running
// cumulative sum. timeAxis is true when at least half the transactions
// carry a parseable timestamp; transactions without one reuse the
// previous X so the series stays monotonic.
func PrepareBalanceSeries(oldestFirst []TransactionRecord) (points []SeriesPoint, timeAxis bool) {
	if len(oldestFirst) == 0 {
		return nil, false
	}

	timed := 0
	for _, tx := range oldestFirst {
		if tx.HasTime {
			timed++
		}
	}
	timeAxis = timed*2 >= len(oldestFirst)

	var origin int64
	haveOrigin := false
	var run int64
	var lastX float64
	for i, tx := range oldestFirst {
		run += tx.Difference
		x := float64(i)
		if timeAxis {
			if tx.HasTime {
				if !haveOrigin {
					origin = tx.Timestamp.Unix()
					haveOrigin = true
				}
				lastX = float64(tx.Timestamp.Unix() - origin)
			}
			x = lastX
		}
		points = append(points, SeriesPoint{X: x, Y: float64(run)})
	}
	return points, timeAxis
}

// HistogramBin counts transactions whose difference satisfies
// Min < difference <= Max. The outer bins are unbounded.
type HistogramBin struct {
	Label string
	Min   float64
	Max   float64
	Count int
}

// histogramEdges are the fixed interior bin boundaries in seconds.
var histogramEdges = []int64{-300, -120, -30, 30, 120, 300}

var histogramLabels = []string{
	"≤-5m", "-5m..-2m", "-2m..-30s", "±30s", "30s..2m", "2m..5m", ">5m",
}

// PrepareHistogram buckets differences into the fixed 7 bins. Every
// finite value lands in exactly one bin.
func PrepareHistogram(diffs []int64) []HistogramBin {
	bins := make([]HistogramBin, len(histogramEdges)+1)
	for i := range bins {
		bins[i].Label = histogramLabels[i]
		if i == 0 {
			bins[i].Min = math.Inf(-1)
		} else {
			bins[i].Min = float64(histogramEdges[i-1])
		}
		if i == len(histogramEdges) {
			bins[i].Max = math.Inf(1)
		} else {
			bins[i].Max = float64(histogramEdges[i])
		}
	}

	for _, d := range diffs {
		v := float64(d)
		for i := range bins {
			if v > bins[i].Min && v <= bins[i].Max {
				bins[i].Count++
				break
			}
		}
	}
	return bins
}
