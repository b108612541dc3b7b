package core

import (
	"math"
	"sort"
)

// Contract thresholds shared across rules and advice.
const (
	marginSeconds     = 600 // ±10min acceptable balance band
	nearSeconds       = 60  // "close to target"
	perfectSeconds    = 20  // "near-perfect hit"
	outlierSeconds    = 600 // big-miss trigger for the recovery rule
	recoverySeconds   = 120 // what counts as calm after a big miss
	recoveryRunLength = 3
	dailyGoalCount    = 17
)

// Derived holds every quantity the award rules and advice share, so
// each is computed exactly once per snapshot.
type Derived struct {
	Count            int
	DiffsNewestFirst []int64
	DiffsOldestFirst []int64

	SumDiff    int64
	AvgDiff    float64
	AvgAbsDiff float64
	MaxAbsDiff int64
	MinAbsDiff int64 // 0 when there are no transactions
	P90Abs     int64

	// Saldo is the authoritative balance, falling back to SumDiff when
	// the snapshot balance is not finite.
	Saldo    float64
	AbsSaldo float64

	NearStreak        int // consecutive newest transactions with |diff| <= 60s
	Episodes          int // times the running balance left the ±10min margin
	EverOutOfMargin   bool
	EndedWithinMargin bool

	ComebackValid bool
	ComebackGain  float64 // mean |diff| of first 10 minus last 10, oldest first

	FireFound     bool // a |diff| >= 600s outlier exists
	FireRecovered bool // followed by 3 consecutive |diff| <= 120s

	ReturnCount  int
	ComplexCount int
	ExactHits    int // difference == 0
	NearPerfect  int // |diff| <= 20s
	WithinMinute int // |diff| <= 60s

	EarliestClock int64 // seconds-of-day of the first timestamped transaction, -1 if none
	LatestClock   int64
	LunchHit      bool // some transaction inside the configured lunch window
	NightHit      bool // some transaction at or after 20:00
}

// ComputeDerived walks the snapshot once per concern. Transactions are
// newest first per the snapshot convention.
func ComputeDerived(snap Snapshot) Derived {
	txs := snap.Transactions
	d := Derived{Count: len(txs), EarliestClock: -1, LatestClock: -1}

	d.DiffsNewestFirst = make([]int64, 0, len(txs))
	for _, tx := range txs {
		d.DiffsNewestFirst = append(d.DiffsNewestFirst, tx.Difference)
	}
	d.DiffsOldestFirst = reverseInt64(d.DiffsNewestFirst)

	absDiffs := make([]int64, 0, len(txs))
	for i, diff := range d.DiffsNewestFirst {
		a := absInt64(diff)
		absDiffs = append(absDiffs, a)
		d.SumDiff += diff
		if a > d.MaxAbsDiff {
			d.MaxAbsDiff = a
		}
		if i == 0 || a < d.MinAbsDiff {
			d.MinAbsDiff = a
		}
		if diff == 0 {
			d.ExactHits++
		}
		if a <= perfectSeconds {
			d.NearPerfect++
		}
		if a <= nearSeconds {
			d.WithinMinute++
		}
	}
	if d.Count > 0 {
		d.AvgDiff = float64(d.SumDiff) / float64(d.Count)
		var sumAbs int64
		for _, a := range absDiffs {
			sumAbs += a
		}
		d.AvgAbsDiff = float64(sumAbs) / float64(d.Count)
		d.P90Abs = percentile90(absDiffs)
	}

	if math.IsNaN(snap.BalanceSeconds) || math.IsInf(snap.BalanceSeconds, 0) {
		d.Saldo = float64(d.SumDiff)
	} else {
		d.Saldo = snap.BalanceSeconds
	}
	d.AbsSaldo = math.Abs(d.Saldo)
	d.EndedWithinMargin = d.AbsSaldo <= marginSeconds

	for _, diff := range d.DiffsNewestFirst {
		if absInt64(diff) > nearSeconds {
			break
		}
		d.NearStreak++
	}

	d.Episodes, d.EverOutOfMargin = marginEpisodes(d.DiffsOldestFirst)
	d.ComebackGain, d.ComebackValid = comebackGain(d.DiffsOldestFirst)
	d.FireFound, d.FireRecovered = fireRecovery(d.DiffsOldestFirst)

	for _, tx := range txs {
		switch tx.Type {
		case TypeReturn:
			d.ReturnCount++
		case TypeComplex:
			d.ComplexCount++
		}
		if !tx.HasTime {
			continue
		}
		clock := secondsOfDay(tx.Timestamp)
		if d.EarliestClock < 0 || clock < d.EarliestClock {
			d.EarliestClock = clock
		}
		if clock > d.LatestClock {
			d.LatestClock = clock
		}
		if snap.Lunch.Contains(clock) {
			d.LunchHit = true
		}
		if clock >= 20*3600 {
			d.NightHit = true
		}
	}

	return d
}

// marginEpisodes walks oldest to newest keeping a running balance. An
// episode starts each time the running sum leaves the ±600s margin
// from within it.
func marginEpisodes(oldestFirst []int64) (episodes int, everOut bool) {
	var run int64
	inMargin := true
	for _, diff := range oldestFirst {
		run += diff
		out := absInt64(run) > marginSeconds
		if out {
			everOut = true
			if inMargin {
				episodes++
			}
		}
		inMargin = !out
	}
	return episodes, everOut
}

// comebackGain compares the mean |difference| of the first 10 and last
// 10 transactions in oldest-first order. Valid only when both windows
// are full enough to mean something.
func comebackGain(oldestFirst []int64) (float64, bool) {
	const window = 10
	if len(oldestFirst) < window {
		return 0, false
	}
	first := meanAbs(oldestFirst[:window])
	last := meanAbs(oldestFirst[len(oldestFirst)-window:])
	return first - last, true
}

// fireRecovery looks for the first |diff| >= 600s outlier and then for
// 3 consecutive |diff| <= 120s transactions after it. Any break in the
// run resets the counter.
func fireRecovery(oldestFirst []int64) (found, recovered bool) {
	i := 0
	for ; i < len(oldestFirst); i++ {
		if absInt64(oldestFirst[i]) >= outlierSeconds {
			found = true
			break
		}
	}
	if !found {
		return false, false
	}
	calm := 0
	for _, diff := range oldestFirst[i+1:] {
		if absInt64(diff) <= recoverySeconds {
			calm++
			if calm >= recoveryRunLength {
				return true, true
			}
		} else {
			calm = 0
		}
	}
	return true, false
}

// percentile90 picks the value at index floor(0.9*n) of the ascending
// sort, clamped to the last index.
func percentile90(absDiffs []int64) int64 {
	if len(absDiffs) == 0 {
		return 0
	}
	sorted := make([]int64, len(absDiffs))
	copy(sorted, absDiffs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(math.Floor(0.9 * float64(len(sorted))))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func meanAbs(diffs []int64) float64 {
	if len(diffs) == 0 {
		return 0
	}
	var sum int64
	for _, d := range diffs {
		sum += absInt64(d)
	}
	return float64(sum) / float64(len(diffs))
}

func reverseInt64(in []int64) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
