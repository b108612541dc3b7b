package core

import "math"

// DaypartKey identifies one time-of-day segment.
type DaypartKey string

const (
	DaypartMorning   DaypartKey = "morning"   // [06,12)
	DaypartAfternoon DaypartKey = "afternoon" // [12,18)
	DaypartEvening   DaypartKey = "evening"   // [18,24)
	DaypartNight     DaypartKey = "night"     // [00,06)
	DaypartUnknown   DaypartKey = "unknown"   // unparseable timestamp
)

// daypartOrder is the fixed display order.
var daypartOrder = []DaypartKey{
	DaypartMorning, DaypartAfternoon, DaypartEvening, DaypartNight, DaypartUnknown,
}

// Tone classifies a bucket's average absolute deviation.
type Tone string

const (
	ToneGood Tone = "good" // avg |difference| <= 60s
	ToneWarn Tone = "warn" // <= 180s
	ToneBad  Tone = "bad"
)

// DaypartBucket aggregates the transactions of one segment. Buckets are
// rebuilt fresh on every call and never persisted.
type DaypartBucket struct {
	Key              DaypartKey
	Count            int
	SumTimeSpent     int64
	SumDifference    int64
	SumAbsDifference int64
	UnderCount       int // differences <= 0 (at or under target)
}

// AvgTimeSpent returns the bucket's mean actual seconds.
func (b DaypartBucket) AvgTimeSpent() float64 {
	if b.Count == 0 {
		return 0
	}
	return float64(b.SumTimeSpent) / float64(b.Count)
}

// Tone grades the bucket by mean absolute deviation.
func (b DaypartBucket) Tone() Tone {
	if b.Count == 0 {
		return ToneGood
	}
	avg := float64(b.SumAbsDifference) / float64(b.Count)
	switch {
	case avg <= 60:
		return ToneGood
	case avg <= 180:
		return ToneWarn
	}
	return ToneBad
}

// DaypartReport lists non-empty buckets in display order. Best and
// Worst are the lowest/highest average-time buckets, set only when at
// least two non-empty buckets exist and their averages differ.
type DaypartReport struct {
	Buckets []DaypartBucket
	Best    DaypartKey
	Worst   DaypartKey
}

func daypartFor(tx TransactionRecord) DaypartKey {
	if !tx.HasTime {
		return DaypartUnknown
	}
	switch h := tx.Timestamp.Hour(); {
	case h >= 6 && h < 12:
		return DaypartMorning
	case h >= 12 && h < 18:
		return DaypartAfternoon
	case h >= 18:
		return DaypartEvening
	}
	return DaypartNight
}

// ClassifyDayparts buckets transactions by local hour.
func ClassifyDayparts(txs []TransactionRecord) DaypartReport {
	byKey := make(map[DaypartKey]*DaypartBucket)
	for _, tx := range txs {
		key := daypartFor(tx)
		b := byKey[key]
		if b == nil {
			b = &DaypartBucket{Key: key}
			byKey[key] = b
		}
		b.Count++
		b.SumTimeSpent += tx.TimeSpent
		b.SumDifference += tx.Difference
		b.SumAbsDifference += absInt64(tx.Difference)
		if tx.Difference <= 0 {
			b.UnderCount++
		}
	}

	var rep DaypartReport
	for _, key := range daypartOrder {
		if b, ok := byKey[key]; ok {
			rep.Buckets = append(rep.Buckets, *b)
		}
	}

	if len(rep.Buckets) >= 2 {
		best, worst := rep.Buckets[0], rep.Buckets[0]
		for _, b := range rep.Buckets[1:] {
			if b.AvgTimeSpent() < best.AvgTimeSpent() {
				best = b
			}
			if b.AvgTimeSpent() > worst.AvgTimeSpent() {
				worst = b
			}
		}
		if math.Abs(best.AvgTimeSpent()-worst.AvgTimeSpent()) > 0 {
			rep.Best = best.Key
			rep.Worst = worst.Key
		}
	}
	return rep
}

func absInt64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
