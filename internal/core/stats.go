package core

import (
	"math"
	"sort"
)

const topItemLimit = 6

// ItemCount is one entry of the top-items ranking.
type ItemCount struct {
	Item  string
	Count int
}

// Stats summarizes a transaction list.
type Stats struct {
	Count         int
	SumDifference int64
	AvgDifference int64 // rounded
	SumTimeSpent  int64
	TopItems      []ItemCount
}

// ComputeStats aggregates a transaction list in any order. An empty
// list yields all-zero stats and no top items.
func ComputeStats(txs []TransactionRecord) Stats {
	st := Stats{Count: len(txs)}
	if len(txs) == 0 {
		return st
	}

	counts := make(map[string]int)
	var order []string
	for _, tx := range txs {
		st.SumDifference += tx.Difference
		st.SumTimeSpent += tx.TimeSpent
		if counts[tx.Item] == 0 {
			order = append(order, tx.Item)
		}
		counts[tx.Item]++
	}
	st.AvgDifference = int64(math.Round(float64(st.SumDifference) / float64(st.Count)))

	// Stable sort keeps first-encountered order among equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	limit := topItemLimit
	if len(order) < limit {
		limit = len(order)
	}
	for _, item := range order[:limit] {
		st.TopItems = append(st.TopItems, ItemCount{Item: item, Count: counts[item]})
	}
	return st
}
