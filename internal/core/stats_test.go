package core

import "testing"

func txWithDiff(item string, diff, spent int64) TransactionRecord {
	return TransactionRecord{Item: item, Type: "normal", TimeSpent: spent, Difference: diff}
}

// ============================================================
// Stats aggregation
// ============================================================

func TestComputeStatsEmpty(t *testing.T) {
	st := ComputeStats(nil)
	if st.Count != 0 || st.SumDifference != 0 || st.AvgDifference != 0 || st.SumTimeSpent != 0 {
		t.Fatalf("empty input should yield zero stats: %+v", st)
	}
	if len(st.TopItems) != 0 {
		t.Fatal("empty input should yield no top items")
	}
}

func TestComputeStatsSums(t *testing.T) {
	txs := []TransactionRecord{
		txWithDiff("a", 30, 330),
		txWithDiff("b", -50, 250),
		txWithDiff("c", 20, 320),
	}
	st := ComputeStats(txs)
	if st.Count != 3 {
		t.Fatalf("count = %d", st.Count)
	}
	// Sum must equal the literal sum of differences.
	if st.SumDifference != 0 {
		t.Fatalf("sum = %d, want 0", st.SumDifference)
	}
	if st.SumTimeSpent != 900 {
		t.Fatalf("sumTimeSpent = %d, want 900", st.SumTimeSpent)
	}
	if st.AvgDifference != 0 {
		t.Fatalf("avg = %d, want 0", st.AvgDifference)
	}
}

func TestComputeStatsAvgRounded(t *testing.T) {
	txs := []TransactionRecord{
		txWithDiff("a", 10, 0),
		txWithDiff("b", 10, 0),
		txWithDiff("c", 11, 0),
	}
	// 31/3 = 10.33 -> 10
	if st := ComputeStats(txs); st.AvgDifference != 10 {
		t.Fatalf("avg = %d, want 10", st.AvgDifference)
	}

	txs = []TransactionRecord{
		txWithDiff("a", 10, 0),
		txWithDiff("b", 11, 0),
	}
	// 21/2 = 10.5 -> 11
	if st := ComputeStats(txs); st.AvgDifference != 11 {
		t.Fatalf("avg = %d, want 11", st.AvgDifference)
	}
}

func TestComputeStatsTopItems(t *testing.T) {
	var txs []TransactionRecord
	add := func(item string, n int) {
		for i := 0; i < n; i++ {
			txs = append(txs, txWithDiff(item, 0, 0))
		}
	}
	add("alpha", 3)
	add("beta", 5)
	add("gamma", 1)
	add("delta", 3) // ties with alpha; alpha was seen first

	st := ComputeStats(txs)
	if len(st.TopItems) != 4 {
		t.Fatalf("expected 4 items, got %d", len(st.TopItems))
	}
	if st.TopItems[0].Item != "beta" || st.TopItems[0].Count != 5 {
		t.Fatalf("top item should be beta(5): %+v", st.TopItems[0])
	}
	// Stable tie-break: alpha before delta.
	if st.TopItems[1].Item != "alpha" || st.TopItems[2].Item != "delta" {
		t.Fatalf("tie should keep first-encountered order: %+v", st.TopItems)
	}
}

func TestComputeStatsTopItemsCappedAtSix(t *testing.T) {
	var txs []TransactionRecord
	for _, item := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		txs = append(txs, txWithDiff(item, 0, 0))
	}
	st := ComputeStats(txs)
	if len(st.TopItems) != 6 {
		t.Fatalf("top items should cap at 6, got %d", len(st.TopItems))
	}
}
