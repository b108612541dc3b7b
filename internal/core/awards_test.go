package core

import (
	"strings"
	"testing"
	"time"
)

func findAward(list []Award, title string) (Award, bool) {
	for _, a := range list {
		if a.Title == title {
			return a, true
		}
	}
	return Award{}, false
}

func snapWithCount(n int, diff int64) Snapshot {
	var txs []TransactionRecord
	for i := 0; i < n; i++ {
		txs = append(txs, TransactionRecord{Item: "x", Type: "normal", Difference: diff})
	}
	return Snapshot{Transactions: txs}
}

// ============================================================
// Catalog shape
// ============================================================

func TestCatalogSize(t *testing.T) {
	if CatalogSize() != 25 {
		t.Fatalf("catalog has %d rules, want 25", CatalogSize())
	}
}

func TestEvaluateAwardsCoversWholeCatalog(t *testing.T) {
	set := EvaluateAwards(Snapshot{})
	if len(set.Unlocked)+len(set.Locked) != CatalogSize() {
		t.Fatalf("every rule must yield an award: %d+%d != %d",
			len(set.Unlocked), len(set.Locked), CatalogSize())
	}
}

func TestEmptySnapshotAllLocked(t *testing.T) {
	set := EvaluateAwards(Snapshot{})
	if len(set.Unlocked) != 0 {
		t.Fatalf("empty day should unlock nothing, got %d", len(set.Unlocked))
	}
	for _, a := range set.Locked {
		if !a.Locked {
			t.Fatalf("award %q in locked list but not marked locked", a.Title)
		}
		if a.Detail == "" {
			t.Fatalf("award %q locked without a hint", a.Title)
		}
	}
}

// ============================================================
// Individual rules
// ============================================================

func TestDailyGoalRule(t *testing.T) {
	set := EvaluateAwards(snapWithCount(17, 0))
	if _, ok := findAward(set.Unlocked, "Daily Goal"); !ok {
		t.Fatal("17 transactions should unlock the daily goal")
	}

	set = EvaluateAwards(snapWithCount(16, 0))
	a, ok := findAward(set.Locked, "Daily Goal")
	if !ok {
		t.Fatal("16 transactions should leave the goal locked")
	}
	if !strings.Contains(a.Detail, "16/17") {
		t.Fatalf("locked hint must show progress 16/17, got %q", a.Detail)
	}
}

func TestBullseyeRule(t *testing.T) {
	set := EvaluateAwards(snapWithDiffs(0, 0, 50))
	if _, ok := findAward(set.Unlocked, "Bullseye"); !ok {
		t.Fatal("an exact hit should unlock bullseye")
	}

	set = EvaluateAwards(snapWithDiffs(0, 25))
	a, _ := findAward(set.Locked, "Bullseye")
	if !strings.Contains(a.Detail, "25s") {
		t.Fatalf("locked bullseye should report the closest miss, got %q", a.Detail)
	}
}

func TestMarginRules(t *testing.T) {
	// Balance 200: inside the margin, never out.
	set := EvaluateAwards(Snapshot{BalanceSeconds: 200, Transactions: snapWithDiffs(0, 200).Transactions})
	if _, ok := findAward(set.Unlocked, "In the Margin"); !ok {
		t.Fatal("balance 200 is inside ±600")
	}
	if _, ok := findAward(set.Unlocked, "Perfectionist"); !ok {
		t.Fatal("running sum never left the margin")
	}
	if _, ok := findAward(set.Locked, "Climbed Back"); !ok {
		t.Fatal("no excursion means no comeback")
	}

	// Out and back: running sums 700 then 100.
	set = EvaluateAwards(Snapshot{BalanceSeconds: 100, Transactions: snapWithDiffs(0, -600, 700).Transactions})
	if _, ok := findAward(set.Unlocked, "Climbed Back"); !ok {
		t.Fatal("leaving and returning should unlock the climb back")
	}
	if _, ok := findAward(set.Locked, "Perfectionist"); !ok {
		t.Fatal("an excursion forfeits perfectionist")
	}
}

func TestWithHonorsRule(t *testing.T) {
	snap := snapWithCount(17, 10)
	snap.BalanceSeconds = 170
	set := EvaluateAwards(snap)
	if _, ok := findAward(set.Unlocked, "With Honors"); !ok {
		t.Fatal("goal + margin should unlock honors")
	}
}

func TestReturnRules(t *testing.T) {
	txs := []TransactionRecord{
		{Item: "a", Type: TypeReturn},
		{Item: "b", Type: "normal"},
	}
	set := EvaluateAwards(Snapshot{Transactions: txs})
	a, ok := findAward(set.Locked, "No Returns")
	if !ok {
		t.Fatal("a return should lock the no-returns award")
	}
	if !strings.Contains(a.Detail, "1") {
		t.Fatalf("hint should carry the return count, got %q", a.Detail)
	}

	// 8 returns of 10 transactions: 80% >= 70%.
	txs = nil
	for i := 0; i < 8; i++ {
		txs = append(txs, TransactionRecord{Item: "r", Type: TypeReturn})
	}
	for i := 0; i < 2; i++ {
		txs = append(txs, TransactionRecord{Item: "n", Type: "normal"})
	}
	set = EvaluateAwards(Snapshot{Transactions: txs})
	if _, ok := findAward(set.Unlocked, "Return Desk"); !ok {
		t.Fatal("80% returns over 10 should unlock the return desk")
	}
}

func TestConsistencyAndPrecisionRules(t *testing.T) {
	// 10 transactions, 6 within 60s (60%), 4 within 20s (40%).
	var diffs []int64
	diffs = append(diffs, 10, 15, 20, 20, 55, 60) // within minute; first four within 20s
	diffs = append(diffs, 90, 100, 200, 300)
	set := EvaluateAwards(snapWithDiffs(0, diffs...))
	if _, ok := findAward(set.Unlocked, "Consistency"); !ok {
		t.Fatal("60% within a minute over 10 should unlock consistency")
	}
	if _, ok := findAward(set.Unlocked, "Precision"); !ok {
		t.Fatal("40% within 20s over 10 should unlock precision")
	}
	if _, ok := findAward(set.Unlocked, "No Big Misses"); !ok {
		t.Fatal("max 300s is within the no-big-miss bound")
	}
}

func TestStabilityRule(t *testing.T) {
	// 10 values, p90 picks index 9 after sort.
	diffs := []int64{10, 10, 10, 10, 10, 10, 10, 10, 10, 120}
	set := EvaluateAwards(snapWithDiffs(0, diffs...))
	if _, ok := findAward(set.Unlocked, "Steady Hands"); !ok {
		t.Fatal("p90 of 120s should unlock stability")
	}

	diffs[9] = 121
	set = EvaluateAwards(snapWithDiffs(0, diffs...))
	if _, ok := findAward(set.Locked, "Steady Hands"); !ok {
		t.Fatal("p90 of 121s should stay locked")
	}
}

func TestStreakRule(t *testing.T) {
	set := EvaluateAwards(snapWithDiffs(0, 10, 20, 30, 40, 50))
	if _, ok := findAward(set.Unlocked, "On a Roll"); !ok {
		t.Fatal("5 consecutive near-target should unlock the streak")
	}

	set = EvaluateAwards(snapWithDiffs(0, 10, 20, 70, 10, 10))
	a, _ := findAward(set.Locked, "On a Roll")
	if !strings.Contains(a.Detail, "2/5") {
		t.Fatalf("hint should show streak progress, got %q", a.Detail)
	}
}

func TestComebackRule(t *testing.T) {
	// Oldest 10 at 100s off, newest 10 at 10s off: gain 90.
	var newestFirst []int64
	for i := 0; i < 10; i++ {
		newestFirst = append(newestFirst, 10)
	}
	for i := 0; i < 10; i++ {
		newestFirst = append(newestFirst, 100)
	}
	set := EvaluateAwards(snapWithDiffs(0, newestFirst...))
	if _, ok := findAward(set.Unlocked, "Comeback"); !ok {
		t.Fatal("a 90s improvement should unlock the comeback")
	}
}

func TestFirefighterRule(t *testing.T) {
	// Oldest first: 700 then three calm. Newest-first input reversed.
	set := EvaluateAwards(snapWithDiffs(0, 100, 100, 100, 700))
	if _, ok := findAward(set.Unlocked, "Firefighter"); !ok {
		t.Fatal("recovery after the outlier should unlock the firefighter")
	}

	set = EvaluateAwards(snapWithDiffs(0, 100, 100, 700))
	if _, ok := findAward(set.Locked, "Firefighter"); !ok {
		t.Fatal("only two calm transactions is not a recovery")
	}
}

func TestClockRules(t *testing.T) {
	at := func(h, m int) TransactionRecord {
		return TransactionRecord{
			Item: "x", Type: "normal",
			Timestamp: time.Date(2024, 3, 15, h, m, 0, 0, time.Local),
			HasTime:   true,
		}
	}
	set := EvaluateAwards(Snapshot{Transactions: []TransactionRecord{at(8, 9)}})
	if _, ok := findAward(set.Unlocked, "Early Bird"); !ok {
		t.Fatal("08:09 is before the 08:10 cutoff")
	}

	set = EvaluateAwards(Snapshot{Transactions: []TransactionRecord{at(8, 10)}})
	a, _ := findAward(set.Locked, "Early Bird")
	if !strings.Contains(a.Detail, "08:10") {
		t.Fatalf("hint should show first transaction time, got %q", a.Detail)
	}

	set = EvaluateAwards(Snapshot{Transactions: []TransactionRecord{at(20, 0)}})
	if _, ok := findAward(set.Unlocked, "Night Owl"); !ok {
		t.Fatal("20:00 sharp counts as night")
	}
}

func TestLunchRule(t *testing.T) {
	tx := TransactionRecord{
		Item: "x", Type: "normal",
		Timestamp: time.Date(2024, 3, 15, 12, 30, 0, 0, time.Local),
		HasTime:   true,
	}
	snap := Snapshot{
		Transactions: []TransactionRecord{tx},
		Lunch:        &LunchWindow{Start: 12 * 3600, End: 13 * 3600},
	}
	set := EvaluateAwards(snap)
	if _, ok := findAward(set.Unlocked, "Lunch Dedication"); !ok {
		t.Fatal("a transaction inside the lunch window should unlock")
	}

	snap.Lunch = nil
	set = EvaluateAwards(snap)
	if _, ok := findAward(set.Locked, "Lunch Dedication"); !ok {
		t.Fatal("without a window the award stays locked")
	}
}

// ============================================================
// Display formatting
// ============================================================

func TestFormatAwardsHidesLockedByDefault(t *testing.T) {
	set := EvaluateAwards(snapWithCount(17, 0))
	shown := FormatAwards(set, false)
	for _, a := range shown {
		if a.Locked {
			t.Fatal("locked awards must be gated by the flag")
		}
	}

	withLocked := FormatAwards(set, true)
	if len(withLocked) <= len(shown) {
		t.Fatal("showing locked should add cards")
	}
}

func TestFormatAwardsOrderAndCap(t *testing.T) {
	var set AwardSet
	for i := 0; i < 30; i++ {
		set.Unlocked = append(set.Unlocked, Award{Title: "u"})
		set.Locked = append(set.Locked, Award{Title: "l", Locked: true})
	}
	out := FormatAwards(set, true)
	if len(out) != 36 {
		t.Fatalf("both lists cap at 18: got %d", len(out))
	}
	if out[0].Locked || !out[35].Locked {
		t.Fatal("unlocked must come first")
	}
}

func TestFormatAwardsDoesNotAliasSet(t *testing.T) {
	set := EvaluateAwards(snapWithCount(17, 0))
	out := FormatAwards(set, true)
	if len(out) == 0 {
		t.Fatal("expected cards")
	}
	out[0].Title = "mutated"
	if set.Unlocked[0].Title == "mutated" {
		t.Fatal("FormatAwards must copy, not alias")
	}
}
