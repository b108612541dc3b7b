package core

import (
	"fmt"
	"math"
)

// Fixed fun-fact unit durations, in seconds.
const (
	breakUnit   = 15 * 60
	songUnit    = 3*60 + 30
	noodleUnit  = 3 * 60
	episodeUnit = 12 * 60
)

// Advice bundles the coaching suggestions and fun facts derived from a
// snapshot, plus the diff sequences for callers that chart them.
type Advice struct {
	Suggestions      []string
	FunFacts         []string
	DiffsNewestFirst []int64
	DiffsOldestFirst []int64
}

// BuildAdvice derives coaching text and whimsical conversions. Both
// lists are stateless re-derivations; with no transactions they are
// empty.
func BuildAdvice(txs []TransactionRecord, balanceSeconds float64) Advice {
	d := ComputeDerived(Snapshot{BalanceSeconds: balanceSeconds, Transactions: txs})
	adv := Advice{
		DiffsNewestFirst: d.DiffsNewestFirst,
		DiffsOldestFirst: d.DiffsOldestFirst,
	}
	if d.Count == 0 {
		return adv
	}
	adv.Suggestions = buildSuggestions(txs, d)
	adv.FunFacts = buildFunFacts(d)
	return adv
}

func buildSuggestions(txs []TransactionRecord, d Derived) []string {
	var out []string

	recent := d.DiffsNewestFirst
	if len(recent) > 10 {
		recent = recent[:10]
	}
	recentAvg := meanAbs(recent)
	switch {
	case recentAvg <= 15:
		out = append(out, fmt.Sprintf("Recent transactions average %s off target. You're dialed in, keep the rhythm.", FormatShort(int64(math.Round(recentAvg)))))
	case recentAvg <= 60:
		out = append(out, fmt.Sprintf("Recent transactions average %s off target. Fine-tune the last stretch of each one.", FormatShort(int64(math.Round(recentAvg)))))
	default:
		out = append(out, fmt.Sprintf("Recent transactions average %s off target. Slow down and check where the time goes.", FormatShort(int64(math.Round(recentAvg)))))
	}

	if d.EndedWithinMargin {
		out = append(out, fmt.Sprintf("Balance is %s from zero, inside the 10min margin.", FormatShort(int64(d.AbsSaldo))))
	} else {
		out = append(out, fmt.Sprintf("Balance is %s outside the 10min margin. Shorter transactions will pull it back.", FormatShort(int64(d.AbsSaldo)-marginSeconds)))
	}

	if d.NearStreak >= 5 {
		out = append(out, fmt.Sprintf("You're on a %d-transaction streak within 1min of target. Protect it.", d.NearStreak))
	} else if d.NearStreak == 0 {
		out = append(out, "The last transaction broke your streak. One close-to-target transaction restarts it.")
	}

	if goal := int64(math.Round(math.Abs(d.AvgDiff))); goal > 20 {
		out = append(out, fmt.Sprintf("Micro-goal: shave %ds off each transaction to bring the average home.", goal))
	}

	if best, worst, ok := closestAndFarthest(txs); ok {
		out = append(out, fmt.Sprintf("Closest to target: %s (%s). Farthest: %s (%s).",
			best.Item, FormatSigned(best.Difference), worst.Item, FormatSigned(worst.Difference)))
	}

	return out
}

// closestAndFarthest picks the transactions with the smallest and
// largest absolute deviation. Needs at least two distinct candidates.
func closestAndFarthest(txs []TransactionRecord) (best, worst TransactionRecord, ok bool) {
	if len(txs) < 2 {
		return best, worst, false
	}
	best, worst = txs[0], txs[0]
	for _, tx := range txs[1:] {
		if absInt64(tx.Difference) < absInt64(best.Difference) {
			best = tx
		}
		if absInt64(tx.Difference) > absInt64(worst.Difference) {
			worst = tx
		}
	}
	if absInt64(best.Difference) == absInt64(worst.Difference) {
		return best, worst, false
	}
	return best, worst, true
}

func buildFunFacts(d Derived) []string {
	var out []string
	saldo := int64(d.AbsSaldo)

	units := []struct {
		unit   int64
		format string
	}{
		{breakUnit, "Your balance is worth %d coffee break(s) of 15 minutes."},
		{songUnit, "That's %d song(s) of 3:30 back to back."},
		{noodleUnit, "Enough to cook %d pack(s) of instant noodles."},
		{episodeUnit, "Or %d short episode(s) of 12 minutes."},
	}
	for _, u := range units {
		if n := saldo / u.unit; n > 0 {
			out = append(out, fmt.Sprintf(u.format, n))
		}
	}

	if d.ReturnCount > 0 {
		out = append(out, fmt.Sprintf("Returns handled today: %d.", d.ReturnCount))
	}
	if d.ComplexCount > 0 {
		out = append(out, fmt.Sprintf("Complex transactions handled: %d.", d.ComplexCount))
	}
	if d.NearPerfect > 0 {
		out = append(out, fmt.Sprintf("Near-perfect hits (within 20s): %d.", d.NearPerfect))
	}
	if d.MaxAbsDiff > 0 {
		out = append(out, fmt.Sprintf("Largest deviation of the day: %s.", FormatShort(d.MaxAbsDiff)))
	}
	return out
}
