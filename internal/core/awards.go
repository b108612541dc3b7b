package core

import (
	"fmt"
	"math"
)

const awardDisplayCap = 18

// Award is one achievement card. Detail explains why it unlocked, or
// how far along the day is when locked.
type Award struct {
	Icon   string
	Title  string
	Short  string
	Detail string
	Locked bool
}

// AwardSet is the full recomputed catalog split by state.
type AwardSet struct {
	Unlocked []Award
	Locked   []Award
}

// awardRule is one independent predicate plus its renderer. Rules never
// depend on each other; catalog order matters for display only.
type awardRule struct {
	icon  string
	title string
	short string
	eval  func(d Derived) (unlocked bool, detail string)
}

// awardCatalog is data, not control flow: adding or removing a rule
// never touches evaluation logic.
var awardCatalog = []awardRule{
	{
		icon: "🎯", title: "Daily Goal", short: "Log 17 transactions in one day",
		eval: func(d Derived) (bool, string) {
			if d.Count >= dailyGoalCount {
				return true, fmt.Sprintf("%d transactions logged, goal of %d met", d.Count, dailyGoalCount)
			}
			return false, fmt.Sprintf("you're at %d/%d today", d.Count, dailyGoalCount)
		},
	},
	{
		icon: "🏹", title: "Bullseye", short: "Hit a TMA exactly",
		eval: func(d Derived) (bool, string) {
			if d.ExactHits > 0 {
				return true, fmt.Sprintf("%d transaction(s) landed exactly on target", d.ExactHits)
			}
			if d.Count == 0 {
				return false, "no transactions yet"
			}
			return false, fmt.Sprintf("closest so far: %s off target", FormatShort(d.MinAbsDiff))
		},
	},
	{
		icon: "⚖️", title: "In the Margin", short: "End the day within ±10min of zero",
		eval: func(d Derived) (bool, string) {
			if d.Count > 0 && d.EndedWithinMargin {
				return true, fmt.Sprintf("balance closed at %s, inside the 10min band", FormatSigned(int64(math.Round(d.Saldo))))
			}
			if d.Count == 0 {
				return false, "no transactions yet"
			}
			return false, fmt.Sprintf("balance is %s past the margin", FormatShort(int64(d.AbsSaldo)-marginSeconds))
		},
	},
	{
		icon: "🎖️", title: "With Honors", short: "Daily goal and margin, together",
		eval: func(d Derived) (bool, string) {
			if d.Count >= dailyGoalCount && d.EndedWithinMargin {
				return true, fmt.Sprintf("%d transactions and a %s balance", d.Count, FormatShort(int64(d.AbsSaldo)))
			}
			return false, fmt.Sprintf("%d/%d transactions, balance %s from zero", d.Count, dailyGoalCount, FormatShort(int64(d.AbsSaldo)))
		},
	},
	{
		icon: "🧗", title: "Climbed Back", short: "Leave the margin and return",
		eval: func(d Derived) (bool, string) {
			if d.EverOutOfMargin && d.EndedWithinMargin {
				return true, "the balance broke the 10min band and you brought it back"
			}
			if !d.EverOutOfMargin {
				return false, "the balance never left the margin today"
			}
			return false, fmt.Sprintf("still %s outside the band", FormatShort(int64(d.AbsSaldo)-marginSeconds))
		},
	},
	{
		icon: "🌪️", title: "Stormy Day", short: "Recover from 5+ margin episodes",
		eval: func(d Derived) (bool, string) {
			if d.Episodes >= 5 && d.EndedWithinMargin {
				return true, fmt.Sprintf("%d episodes outside the margin, all recovered", d.Episodes)
			}
			return false, fmt.Sprintf("episodes today: %d/5", d.Episodes)
		},
	},
	{
		icon: "💎", title: "Perfectionist", short: "Never leave the margin",
		eval: func(d Derived) (bool, string) {
			if d.Count > 0 && !d.EverOutOfMargin {
				return true, fmt.Sprintf("the running balance stayed inside ±%s all day", FormatShort(marginSeconds))
			}
			if d.Count == 0 {
				return false, "no transactions yet"
			}
			return false, fmt.Sprintf("the balance left the margin %d time(s)", d.Episodes)
		},
	},
	{
		icon: "🧩", title: "Complexity Tamer", short: "Handle 10 complex transactions",
		eval: func(d Derived) (bool, string) {
			if d.ComplexCount >= 10 {
				return true, fmt.Sprintf("%d complex transactions handled", d.ComplexCount)
			}
			return false, fmt.Sprintf("you're at %d/10 complex", d.ComplexCount)
		},
	},
	{
		icon: "🚫", title: "Clean Goal", short: "Reach the goal with zero returns",
		eval: func(d Derived) (bool, string) {
			if d.Count >= dailyGoalCount && d.ReturnCount == 0 {
				return true, fmt.Sprintf("%d transactions, not a single return", d.Count)
			}
			return false, fmt.Sprintf("%d/%d transactions with %d return(s)", d.Count, dailyGoalCount, d.ReturnCount)
		},
	},
	{
		icon: "✨", title: "No Returns", short: "A day without returns",
		eval: func(d Derived) (bool, string) {
			if d.Count > 0 && d.ReturnCount == 0 {
				return true, "every transaction closed first time"
			}
			if d.Count == 0 {
				return false, "no transactions yet"
			}
			return false, fmt.Sprintf("returns today: %d", d.ReturnCount)
		},
	},
	{
		icon: "🔁", title: "Return Desk", short: "70%+ returns over 10+ transactions",
		eval: func(d Derived) (bool, string) {
			if d.Count >= 10 && d.ReturnCount*10 >= d.Count*7 {
				return true, fmt.Sprintf("%d of %d transactions were returns", d.ReturnCount, d.Count)
			}
			if d.Count == 0 {
				return false, "no transactions yet"
			}
			return false, fmt.Sprintf("returns at %d%% of %d transaction(s)", 100*d.ReturnCount/d.Count, d.Count)
		},
	},
	{
		icon: "🏃", title: "Marathon", short: "Log 20 transactions",
		eval: func(d Derived) (bool, string) {
			if d.Count >= 20 {
				return true, fmt.Sprintf("%d transactions in a single day", d.Count)
			}
			return false, fmt.Sprintf("you're at %d/20 today", d.Count)
		},
	},
	{
		icon: "🪙", title: "Zeroed Out", short: "Balance within one minute of zero",
		eval: func(d Derived) (bool, string) {
			if d.Count > 0 && d.AbsSaldo <= 60 {
				return true, fmt.Sprintf("balance at %s from zero", FormatShort(int64(d.AbsSaldo)))
			}
			if d.Count == 0 {
				return false, "no transactions yet"
			}
			return false, fmt.Sprintf("balance is %s from zero", FormatShort(int64(d.AbsSaldo)))
		},
	},
	{
		icon: "🎚️", title: "Close Enough", short: "Balance within five minutes of zero",
		eval: func(d Derived) (bool, string) {
			if d.Count > 0 && d.AbsSaldo <= 300 {
				return true, fmt.Sprintf("balance at %s from zero", FormatShort(int64(d.AbsSaldo)))
			}
			if d.Count == 0 {
				return false, "no transactions yet"
			}
			return false, fmt.Sprintf("balance is %s from zero", FormatShort(int64(d.AbsSaldo)))
		},
	},
	{
		icon: "📏", title: "Consistency", short: "60% of a 10+ day within one minute",
		eval: func(d Derived) (bool, string) {
			if d.Count >= 10 && d.WithinMinute*100 >= d.Count*60 {
				return true, fmt.Sprintf("%d of %d transactions within 1min of target", d.WithinMinute, d.Count)
			}
			if d.Count == 0 {
				return false, "no transactions yet"
			}
			return false, fmt.Sprintf("%d%% within 1min over %d transaction(s)", 100*d.WithinMinute/d.Count, d.Count)
		},
	},
	{
		icon: "🔬", title: "Precision", short: "40% of a 10+ day within 20 seconds",
		eval: func(d Derived) (bool, string) {
			if d.Count >= 10 && d.NearPerfect*100 >= d.Count*40 {
				return true, fmt.Sprintf("%d of %d transactions within 20s of target", d.NearPerfect, d.Count)
			}
			if d.Count == 0 {
				return false, "no transactions yet"
			}
			return false, fmt.Sprintf("%d%% within 20s over %d transaction(s)", 100*d.NearPerfect/d.Count, d.Count)
		},
	},
	{
		icon: "🛡️", title: "No Big Misses", short: "Largest miss under 5min on a 10+ day",
		eval: func(d Derived) (bool, string) {
			if d.Count >= 10 && d.MaxAbsDiff <= 300 {
				return true, fmt.Sprintf("worst deviation of the day: %s", FormatShort(d.MaxAbsDiff))
			}
			if d.Count == 0 {
				return false, "no transactions yet"
			}
			return false, fmt.Sprintf("largest miss so far: %s", FormatShort(d.MaxAbsDiff))
		},
	},
	{
		icon: "🧘", title: "Steady Hands", short: "90% of a 10+ day within 2min",
		eval: func(d Derived) (bool, string) {
			if d.Count >= 10 && d.P90Abs <= 120 {
				return true, fmt.Sprintf("p90 deviation at %s", FormatShort(d.P90Abs))
			}
			if d.Count == 0 {
				return false, "no transactions yet"
			}
			return false, fmt.Sprintf("p90 deviation at %s", FormatShort(d.P90Abs))
		},
	},
	{
		icon: "🔥", title: "On a Roll", short: "5 consecutive near-target transactions",
		eval: func(d Derived) (bool, string) {
			if d.NearStreak >= 5 {
				return true, fmt.Sprintf("current streak: %d within 1min of target", d.NearStreak)
			}
			return false, fmt.Sprintf("current streak: %d/5", d.NearStreak)
		},
	},
	{
		icon: "📈", title: "Comeback", short: "Finish 30s sharper than you started",
		eval: func(d Derived) (bool, string) {
			if d.ComebackValid && d.ComebackGain >= 30 {
				return true, fmt.Sprintf("average deviation improved by %s over the day", FormatShort(int64(math.Round(d.ComebackGain))))
			}
			if !d.ComebackValid {
				return false, fmt.Sprintf("needs 10+ transactions to compare (at %d)", d.Count)
			}
			return false, fmt.Sprintf("improvement so far: %s", FormatShort(int64(math.Round(d.ComebackGain))))
		},
	},
	{
		icon: "⭐", title: "Sharpshooter", short: "One transaction within 20s of target",
		eval: func(d Derived) (bool, string) {
			if d.Count > 0 && d.MinAbsDiff <= perfectSeconds {
				return true, fmt.Sprintf("best transaction landed %s from target", FormatShort(d.MinAbsDiff))
			}
			if d.Count == 0 {
				return false, "no transactions yet"
			}
			return false, fmt.Sprintf("best so far: %s from target", FormatShort(d.MinAbsDiff))
		},
	},
	{
		icon: "🚒", title: "Firefighter", short: "Calm down after a 10min+ miss",
		eval: func(d Derived) (bool, string) {
			if d.FireRecovered {
				return true, "a 10min+ miss was followed by 3 calm transactions in a row"
			}
			if !d.FireFound {
				return false, "no 10min+ miss today, nothing to put out"
			}
			return false, "after the big miss, chain 3 transactions within 2min of target"
		},
	},
	{
		icon: "🌅", title: "Early Bird", short: "First transaction before 08:10",
		eval: func(d Derived) (bool, string) {
			if d.EarliestClock >= 0 && d.EarliestClock < 8*3600+10*60 {
				return true, fmt.Sprintf("day started at %s", ClockTime(d.EarliestClock))
			}
			if d.EarliestClock < 0 {
				return false, "no timestamped transactions yet"
			}
			return false, fmt.Sprintf("first transaction at %s", ClockTime(d.EarliestClock))
		},
	},
	{
		icon: "🍱", title: "Lunch Dedication", short: "Work a transaction through lunch",
		eval: func(d Derived) (bool, string) {
			if d.LunchHit {
				return true, "a transaction landed inside the lunch window"
			}
			return false, "no transaction inside the lunch window yet"
		},
	},
	{
		icon: "🦉", title: "Night Owl", short: "A transaction at 20:00 or later",
		eval: func(d Derived) (bool, string) {
			if d.NightHit {
				return true, fmt.Sprintf("latest transaction at %s", ClockTime(d.LatestClock))
			}
			if d.LatestClock < 0 {
				return false, "no timestamped transactions yet"
			}
			return false, fmt.Sprintf("latest transaction at %s", ClockTime(d.LatestClock))
		},
	},
}

// EvaluateAwards runs every rule in the catalog against the snapshot.
// The whole set is recomputed each call; nothing carries over.
func EvaluateAwards(snap Snapshot) AwardSet {
	d := ComputeDerived(snap)
	var set AwardSet
	for _, rule := range awardCatalog {
		unlocked, detail := rule.eval(d)
		award := Award{
			Icon:   rule.icon,
			Title:  rule.title,
			Short:  rule.short,
			Detail: detail,
			Locked: !unlocked,
		}
		if unlocked {
			set.Unlocked = append(set.Unlocked, award)
		} else {
			set.Locked = append(set.Locked, award)
		}
	}
	return set
}

// FormatAwards shapes a set for display: unlocked first, locked
// appended only when requested, both capped. The showLocked flag is
// caller UI state, not part of the evaluation.
func FormatAwards(set AwardSet, showLocked bool) []Award {
	out := capAwards(set.Unlocked)
	if showLocked {
		out = append(out, capAwards(set.Locked)...)
	}
	return out
}

func capAwards(list []Award) []Award {
	if len(list) > awardDisplayCap {
		list = list[:awardDisplayCap]
	}
	return append([]Award(nil), list...)
}

// CatalogSize reports the number of rules, locked or not.
func CatalogSize() int {
	return len(awardCatalog)
}
