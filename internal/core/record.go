package core

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Transaction type labels carried verbatim from the import format.
const (
	TypeReturn  = "retorno"
	TypeComplex = "complexa"
)

// TransactionRecord is one timed work transaction. Difference is
// authoritative: when a stored record disagrees with TimeSpent-TMA the
// stored value wins.
type TransactionRecord struct {
	Item       string
	Type       string
	TMA        int64 // target seconds
	TimeSpent  int64 // actual seconds
	Difference int64 // signed; negative = faster than target
	Timestamp  time.Time
	HasTime    bool // false when the timestamp could not be parsed
}

// PausedWorkEntry is a transaction that was interrupted mid-way.
type PausedWorkEntry struct {
	ID                 string
	Item               string
	Type               string
	TMA                int64
	AccumulatedSeconds int64
	UpdatedAt          time.Time
	HasTime            bool
}

// LunchWindow is a configured lunch break in seconds since midnight.
// A nil window means "not configured". Start > End wraps past midnight.
type LunchWindow struct {
	Start int64
	End   int64
}

// Snapshot is the immutable input to every analysis. BalanceSeconds is
// the authoritative running total and may diverge from the sum of the
// transaction differences; a NaN balance means "unknown" and callers
// fall back to the sum.
type Snapshot struct {
	BalanceSeconds    float64
	Transactions      []TransactionRecord // newest first
	Lunch             *LunchWindow
	ShiftStartSeconds int64
	ShowComplexa      bool
	PausedWork        map[string]PausedWorkEntry
}

// NormalizeTransaction coerces an externally-authored map into a record.
// Returns false when the entry fails minimum validity (missing item or
// type). Numeric fields that cannot be parsed coerce to 0; a missing or
// stored difference that cannot be parsed is re-derived from
// timeSpent-tma.
func NormalizeTransaction(raw map[string]any) (TransactionRecord, bool) {
	item := strings.TrimSpace(asString(raw["item"]))
	typ := strings.TrimSpace(asString(raw["type"]))
	if item == "" || typ == "" {
		return TransactionRecord{}, false
	}

	rec := TransactionRecord{
		Item:      item,
		Type:      typ,
		TMA:       clampNonNegative(asSeconds(raw["tma"])),
		TimeSpent: clampNonNegative(asSeconds(raw["timeSpent"])),
	}

	if diff, ok := asNumber(raw["difference"]); ok {
		rec.Difference = int64(math.Round(diff))
	} else {
		rec.Difference = rec.TimeSpent - rec.TMA
	}

	if ts, ok := ParseTimestamp(asString(raw["timestamp"])); ok {
		rec.Timestamp = ts
		rec.HasTime = true
	}
	return rec, true
}

// NormalizeTransactions keeps only valid entries, preserving order.
func NormalizeTransactions(raw []any) []TransactionRecord {
	var out []TransactionRecord
	for _, r := range raw {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		if rec, ok := NormalizeTransaction(m); ok {
			out = append(out, rec)
		}
	}
	return out
}

// NormalizePausedWork validates a paused-work map. Entries with an empty
// item or type, or without accumulated time, are dropped.
func NormalizePausedWork(raw map[string]any) map[string]PausedWorkEntry {
	out := make(map[string]PausedWorkEntry)
	for id, r := range raw {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		e := PausedWorkEntry{
			ID:                 strings.TrimSpace(asString(m["id"])),
			Item:               strings.TrimSpace(asString(m["item"])),
			Type:               strings.TrimSpace(asString(m["type"])),
			TMA:                clampNonNegative(asSeconds(m["tma"])),
			AccumulatedSeconds: asSeconds(m["accumulatedSeconds"]),
		}
		if e.ID == "" {
			e.ID = id
		}
		if e.Item == "" || e.Type == "" || e.AccumulatedSeconds <= 0 {
			continue
		}
		if ts, ok := ParseTimestamp(asString(m["updatedAt"])); ok {
			e.UpdatedAt = ts
			e.HasTime = true
		}
		out[e.ID] = e
	}
	return out
}

// NormalizeBalance coerces an imported balance value. Anything that is
// not a finite number becomes NaN, which downstream analysis treats as
// "recompute from the transactions".
func NormalizeBalance(v any) float64 {
	if f, ok := asNumber(v); ok {
		return f
	}
	return math.NaN()
}

// NormalizeLunch returns nil unless both bounds parse and differ.
func NormalizeLunch(raw map[string]any) *LunchWindow {
	if raw == nil {
		return nil
	}
	start, okS := asNumber(raw["start"])
	end, okE := asNumber(raw["end"])
	if !okS || !okE || start == end {
		return nil
	}
	return &LunchWindow{Start: int64(math.Round(start)), End: int64(math.Round(end))}
}

// Contains reports whether a seconds-of-day value falls inside the
// window, wrapping past midnight when Start > End.
func (w *LunchWindow) Contains(secondsOfDay int64) bool {
	if w == nil {
		return false
	}
	if w.Start <= w.End {
		return secondsOfDay >= w.Start && secondsOfDay <= w.End
	}
	return secondsOfDay >= w.Start || secondsOfDay <= w.End
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asNumber coerces JSON-decoded values (float64, int, numeric string)
// to a finite float64.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func asSeconds(v any) int64 {
	f, ok := asNumber(v)
	if !ok {
		return 0
	}
	return int64(math.Round(f))
}

func clampNonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
