package export

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/sadopc/ritmo/internal/core"
)

// document is the portable day snapshot. The field names are the
// interchange contract; imports written by older builds must keep
// loading.
type document struct {
	BalanceSeconds    jsonNumber                `json:"balanceSeconds"`
	Transactions      []jsonTransaction         `json:"transactions"`
	Lunch             *jsonLunch                `json:"lunch"`
	ShiftStartSeconds int64                     `json:"shiftStartSeconds"`
	ShowComplexa      bool                      `json:"showComplexa"`
	PausedWork        map[string]jsonPausedWork `json:"pausedWork,omitempty"`
}

type jsonTransaction struct {
	Item       string `json:"item"`
	Type       string `json:"type"`
	TMA        int64  `json:"tma"`
	TimeSpent  int64  `json:"timeSpent"`
	Difference int64  `json:"difference"`
	Timestamp  string `json:"timestamp,omitempty"`
}

type jsonLunch struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

type jsonPausedWork struct {
	ID                 string `json:"id"`
	Item               string `json:"item"`
	Type               string `json:"type"`
	TMA                int64  `json:"tma"`
	AccumulatedSeconds int64  `json:"accumulatedSeconds"`
	UpdatedAt          string `json:"updatedAt,omitempty"`
}

// jsonNumber renders non-finite values as null instead of failing the
// whole export.
type jsonNumber float64

func (n jsonNumber) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// Marshal renders a snapshot as pretty-printed interchange JSON.
func Marshal(snap core.Snapshot) ([]byte, error) {
	doc := document{
		BalanceSeconds:    jsonNumber(snap.BalanceSeconds),
		ShiftStartSeconds: snap.ShiftStartSeconds,
		ShowComplexa:      snap.ShowComplexa,
	}
	for _, rec := range snap.Transactions {
		jt := jsonTransaction{
			Item:       rec.Item,
			Type:       rec.Type,
			TMA:        rec.TMA,
			TimeSpent:  rec.TimeSpent,
			Difference: rec.Difference,
		}
		if rec.HasTime {
			jt.Timestamp = rec.Timestamp.Format(time.RFC3339)
		}
		doc.Transactions = append(doc.Transactions, jt)
	}
	if snap.Lunch != nil {
		doc.Lunch = &jsonLunch{Start: snap.Lunch.Start, End: snap.Lunch.End}
	}
	if len(snap.PausedWork) > 0 {
		doc.PausedWork = make(map[string]jsonPausedWork, len(snap.PausedWork))
		for id, p := range snap.PausedWork {
			jp := jsonPausedWork{
				ID:                 p.ID,
				Item:               p.Item,
				Type:               p.Type,
				TMA:                p.TMA,
				AccumulatedSeconds: p.AccumulatedSeconds,
			}
			if p.HasTime {
				jp.UpdatedAt = p.UpdatedAt.Format(time.RFC3339)
			}
			doc.PausedWork[id] = jp
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return data, nil
}

// ToJSON writes the snapshot to path.
func ToJSON(snap core.Snapshot, path string) error {
	data, err := Marshal(snap)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// Import parses interchange JSON back into a snapshot. Only malformed
// JSON is an error; individual entries that fail validation are
// silently dropped and unparseable scalars fall back to defaults.
func Import(data []byte) (core.Snapshot, error) {
	var raw struct {
		BalanceSeconds    any            `json:"balanceSeconds"`
		Transactions      []any          `json:"transactions"`
		Lunch             map[string]any `json:"lunch"`
		ShiftStartSeconds any            `json:"shiftStartSeconds"`
		ShowComplexa      any            `json:"showComplexa"`
		PausedWork        map[string]any `json:"pausedWork"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return core.Snapshot{}, fmt.Errorf("parse import: %w", err)
	}

	snap := core.Snapshot{
		BalanceSeconds: core.NormalizeBalance(raw.BalanceSeconds),
		Transactions:   core.NormalizeTransactions(raw.Transactions),
		Lunch:          core.NormalizeLunch(raw.Lunch),
	}
	if shift, ok := raw.ShiftStartSeconds.(float64); ok && shift >= 0 {
		snap.ShiftStartSeconds = int64(shift)
	}
	// Complex transactions default to visible unless explicitly off.
	snap.ShowComplexa = true
	if v, ok := raw.ShowComplexa.(bool); ok {
		snap.ShowComplexa = v
	}
	if pw := core.NormalizePausedWork(raw.PausedWork); len(pw) > 0 {
		snap.PausedWork = pw
	}
	return snap, nil
}

// FromJSON loads a snapshot from a file written by ToJSON, or by any
// other producer of the interchange format.
func FromJSON(path string) (core.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read import file: %w", err)
	}
	return Import(data)
}
