package store

import (
	"time"

	"github.com/sadopc/ritmo/internal/core"
)

// Transaction is a stored row. Timestamp is nil when the transaction
// was logged without a clock time.
type Transaction struct {
	ID         int64
	Item       string
	Type       string
	TMA        int64
	TimeSpent  int64
	Difference int64
	Timestamp  *time.Time
	CreatedAt  time.Time
}

// Record converts the row to the analytics representation.
func (t Transaction) Record() core.TransactionRecord {
	rec := core.TransactionRecord{
		Item:       t.Item,
		Type:       t.Type,
		TMA:        t.TMA,
		TimeSpent:  t.TimeSpent,
		Difference: t.Difference,
	}
	if t.Timestamp != nil {
		rec.Timestamp = *t.Timestamp
		rec.HasTime = true
	}
	return rec
}

// PausedWork is a stored interrupted transaction.
type PausedWork struct {
	ID                 string
	Item               string
	Type               string
	TMA                int64
	AccumulatedSeconds int64
	UpdatedAt          *time.Time
}

// Entry converts the row to the analytics representation.
func (p PausedWork) Entry() core.PausedWorkEntry {
	e := core.PausedWorkEntry{
		ID:                 p.ID,
		Item:               p.Item,
		Type:               p.Type,
		TMA:                p.TMA,
		AccumulatedSeconds: p.AccumulatedSeconds,
	}
	if p.UpdatedAt != nil {
		e.UpdatedAt = *p.UpdatedAt
		e.HasTime = true
	}
	return e
}

type Setting struct {
	Key   string
	Value string
}
