package store

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sadopc/ritmo/internal/core"
)

// Snapshot assembles the full analytics input from the database.
func (s *Store) Snapshot() (core.Snapshot, error) {
	var snap core.Snapshot

	balance, err := s.BalanceSeconds()
	if err != nil {
		return snap, err
	}
	snap.BalanceSeconds = balance

	txs, err := s.ListTransactions()
	if err != nil {
		return snap, err
	}
	for _, t := range txs {
		snap.Transactions = append(snap.Transactions, t.Record())
	}

	snap.Lunch, err = s.LunchWindow()
	if err != nil {
		return snap, err
	}
	snap.ShiftStartSeconds, err = s.ShiftStart()
	if err != nil {
		return snap, err
	}
	snap.ShowComplexa, err = s.ShowComplexa()
	if err != nil {
		return snap, err
	}

	paused, err := s.ListPausedWork()
	if err != nil {
		return snap, err
	}
	if len(paused) > 0 {
		snap.PausedWork = make(map[string]core.PausedWorkEntry, len(paused))
		for _, p := range paused {
			snap.PausedWork[p.ID] = p.Entry()
		}
	}
	return snap, nil
}

// ImportSnapshot replaces the whole persisted state atomically. The
// snapshot's transactions are newest first; rows are inserted oldest
// first so the auto-increment order reproduces the sequence.
func (s *Store) ImportSnapshot(snap core.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM paused_work`); err != nil {
		return fmt.Errorf("clear paused work: %w", err)
	}

	for i := len(snap.Transactions) - 1; i >= 0; i-- {
		rec := snap.Transactions[i]
		var ts any
		if rec.HasTime {
			ts = rec.Timestamp.Format(time.RFC3339)
		}
		if _, err := tx.Exec(
			`INSERT INTO transactions (item, type, tma, time_spent, difference, timestamp) VALUES (?, ?, ?, ?, ?, ?)`,
			rec.Item, rec.Type, rec.TMA, rec.TimeSpent, rec.Difference, ts,
		); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
	}

	for _, p := range snap.PausedWork {
		var updated any
		if p.HasTime {
			updated = p.UpdatedAt.Format(time.RFC3339)
		}
		if _, err := tx.Exec(
			`INSERT INTO paused_work (id, item, type, tma, accumulated_seconds, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, p.Item, p.Type, p.TMA, p.AccumulatedSeconds, updated,
		); err != nil {
			return fmt.Errorf("insert paused work %q: %w", p.ID, err)
		}
	}

	set := func(key, value string) {
		if err == nil {
			_, err = tx.Exec(
				`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
				key, value,
			)
		}
	}
	set("balance_seconds", strconv.FormatFloat(snap.BalanceSeconds, 'g', -1, 64))
	start, end := int64(-1), int64(-1)
	if snap.Lunch != nil {
		start, end = snap.Lunch.Start, snap.Lunch.End
	}
	set("lunch_start", strconv.FormatInt(start, 10))
	set("lunch_end", strconv.FormatInt(end, 10))
	set("shift_start", strconv.FormatInt(snap.ShiftStartSeconds, 10))
	set("show_complexa", boolValue(snap.ShowComplexa))
	if err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return tx.Commit()
}
