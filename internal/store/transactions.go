package store

import (
	"database/sql"
	"fmt"
	"time"
)

// AddTransaction inserts a transaction and folds its difference into the
// running balance in the same database transaction.
func (s *Store) AddTransaction(t Transaction) (*Transaction, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var ts any
	if t.Timestamp != nil {
		ts = t.Timestamp.Format(time.RFC3339)
	}
	res, err := tx.Exec(
		`INSERT INTO transactions (item, type, tma, time_spent, difference, timestamp) VALUES (?, ?, ?, ?, ?, ?)`,
		t.Item, t.Type, t.TMA, t.TimeSpent, t.Difference, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	if err := adjustBalance(tx, float64(t.Difference)); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	id, _ := res.LastInsertId()
	return s.GetTransaction(id)
}

func (s *Store) GetTransaction(id int64) (*Transaction, error) {
	row := s.db.QueryRow(
		`SELECT id, item, type, tma, time_spent, difference, timestamp, created_at
		 FROM transactions WHERE id = ?`, id,
	)
	t, err := scanTransaction(row)
	if err != nil {
		return nil, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return t, nil
}

// ListTransactions returns the day's transactions newest first.
func (s *Store) ListTransactions() ([]Transaction, error) {
	rows, err := s.db.Query(
		`SELECT id, item, type, tma, time_spent, difference, timestamp, created_at
		 FROM transactions ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// DeleteTransaction removes a transaction and backs its difference out of
// the running balance.
func (s *Store) DeleteTransaction(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var diff int64
	if err := tx.QueryRow(`SELECT difference FROM transactions WHERE id = ?`, id).Scan(&diff); err != nil {
		return fmt.Errorf("get transaction %d: %w", id, err)
	}
	if _, err := tx.Exec(`DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	if err := adjustBalance(tx, -float64(diff)); err != nil {
		return err
	}
	return tx.Commit()
}

// ClearTransactions wipes the day. The balance is left alone; callers
// reset it explicitly when starting over.
func (s *Store) ClearTransactions() error {
	_, err := s.db.Exec(`DELETE FROM transactions`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*Transaction, error) {
	t := &Transaction{}
	var ts sql.NullString
	var createdAt string
	if err := row.Scan(&t.ID, &t.Item, &t.Type, &t.TMA, &t.TimeSpent, &t.Difference, &ts, &createdAt); err != nil {
		return nil, err
	}
	if ts.Valid {
		if parsed, err := time.Parse(time.RFC3339, ts.String); err == nil {
			local := parsed.Local()
			t.Timestamp = &local
		}
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return t, nil
}
