package store

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/sadopc/ritmo/internal/core"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// BalanceSeconds returns the running balance. The stored text may be
// "NaN" after a bad import; it round-trips so the analytics fallback
// can kick in.
func (s *Store) BalanceSeconds() (float64, error) {
	raw, err := s.GetSetting("balance_seconds")
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse balance %q: %w", raw, err)
	}
	return f, nil
}

func (s *Store) SetBalance(v float64) error {
	return s.SetSetting("balance_seconds", strconv.FormatFloat(v, 'g', -1, 64))
}

// adjustBalance folds delta into the stored balance inside tx.
func adjustBalance(tx *sql.Tx, delta float64) error {
	var raw string
	if err := tx.QueryRow(`SELECT value FROM settings WHERE key = 'balance_seconds'`).Scan(&raw); err != nil {
		return fmt.Errorf("read balance: %w", err)
	}
	current, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("parse balance %q: %w", raw, err)
	}
	next := strconv.FormatFloat(current+delta, 'g', -1, 64)
	if _, err := tx.Exec(`UPDATE settings SET value = ? WHERE key = 'balance_seconds'`, next); err != nil {
		return fmt.Errorf("write balance: %w", err)
	}
	return nil
}

// LunchWindow returns nil when the window is unset (-1 bounds) or
// degenerate (equal bounds).
func (s *Store) LunchWindow() (*core.LunchWindow, error) {
	start, err := s.intSetting("lunch_start")
	if err != nil {
		return nil, err
	}
	end, err := s.intSetting("lunch_end")
	if err != nil {
		return nil, err
	}
	if start < 0 || end < 0 || start == end {
		return nil, nil
	}
	return &core.LunchWindow{Start: start, End: end}, nil
}

func (s *Store) SetLunchWindow(w *core.LunchWindow) error {
	start, end := int64(-1), int64(-1)
	if w != nil {
		start, end = w.Start, w.End
	}
	if err := s.SetSetting("lunch_start", strconv.FormatInt(start, 10)); err != nil {
		return err
	}
	return s.SetSetting("lunch_end", strconv.FormatInt(end, 10))
}

func (s *Store) ShiftStart() (int64, error) {
	return s.intSetting("shift_start")
}

func (s *Store) SetShiftStart(secs int64) error {
	return s.SetSetting("shift_start", strconv.FormatInt(secs, 10))
}

func (s *Store) ShowComplexa() (bool, error) {
	return s.boolSetting("show_complexa")
}

func (s *Store) SetShowComplexa(v bool) error {
	return s.SetSetting("show_complexa", boolValue(v))
}

func (s *Store) ShowLockedAwards() (bool, error) {
	return s.boolSetting("show_locked_awards")
}

func (s *Store) SetShowLockedAwards(v bool) error {
	return s.SetSetting("show_locked_awards", boolValue(v))
}

func (s *Store) DailyGoal() (int, error) {
	n, err := s.intSetting("daily_goal")
	return int(n), err
}

func (s *Store) intSetting(key string) (int64, error) {
	raw, err := s.GetSetting(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse setting %q=%q: %w", key, raw, err)
	}
	return n, nil
}

func (s *Store) boolSetting(key string) (bool, error) {
	raw, err := s.GetSetting(key)
	if err != nil {
		return false, err
	}
	return raw == "1", nil
}

func boolValue(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
