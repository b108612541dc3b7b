package store

import (
	"database/sql"
	"fmt"
	"time"
)

// UpsertPausedWork saves or replaces an interrupted transaction by ID.
func (s *Store) UpsertPausedWork(p PausedWork) error {
	var updated any
	if p.UpdatedAt != nil {
		updated = p.UpdatedAt.Format(time.RFC3339)
	}
	_, err := s.db.Exec(
		`INSERT INTO paused_work (id, item, type, tma, accumulated_seconds, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			item = excluded.item,
			type = excluded.type,
			tma = excluded.tma,
			accumulated_seconds = excluded.accumulated_seconds,
			updated_at = excluded.updated_at`,
		p.ID, p.Item, p.Type, p.TMA, p.AccumulatedSeconds, updated,
	)
	if err != nil {
		return fmt.Errorf("upsert paused work %q: %w", p.ID, err)
	}
	return nil
}

func (s *Store) DeletePausedWork(id string) error {
	_, err := s.db.Exec(`DELETE FROM paused_work WHERE id = ?`, id)
	return err
}

func (s *Store) ListPausedWork() ([]PausedWork, error) {
	rows, err := s.db.Query(
		`SELECT id, item, type, tma, accumulated_seconds, updated_at
		 FROM paused_work ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list paused work: %w", err)
	}
	defer rows.Close()

	var out []PausedWork
	for rows.Next() {
		var p PausedWork
		var updated sql.NullString
		if err := rows.Scan(&p.ID, &p.Item, &p.Type, &p.TMA, &p.AccumulatedSeconds, &updated); err != nil {
			return nil, err
		}
		if updated.Valid {
			if parsed, err := time.Parse(time.RFC3339, updated.String); err == nil {
				local := parsed.Local()
				p.UpdatedAt = &local
			}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
