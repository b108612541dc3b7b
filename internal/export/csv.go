package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/ritmo/internal/core"
)

// ToCSV writes the day's transactions, newest first, for spreadsheets.
func ToCSV(snap core.Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Item", "Type", "Target (s)", "Spent (s)", "Difference (s)", "Difference", "Timestamp"}); err != nil {
		return err
	}

	for _, rec := range snap.Transactions {
		ts := ""
		if rec.HasTime {
			ts = rec.Timestamp.Format(time.RFC3339)
		}
		row := []string{
			rec.Item,
			rec.Type,
			fmt.Sprintf("%d", rec.TMA),
			fmt.Sprintf("%d", rec.TimeSpent),
			fmt.Sprintf("%d", rec.Difference),
			core.FormatSigned(rec.Difference),
			ts,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
