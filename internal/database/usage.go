package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GetMonthlyUsed sums format counts recorded since the start of the current
// calendar month (UTC).
func (db *DB) GetMonthlyUsed() (int, error) {
	monthStart := startOfMonth(time.Now().UTC())

	var used int
	err := db.conn.QueryRow(
		"SELECT COALESCE(SUM(format_count), 0) FROM usage_records WHERE created_at >= ?",
		monthStart.Format(time.RFC3339),
	).Scan(&used)
	if err != nil {
		return 0, fmt.Errorf("querying usage: %w", err)
	}
	return used, nil
}

// InsertUsageRecord records one run's format count against the quota.
func (db *DB) InsertUsageRecord(contentInputID string, formatCount int) error {
	_, err := db.conn.Exec(
		"INSERT INTO usage_records (id, content_input_id, format_count, created_at) VALUES (?, ?, ?, ?)",
		uuid.NewString(), contentInputID, formatCount, now(),
	)
	if err != nil {
		return fmt.Errorf("recording usage: %w", err)
	}
	return nil
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
