// Package usage enforces the monthly repurposing quota.
package usage

import (
	"fmt"
	"time"

	"github.com/voxhall/contentengine/internal/database"
)

const limitSettingKey = "monthly_usage_limit"

// QuotaError indicates the monthly limit has been reached.
type QuotaError struct {
	Used  int
	Limit int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("usage limit reached: %d/%d repurposings used this month", e.Used, e.Limit)
}

// Tracker reads and records monthly quota consumption. The limit comes from
// the stored setting, falling back to the configured default.
type Tracker struct {
	db            *database.DB
	fallbackLimit int
}

// NewTracker creates a usage tracker.
func NewTracker(db *database.DB, fallbackLimit int) *Tracker {
	return &Tracker{db: db, fallbackLimit: fallbackLimit}
}

// Info returns current month consumption, the limit, and the reset time
// (first of next month, UTC).
func (t *Tracker) Info() (*database.UsageInfo, error) {
	used, err := t.db.GetMonthlyUsed()
	if err != nil {
		return nil, err
	}
	limit, err := t.db.GetSettingInt(limitSettingKey, t.fallbackLimit)
	if err != nil {
		return nil, err
	}
	return &database.UsageInfo{
		Used:     used,
		Limit:    limit,
		ResetsAt: firstOfNextMonth(time.Now().UTC()).Format(time.RFC3339),
	}, nil
}

// Check fails with a QuotaError when the month's quota is exhausted.
// Consulted before any network call is made.
func (t *Tracker) Check() error {
	info, err := t.Info()
	if err != nil {
		return err
	}
	if info.Used >= info.Limit {
		return &QuotaError{Used: info.Used, Limit: info.Limit}
	}
	return nil
}

// Record counts a completed run's formats against the quota.
func (t *Tracker) Record(contentInputID string, formatCount int) error {
	return t.db.InsertUsageRecord(contentInputID, formatCount)
}

func firstOfNextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}
