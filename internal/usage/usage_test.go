package usage

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/voxhall/contentengine/internal/database"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedInput(t *testing.T, db *database.DB) *database.ContentInput {
	t.Helper()
	input := &database.ContentInput{RawText: "text", WordCount: 1}
	if err := db.RecordRun(input, nil); err != nil {
		t.Fatalf("failed to record run: %v", err)
	}
	return input
}

func TestInfoReportsLimitAndReset(t *testing.T) {
	db := openTestDB(t)
	tracker := NewTracker(db, 99)

	info, err := tracker.Info()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Used != 0 {
		t.Errorf("expected 0 used, got %d", info.Used)
	}
	// The seeded setting wins over the fallback.
	if info.Limit != 50 {
		t.Errorf("expected seeded limit 50, got %d", info.Limit)
	}

	resetsAt, err := time.Parse(time.RFC3339, info.ResetsAt)
	if err != nil {
		t.Fatalf("failed to parse ResetsAt: %v", err)
	}
	if resetsAt.Day() != 1 || !resetsAt.After(time.Now().UTC()) {
		t.Errorf("expected first of next month, got %s", info.ResetsAt)
	}
}

func TestCheckAllowsUnderQuota(t *testing.T) {
	db := openTestDB(t)
	tracker := NewTracker(db, 50)

	if err := tracker.Check(); err != nil {
		t.Errorf("expected check to pass with no usage, got %v", err)
	}

	input := seedInput(t, db)
	if err := tracker.Record(input.ID, 49); err != nil {
		t.Fatalf("failed to record usage: %v", err)
	}
	if err := tracker.Check(); err != nil {
		t.Errorf("expected check to pass at 49/50, got %v", err)
	}
}

func TestCheckBlocksAtQuota(t *testing.T) {
	db := openTestDB(t)
	if err := db.SetSetting("monthly_usage_limit", "3"); err != nil {
		t.Fatalf("failed to set limit: %v", err)
	}
	tracker := NewTracker(db, 50)

	input := seedInput(t, db)
	if err := tracker.Record(input.ID, 3); err != nil {
		t.Fatalf("failed to record usage: %v", err)
	}

	err := tracker.Check()
	var quota *QuotaError
	if !errors.As(err, &quota) {
		t.Fatalf("expected QuotaError, got %v", err)
	}
	if quota.Used != 3 || quota.Limit != 3 {
		t.Errorf("expected 3/3, got %d/%d", quota.Used, quota.Limit)
	}
	if !strings.Contains(quota.Error(), "3/3") {
		t.Errorf("expected counts in message, got %q", quota.Error())
	}
}

func TestLimitSettingOverridesFallback(t *testing.T) {
	db := openTestDB(t)
	if err := db.SetSetting("monthly_usage_limit", "10"); err != nil {
		t.Fatalf("failed to set limit: %v", err)
	}
	tracker := NewTracker(db, 50)

	info, err := tracker.Info()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Limit != 10 {
		t.Errorf("expected limit 10 from settings, got %d", info.Limit)
	}
}
