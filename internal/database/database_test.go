package database

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr(s string) *string { return &s }

func TestOpenCreatesSchema(t *testing.T) {
	db := openTestDB(t)

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("failed to read stats: %v", err)
	}
	if stats.ContentInputs != 0 || stats.Outputs != 0 || stats.VoiceProfiles != 0 || stats.UsageRecords != 0 {
		t.Error("expected empty database after open")
	}

	version, err := getSchemaVersion(db.conn)
	if err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if version != latestVersion() {
		t.Errorf("expected schema version %d, got %d", latestVersion(), version)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("first open failed: %v", err)
	}
	input := &ContentInput{RawText: "hello world", WordCount: 2}
	if err := db.RecordRun(input, nil); err != nil {
		t.Fatalf("failed to record run: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer db.Close()

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("failed to read stats: %v", err)
	}
	if stats.ContentInputs != 1 {
		t.Errorf("expected data to survive reopen, got %d inputs", stats.ContentInputs)
	}
}

func TestSettingsSeededAndUpdatable(t *testing.T) {
	db := openTestDB(t)

	limit, err := db.GetSettingInt("monthly_usage_limit", 99)
	if err != nil {
		t.Fatalf("failed to read setting: %v", err)
	}
	if limit != 50 {
		t.Errorf("expected seeded limit 50, got %d", limit)
	}

	tone, err := db.GetSetting("default_tone")
	if err != nil {
		t.Fatalf("failed to read setting: %v", err)
	}
	if tone != "professional" {
		t.Errorf("expected seeded tone 'professional', got %q", tone)
	}

	if err := db.SetSetting("default_tone", "casual"); err != nil {
		t.Fatalf("failed to update setting: %v", err)
	}
	tone, _ = db.GetSetting("default_tone")
	if tone != "casual" {
		t.Errorf("expected updated tone 'casual', got %q", tone)
	}

	missing, err := db.GetSetting("no_such_key")
	if err != nil {
		t.Fatalf("unexpected error for missing key: %v", err)
	}
	if missing != "" {
		t.Errorf("expected empty value for missing key, got %q", missing)
	}

	fallback, err := db.GetSettingInt("no_such_key", 7)
	if err != nil {
		t.Fatalf("unexpected error for missing key: %v", err)
	}
	if fallback != 7 {
		t.Errorf("expected fallback 7, got %d", fallback)
	}
}

func TestGetSettingIntBadValue(t *testing.T) {
	db := openTestDB(t)

	if err := db.SetSetting("monthly_usage_limit", "not-a-number"); err != nil {
		t.Fatalf("failed to set setting: %v", err)
	}
	limit, err := db.GetSettingInt("monthly_usage_limit", 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limit != 42 {
		t.Errorf("expected fallback for non-numeric value, got %d", limit)
	}
}

func TestErrNotFoundWrapping(t *testing.T) {
	db := openTestDB(t)

	_, err := db.GetHistoryDetail("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	err = db.DeleteContentInput("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	_, err = db.GetVoiceStyle("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
