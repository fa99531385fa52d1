package database

import (
	"database/sql"
	"fmt"
	"strconv"
)

// GetSetting reads an app setting, returning "" when absent.
func (db *DB) GetSetting(key string) (string, error) {
	var value string
	err := db.conn.QueryRow("SELECT value FROM app_settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting upserts an app setting.
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(
		`INSERT INTO app_settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing setting %q: %w", key, err)
	}
	return nil
}

// GetSettingInt reads a numeric setting, falling back when absent or invalid.
func (db *DB) GetSettingInt(key string, fallback int) (int, error) {
	value, err := db.GetSetting(key)
	if err != nil {
		return 0, err
	}
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback, nil
	}
	return n, nil
}
