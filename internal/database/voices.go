package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// InsertVoiceProfile stores a brand voice profile with its source samples.
// The first profile ever stored becomes the default automatically.
func (db *DB) InsertVoiceProfile(profile *BrandVoiceProfile, samples []string) error {
	styleJSON, err := json.Marshal(profile.Style)
	if err != nil {
		return fmt.Errorf("encoding style attributes: %w", err)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM brand_voice_profiles").Scan(&count); err != nil {
		return err
	}
	profile.IsDefault = count == 0

	profile.ID = uuid.NewString()
	profile.CreatedAt = now()
	profile.UpdatedAt = profile.CreatedAt

	_, err = tx.Exec(
		`INSERT INTO brand_voice_profiles (id, name, description, style_attributes_json, is_default, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		profile.ID, profile.Name, profile.Description, string(styleJSON),
		boolToInt(profile.IsDefault), profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting voice profile: %w", err)
	}

	for _, sample := range samples {
		_, err = tx.Exec(
			"INSERT INTO brand_voice_samples (id, profile_id, sample_text, created_at) VALUES (?, ?, ?, ?)",
			uuid.NewString(), profile.ID, sample, now(),
		)
		if err != nil {
			return fmt.Errorf("inserting voice sample: %w", err)
		}
	}

	return tx.Commit()
}

// GetVoiceProfiles returns all profiles, default first then by name.
func (db *DB) GetVoiceProfiles() ([]BrandVoiceProfile, error) {
	rows, err := db.conn.Query(
		`SELECT id, name, description, style_attributes_json, is_default, created_at, updated_at
		FROM brand_voice_profiles ORDER BY is_default DESC, name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []BrandVoiceProfile
	for rows.Next() {
		p, err := scanVoiceProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// GetVoiceStyle returns the style attributes for a profile id.
func (db *DB) GetVoiceStyle(id string) (*StyleAttributes, error) {
	var styleJSON string
	err := db.conn.QueryRow(
		"SELECT style_attributes_json FROM brand_voice_profiles WHERE id = ?", id,
	).Scan(&styleJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("voice profile %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return decodeStyle(styleJSON)
}

// GetDefaultVoiceStyle returns the default profile's style, or nil when no
// profile is marked default.
func (db *DB) GetDefaultVoiceStyle() (*StyleAttributes, error) {
	var styleJSON string
	err := db.conn.QueryRow(
		"SELECT style_attributes_json FROM brand_voice_profiles WHERE is_default = 1",
	).Scan(&styleJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeStyle(styleJSON)
}

// SetDefaultVoice marks a profile as the single default.
func (db *DB) SetDefaultVoice(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM brand_voice_profiles WHERE id = ?", id).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("voice profile %q: %w", id, ErrNotFound)
	}

	if _, err := tx.Exec("UPDATE brand_voice_profiles SET is_default = 0"); err != nil {
		return err
	}
	if _, err := tx.Exec(
		"UPDATE brand_voice_profiles SET is_default = 1, updated_at = ? WHERE id = ?", now(), id,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteVoiceProfile removes a profile and its samples.
func (db *DB) DeleteVoiceProfile(id string) error {
	result, err := db.conn.Exec("DELETE FROM brand_voice_profiles WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("voice profile %q: %w", id, ErrNotFound)
	}
	_, err = db.conn.Exec("DELETE FROM brand_voice_samples WHERE profile_id = ?", id)
	return err
}

func scanVoiceProfile(rows *sql.Rows) (*BrandVoiceProfile, error) {
	var p BrandVoiceProfile
	var styleJSON string
	var isDefault int
	if err := rows.Scan(&p.ID, &p.Name, &p.Description, &styleJSON, &isDefault, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scanning voice profile: %w", err)
	}
	style, err := decodeStyle(styleJSON)
	if err != nil {
		return nil, err
	}
	p.Style = *style
	p.IsDefault = isDefault != 0
	return &p, nil
}

func decodeStyle(styleJSON string) (*StyleAttributes, error) {
	var style StyleAttributes
	if err := json.Unmarshal([]byte(styleJSON), &style); err != nil {
		return nil, fmt.Errorf("decoding style attributes: %w", err)
	}
	return &style, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
