package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecordRun persists a content input and its outputs in a single transaction.
// IDs and timestamps are assigned here; the structs are updated in place.
// This is the only durable write of a repurposing run.
func (db *DB) RecordRun(input *ContentInput, outputs []*RepurposedOutput) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin run record: %w", err)
	}
	defer tx.Rollback()

	input.ID = uuid.NewString()
	input.CreatedAt = now()
	_, err = tx.Exec(
		`INSERT INTO content_inputs (id, source_url, raw_text, title, word_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		input.ID, input.SourceURL, input.RawText, input.Title, input.WordCount, input.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting content input: %w", err)
	}

	for _, out := range outputs {
		out.ID = uuid.NewString()
		out.ContentInputID = input.ID
		out.CreatedAt = now()
		_, err = tx.Exec(
			`INSERT INTO repurposed_outputs (id, content_input_id, format, output_text, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			out.ID, out.ContentInputID, out.Format, out.OutputText, out.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting output (%s): %w", out.Format, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run record: %w", err)
	}
	return nil
}

// GetHistoryPage returns one page of content inputs, newest first.
func (db *DB) GetHistoryPage(page, pageSize int) (*HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var total int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM content_inputs").Scan(&total); err != nil {
		return nil, fmt.Errorf("counting content inputs: %w", err)
	}

	rows, err := db.conn.Query(
		`SELECT ci.id, ci.title, ci.word_count, ci.created_at,
		(SELECT COUNT(*) FROM repurposed_outputs WHERE content_input_id = ci.id)
		FROM content_inputs ci
		ORDER BY ci.created_at DESC, ci.rowid DESC
		LIMIT ? OFFSET ?`, pageSize, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []HistoryItem{}
	for rows.Next() {
		var item HistoryItem
		if err := rows.Scan(&item.ID, &item.Title, &item.WordCount, &item.CreatedAt, &item.FormatCount); err != nil {
			// A row that fails to scan is corruption worth knowing about,
			// not something to silently skip.
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &HistoryPage{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

// GetHistoryDetail returns a content input and all its outputs.
func (db *DB) GetHistoryDetail(id string) (*HistoryDetail, error) {
	row := db.conn.QueryRow(
		`SELECT id, source_url, raw_text, title, word_count, created_at
		FROM content_inputs WHERE id = ?`, id,
	)

	var input ContentInput
	err := row.Scan(&input.ID, &input.SourceURL, &input.RawText, &input.Title, &input.WordCount, &input.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("content input %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.conn.Query(
		`SELECT id, content_input_id, format, output_text, created_at
		FROM repurposed_outputs WHERE content_input_id = ? ORDER BY rowid ASC`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outputs []RepurposedOutput
	for rows.Next() {
		var out RepurposedOutput
		if err := rows.Scan(&out.ID, &out.ContentInputID, &out.Format, &out.OutputText, &out.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning output row: %w", err)
		}
		outputs = append(outputs, out)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &HistoryDetail{Input: input, Outputs: outputs}, nil
}

// DeleteContentInput removes a content input, its outputs, and usage records.
func (db *DB) DeleteContentInput(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Explicit deletes so this works even without foreign_keys=ON.
	if _, err := tx.Exec("DELETE FROM repurposed_outputs WHERE content_input_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM usage_records WHERE content_input_id = ?", id); err != nil {
		return err
	}

	result, err := tx.Exec("DELETE FROM content_inputs WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("content input %q: %w", id, ErrNotFound)
	}

	return tx.Commit()
}

// GetStats returns aggregate counts.
func (db *DB) GetStats() (*Stats, error) {
	stats := &Stats{}
	queries := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM content_inputs", &stats.ContentInputs},
		{"SELECT COUNT(*) FROM repurposed_outputs", &stats.Outputs},
		{"SELECT COUNT(*) FROM brand_voice_profiles", &stats.VoiceProfiles},
		{"SELECT COUNT(*) FROM usage_records", &stats.UsageRecords},
	}
	for _, q := range queries {
		if err := db.conn.QueryRow(q.query).Scan(q.dest); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// now returns the current UTC time in RFC 3339, the timestamp format for
// all caller-assigned columns.
func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
