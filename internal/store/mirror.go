package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	intconfig "railbook/internal/config"
)

// Mirror is tier 2: a best-effort secondary copy in MySQL. Records are kept
// as one JSON payload per row keyed by record id, so a single table shape
// serves every collection.
type Mirror[T any] struct {
	DB    *sql.DB
	Table string
	Codec Codec[T]

	ensureOnce sync.Once
	ensureErr  error
}

func (m *Mirror[T]) Name() string { return "mirror" }

func (m *Mirror[T]) db() *sql.DB {
	if m.DB != nil {
		return m.DB
	}
	return intconfig.DB
}

func (m *Mirror[T]) ensureTable(ctx context.Context, db *sql.DB) error {
	m.ensureOnce.Do(func() {
		ddl := `
CREATE TABLE IF NOT EXISTS ` + m.Table + ` (
	record_id VARCHAR(64) PRIMARY KEY,
	payload LONGTEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	KEY idx_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
		_, m.ensureErr = db.ExecContext(ctx, ddl)
	})
	return m.ensureErr
}

// List returns all mirrored records, newest-first.
func (m *Mirror[T]) List(ctx context.Context) ([]T, error) {
	db := m.db()
	if db == nil {
		return nil, fmt.Errorf("mirror db not available")
	}
	if err := m.ensureTable(ctx, db); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT payload FROM `+m.Table+` ORDER BY created_at DESC, record_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var rec T
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Insert upserts the record by its key.
func (m *Mirror[T]) Insert(ctx context.Context, rec T) (T, error) {
	db := m.db()
	if db == nil {
		return rec, fmt.Errorf("mirror db not available")
	}
	if err := m.ensureTable(ctx, db); err != nil {
		return rec, err
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return rec, err
	}
	created := m.Codec.Created(rec)
	if created.IsZero() {
		created = time.Now()
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO `+m.Table+` (record_id, payload, created_at, updated_at)
		VALUES (?,?,?,?)
		ON DUPLICATE KEY UPDATE payload=VALUES(payload), updated_at=VALUES(updated_at)`,
		m.Codec.Key(rec), string(payload), created, time.Now(),
	)
	return rec, err
}

// UpdateStatus loads the mirrored payload, applies the transition and writes
// it back. Missing rows are an error for the cascade to log and skip.
func (m *Mirror[T]) UpdateStatus(ctx context.Context, id, status, notes string) (T, error) {
	var rec T
	db := m.db()
	if db == nil {
		return rec, fmt.Errorf("mirror db not available")
	}
	if err := m.ensureTable(ctx, db); err != nil {
		return rec, err
	}

	var payload string
	err := db.QueryRowContext(ctx, `SELECT payload FROM `+m.Table+` WHERE record_id=? LIMIT 1`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, fmt.Errorf("record %s not mirrored", id)
		}
		return rec, err
	}
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return rec, err
	}

	now := time.Now()
	m.Codec.SetStatus(&rec, status, notes, now)
	updated, err := json.Marshal(rec)
	if err != nil {
		return rec, err
	}
	_, err = db.ExecContext(ctx, `UPDATE `+m.Table+` SET payload=?, updated_at=? WHERE record_id=?`, string(updated), now, id)
	return rec, err
}
