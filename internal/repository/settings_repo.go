package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type SettingsSQLite struct {
	db *sql.DB
}

func NewSettingsSQLite(db *sql.DB) *SettingsSQLite {
	return &SettingsSQLite{db: db}
}

const (
	selectSettingSQL = `SELECT value FROM settings WHERE key = ?`
	upsertSettingSQL = `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value=excluded.value,
			updated_at=excluded.updated_at
	`
)

// Get returns the value and whether the key exists.
func (r *SettingsSQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := r.db.QueryRowContext(ctx, selectSettingSQL, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select setting %q: %w", key, err)
	}
	return v, true, nil
}

func (r *SettingsSQLite) Set(ctx context.Context, key, value string) error {
	if _, err := r.db.ExecContext(ctx, upsertSettingSQL, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert setting %q: %w", key, err)
	}
	return nil
}
