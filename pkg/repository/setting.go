package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// setting keys written by the crawler
const (
	SettingLastCrawl      = "last_crawl"
	SettingLastCrawlError = "last_crawl_error"
)

// SettingRepository handles setting-related database operations
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves a setting value, empty if not set
func (r *SettingRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

// SetSetting stores a setting value
func (r *SettingRepository) SetSetting(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	return withLockRetry(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, query, key, value, time.Now().Unix()); err != nil {
			return fmt.Errorf("set setting: %w", err)
		}
		return nil
	})
}

// GetTime retrieves a setting stored with SetTime, zero time if not set
func (r *SettingRepository) GetTime(ctx context.Context, key string) (time.Time, error) {
	value, err := r.GetSetting(ctx, key)
	if err != nil || value == "" {
		return time.Time{}, err
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse setting %s: %w", key, err)
	}
	return ts, nil
}

// SetTime stores a time setting
func (r *SettingRepository) SetTime(ctx context.Context, key string, ts time.Time) error {
	return r.SetSetting(ctx, key, ts.UTC().Format(time.RFC3339))
}
