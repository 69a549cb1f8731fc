package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"
)

const queryTimeout = 2 * time.Second

// SettingsRepository persists settings between CLI invocations. It satisfies
// settings.Store; read and write failures are logged and reads fall back.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Lookup returns the stored value and whether one exists.
func (r *SettingsRepository) Lookup(ctx context.Context, name string) (string, bool, error) {
	query := `SELECT value FROM settings WHERE name = ?`

	var value string
	err := r.db.QueryRowContext(ctx, query, name).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Save inserts or replaces a value.
func (r *SettingsRepository) Save(ctx context.Context, name, value string) error {
	query := `INSERT INTO settings (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query, name, value)
	return err
}

func (r *SettingsRepository) Get(name, fallback string) string {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	value, ok, err := r.Lookup(ctx, name)
	if err != nil {
		slog.Warn("failed to read setting", "name", name, "error", err)
		return fallback
	}
	if !ok {
		return fallback
	}
	return value
}

func (r *SettingsRepository) Set(name, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if err := r.Save(ctx, name, value); err != nil {
		slog.Warn("failed to save setting", "name", name, "error", err)
	}
}
