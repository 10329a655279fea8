package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// SettingsRepo is a small key/value table for app settings such as the
// API credential.
type SettingsRepo struct {
	db *sql.DB
}

// Get returns the value for key. ok is false when the key is not set.
func (r *SettingsRepo) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	query, args := builder().
		Select("value").
		From(entsql.Table(settingsTable.Name)).
		Where(entsql.EQ("key", key)).
		Query()

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value for key.
func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	query, args := builder().
		Insert(settingsTable.Name).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *SettingsRepo) Delete(ctx context.Context, key string) error {
	query, args := builder().
		Delete(settingsTable.Name).
		Where(entsql.EQ("key", key)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}
	return nil
}
