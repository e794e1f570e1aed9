package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Storage keys. They match the keys the web client uses in local storage.
const (
	SnapshotKey  = "paradasCache"
	FavoritesKey = "paradasFavoritas"
)

// entry is a raw storage row.
type entry struct {
	Value     string
	Checksum  string
	UpdatedAt time.Time
}

// Valid reports whether the stored checksum matches the value.
func (e *entry) Valid() bool {
	return e.Checksum == checksum(e.Value)
}

// getEntry returns the entry stored under key, or nil if there is none.
func (db *DB) getEntry(ctx context.Context, key string) (*entry, error) {
	var e entry
	var updatedAt string

	err := db.QueryRowContext(ctx, `
		SELECT value, checksum, updated_at
		FROM storage
		WHERE key = ?
	`, key).Scan(&e.Value, &e.Checksum, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	e.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at")
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// setEntry stores value under key, replacing any previous value.
func (db *DB) setEntry(ctx context.Context, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO storage (key, value, checksum, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			checksum = excluded.checksum,
			updated_at = excluded.updated_at
	`, key, value, checksum(value), time.Now().UTC().Format(time.RFC3339))

	return err
}

// deleteEntry removes key. Removing a missing key is not an error.
func (db *DB) deleteEntry(ctx context.Context, key string) error {
	_, err := db.ExecContext(ctx, "DELETE FROM storage WHERE key = ?", key)
	return err
}
