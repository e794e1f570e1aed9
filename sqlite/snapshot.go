package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/paradas"
)

// Compile-time interface verification.
var _ paradas.SnapshotCache = (*SnapshotCache)(nil)

// SnapshotCache implements paradas.SnapshotCache using SQLite.
// The snapshot is stored as the JSON array served by the directory service.
type SnapshotCache struct {
	db *DB
}

// NewSnapshotCache creates a new SnapshotCache.
func NewSnapshotCache(db *DB) *SnapshotCache {
	return &SnapshotCache{db: db}
}

// ReadSnapshot returns the cached snapshot, or nil if none is stored or the
// stored data fails its checksum or does not decode.
func (c *SnapshotCache) ReadSnapshot(ctx context.Context) (*paradas.Snapshot, error) {
	e, err := c.db.getEntry(ctx, SnapshotKey)
	if err != nil {
		return nil, err
	}
	if e == nil || !e.Valid() {
		return nil, nil
	}

	var stops []paradas.Stop
	if err := json.Unmarshal([]byte(e.Value), &stops); err != nil {
		return nil, nil
	}
	if stops == nil {
		// A stored "null" is not a directory.
		return nil, nil
	}

	return &paradas.Snapshot{Stops: stops, SavedAt: e.UpdatedAt}, nil
}

// WriteSnapshot replaces the cached snapshot.
func (c *SnapshotCache) WriteSnapshot(ctx context.Context, stops []paradas.Stop) error {
	if stops == nil {
		stops = []paradas.Stop{}
	}
	data, err := json.Marshal(stops)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return c.db.setEntry(ctx, SnapshotKey, string(data))
}

// ClearSnapshot removes the cached snapshot.
func (c *SnapshotCache) ClearSnapshot(ctx context.Context) error {
	return c.db.deleteEntry(ctx, SnapshotKey)
}
