package mock

import (
	"context"

	"github.com/fwojciec/paradas"
)

var _ paradas.SnapshotCache = (*SnapshotCache)(nil)

// SnapshotCache is a mock implementation of paradas.SnapshotCache.
type SnapshotCache struct {
	ReadSnapshotFn  func(ctx context.Context) (*paradas.Snapshot, error)
	WriteSnapshotFn func(ctx context.Context, stops []paradas.Stop) error
	ClearSnapshotFn func(ctx context.Context) error
}

func (c *SnapshotCache) ReadSnapshot(ctx context.Context) (*paradas.Snapshot, error) {
	return c.ReadSnapshotFn(ctx)
}

func (c *SnapshotCache) WriteSnapshot(ctx context.Context, stops []paradas.Stop) error {
	return c.WriteSnapshotFn(ctx, stops)
}

func (c *SnapshotCache) ClearSnapshot(ctx context.Context) error {
	return c.ClearSnapshotFn(ctx)
}
