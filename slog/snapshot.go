package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/paradas"
)

// Ensure LoggingSnapshotCache implements paradas.SnapshotCache.
var _ paradas.SnapshotCache = (*LoggingSnapshotCache)(nil)

// LoggingSnapshotCache wraps a SnapshotCache with debug logging.
type LoggingSnapshotCache struct {
	next   paradas.SnapshotCache
	logger *slog.Logger
}

// NewLoggingSnapshotCache creates a new LoggingSnapshotCache.
func NewLoggingSnapshotCache(next paradas.SnapshotCache, logger *slog.Logger) *LoggingSnapshotCache {
	return &LoggingSnapshotCache{next: next, logger: logger}
}

// ReadSnapshot delegates to the wrapped cache and logs hit or miss.
func (c *LoggingSnapshotCache) ReadSnapshot(ctx context.Context) (snap *paradas.Snapshot, err error) {
	defer func(begin time.Time) {
		count := 0
		if snap != nil {
			count = len(snap.Stops)
		}
		c.logger.Debug("read snapshot",
			"hit", snap != nil,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.ReadSnapshot(ctx)
}

// WriteSnapshot delegates to the wrapped cache and logs the operation.
func (c *LoggingSnapshotCache) WriteSnapshot(ctx context.Context, stops []paradas.Stop) (err error) {
	defer func(begin time.Time) {
		c.logger.Debug("write snapshot",
			"count", len(stops),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.WriteSnapshot(ctx, stops)
}

// ClearSnapshot delegates to the wrapped cache and logs the operation.
func (c *LoggingSnapshotCache) ClearSnapshot(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		c.logger.Info("clear snapshot",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.ClearSnapshot(ctx)
}
