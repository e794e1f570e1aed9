// Package slog provides logging decorators for paradas services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/paradas"
)

// Ensure LoggingStopSource implements paradas.StopSource.
var _ paradas.StopSource = (*LoggingStopSource)(nil)

// LoggingStopSource wraps a StopSource with logging of every fetch.
type LoggingStopSource struct {
	next   paradas.StopSource
	logger *slog.Logger
}

// NewLoggingStopSource creates a new LoggingStopSource.
func NewLoggingStopSource(next paradas.StopSource, logger *slog.Logger) *LoggingStopSource {
	return &LoggingStopSource{next: next, logger: logger}
}

// FetchStops delegates to the wrapped source and logs the operation.
func (s *LoggingStopSource) FetchStops(ctx context.Context) (stops []paradas.Stop, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "fetch stops",
			"count", len(stops),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchStops(ctx)
}
