package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/paradas"
)

// Ensure LoggingFavoritesStorage implements paradas.FavoritesStorage.
var _ paradas.FavoritesStorage = (*LoggingFavoritesStorage)(nil)

// LoggingFavoritesStorage wraps a FavoritesStorage with debug logging.
type LoggingFavoritesStorage struct {
	next   paradas.FavoritesStorage
	logger *slog.Logger
}

// NewLoggingFavoritesStorage creates a new LoggingFavoritesStorage.
func NewLoggingFavoritesStorage(next paradas.FavoritesStorage, logger *slog.Logger) *LoggingFavoritesStorage {
	return &LoggingFavoritesStorage{next: next, logger: logger}
}

// LoadFavorites delegates to the wrapped storage and logs the operation.
func (s *LoggingFavoritesStorage) LoadFavorites(ctx context.Context) (ids []int, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("load favorites",
			"count", len(ids),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LoadFavorites(ctx)
}

// SaveFavorites delegates to the wrapped storage and logs the operation.
func (s *LoggingFavoritesStorage) SaveFavorites(ctx context.Context, ids []int) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("save favorites",
			"count", len(ids),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveFavorites(ctx, ids)
}
