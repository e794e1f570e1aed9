package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/paradas"
)

// Compile-time interface verification.
var _ paradas.FavoritesStorage = (*FavoritesStorage)(nil)

// FavoritesStorage implements paradas.FavoritesStorage using SQLite.
// IDs are stored as a JSON array in their saved order.
type FavoritesStorage struct {
	db *DB
}

// NewFavoritesStorage creates a new FavoritesStorage.
func NewFavoritesStorage(db *DB) *FavoritesStorage {
	return &FavoritesStorage{db: db}
}

// LoadFavorites returns the stored favorite IDs.
func (s *FavoritesStorage) LoadFavorites(ctx context.Context) ([]int, error) {
	e, err := s.db.getEntry(ctx, FavoritesKey)
	if err != nil {
		return nil, err
	}
	if e == nil || !e.Valid() {
		return []int{}, nil
	}

	var ids []int
	if err := json.Unmarshal([]byte(e.Value), &ids); err != nil || ids == nil {
		return []int{}, nil
	}
	return ids, nil
}

// SaveFavorites replaces the stored favorite IDs.
func (s *FavoritesStorage) SaveFavorites(ctx context.Context, ids []int) error {
	if ids == nil {
		ids = []int{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	return s.db.setEntry(ctx, FavoritesKey, string(data))
}
