package mock

import (
	"context"

	"github.com/fwojciec/paradas"
)

var _ paradas.FavoritesStorage = (*FavoritesStorage)(nil)

// FavoritesStorage is a mock implementation of paradas.FavoritesStorage.
type FavoritesStorage struct {
	LoadFavoritesFn func(ctx context.Context) ([]int, error)
	SaveFavoritesFn func(ctx context.Context, ids []int) error
}

func (s *FavoritesStorage) LoadFavorites(ctx context.Context) ([]int, error) {
	return s.LoadFavoritesFn(ctx)
}

func (s *FavoritesStorage) SaveFavorites(ctx context.Context, ids []int) error {
	return s.SaveFavoritesFn(ctx, ids)
}
