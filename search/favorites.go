package search

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/fwojciec/paradas"
)

// Favorites is the ordered set of favorite stop IDs. New favorites are
// appended; removal keeps the order of the rest. Every change is persisted
// before Toggle returns.
type Favorites struct {
	storage paradas.FavoritesStorage
	logger  *slog.Logger

	mu  sync.Mutex
	ids []int
}

// NewFavorites returns an empty Favorites backed by storage.
func NewFavorites(storage paradas.FavoritesStorage, logger *slog.Logger) *Favorites {
	if logger == nil {
		logger = discardLogger()
	}
	return &Favorites{storage: storage, logger: logger}
}

// Load replaces the in-memory set with the persisted one. Duplicate IDs
// keep their first position. On a storage failure the set is left empty
// and the error is returned.
func (f *Favorites) Load(ctx context.Context) error {
	ids, err := f.storage.LoadFavorites(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.ids = nil
		return fmt.Errorf("load favorites: %w", err)
	}

	f.ids = make([]int, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(f.ids, id) {
			f.ids = append(f.ids, id)
		}
	}
	return nil
}

// Toggle adds id if absent and removes it otherwise, then persists the set.
// It reports whether id is a favorite afterwards. A persistence failure is
// logged; the in-memory change stands.
func (f *Favorites) Toggle(ctx context.Context, id int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	var member bool
	if i := slices.Index(f.ids, id); i >= 0 {
		f.ids = slices.Delete(f.ids, i, i+1)
	} else {
		f.ids = append(f.ids, id)
		member = true
	}

	if err := f.storage.SaveFavorites(ctx, slices.Clone(f.ids)); err != nil {
		f.logger.Warn("save favorites failed", "id", id, "err", err)
	}
	return member
}

// IDs returns a copy of the favorite IDs in order.
func (f *Favorites) IDs() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, len(f.ids))
	copy(out, f.ids)
	return out
}

// Contains reports whether id is a favorite.
func (f *Favorites) Contains(id int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Contains(f.ids, id)
}
