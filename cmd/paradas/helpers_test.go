package main_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/paradas"
	main "github.com/fwojciec/paradas/cmd/paradas"
	"github.com/fwojciec/paradas/mock"
	"github.com/fwojciec/paradas/search"
	"github.com/stretchr/testify/require"
)

func testStops() []paradas.Stop {
	return []paradas.Stop{
		{ID: 1001, Street1: "18 de Julio", Street2: "Yaguarón", Location: &paradas.Location{Type: "Point", Coordinates: []float64{-56.1913, -34.9058}}},
		{ID: 1002, Street1: "Avda. Italia", Street2: "Comercio"},
		{ID: 1003, Street1: "Bv. Artigas", Street2: "Gral. Flores"},
	}
}

type testEnv struct {
	deps      *main.Dependencies
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	favorites *[]int
}

// newTestEnv wires a started session over in-memory storage.
func newTestEnv(t *testing.T, stops []paradas.Stop, favorites []int, stdin string) *testEnv {
	t.Helper()

	var mu sync.Mutex
	saved := append([]int{}, favorites...)
	storage := &mock.FavoritesStorage{
		LoadFavoritesFn: func(ctx context.Context) ([]int, error) {
			mu.Lock()
			defer mu.Unlock()
			return append([]int{}, saved...), nil
		},
		SaveFavoritesFn: func(ctx context.Context, ids []int) error {
			mu.Lock()
			defer mu.Unlock()
			saved = ids
			return nil
		},
	}
	directory := &search.Directory{
		Cache: &mock.SnapshotCache{
			ReadSnapshotFn: func(ctx context.Context) (*paradas.Snapshot, error) {
				return &paradas.Snapshot{Stops: stops, SavedAt: time.Now()}, nil
			},
			WriteSnapshotFn: func(ctx context.Context, stops []paradas.Stop) error {
				return nil
			},
			ClearSnapshotFn: func(ctx context.Context) error {
				return nil
			},
		},
		Source: &mock.StopSource{
			FetchStopsFn: func(ctx context.Context) ([]paradas.Stop, error) {
				return stops, nil
			},
		},
	}
	session := search.NewSession(directory, search.NewFavorites(storage, nil),
		search.WithDebounceInterval(time.Minute))
	t.Cleanup(session.Close)
	require.NoError(t, session.Start(context.Background()))

	env := &testEnv{
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
		favorites: &saved,
	}
	env.deps = &main.Dependencies{
		Ctx:       context.Background(),
		Stdin:     strings.NewReader(stdin),
		Stdout:    env.stdout,
		Stderr:    env.stderr,
		Directory: directory,
		Session:   session,
	}
	return env
}
