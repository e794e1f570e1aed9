package search_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/paradas"
	"github.com/fwojciec/paradas/mock"
	"github.com/fwojciec/paradas/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStops() []paradas.Stop {
	return []paradas.Stop{
		{ID: 1001, Street1: "18 de Julio", Street2: "Yaguarón"},
		{ID: 1002, Street1: "Avda. Italia", Street2: "Comercio"},
		{ID: 1003, Street1: "Bv. Artigas", Street2: "Gral. Flores"},
	}
}

// memoryCache is a SnapshotCache that keeps the last written stops.
func memoryCache(initial *paradas.Snapshot) *mock.SnapshotCache {
	var mu sync.Mutex
	snap := initial
	return &mock.SnapshotCache{
		ReadSnapshotFn: func(ctx context.Context) (*paradas.Snapshot, error) {
			mu.Lock()
			defer mu.Unlock()
			return snap, nil
		},
		WriteSnapshotFn: func(ctx context.Context, stops []paradas.Stop) error {
			mu.Lock()
			defer mu.Unlock()
			snap = &paradas.Snapshot{Stops: stops, SavedAt: time.Now()}
			return nil
		},
		ClearSnapshotFn: func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			snap = nil
			return nil
		},
	}
}

func TestDirectory_Catalog(t *testing.T) {
	t.Parallel()

	t.Run("is empty before load", func(t *testing.T) {
		t.Parallel()

		d := &search.Directory{}
		c := d.Catalog()

		require.NotNil(t, c)
		assert.Equal(t, 0, c.Len())
		assert.Equal(t, uint64(0), c.Generation)
		assert.Empty(t, paradas.Query("julio", c.Index, c.Stops, 0))
	})
}

func TestDirectory_Load(t *testing.T) {
	t.Parallel()

	t.Run("uses cached snapshot without fetching", func(t *testing.T) {
		t.Parallel()

		savedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		d := &search.Directory{
			Cache: memoryCache(&paradas.Snapshot{Stops: sampleStops(), SavedAt: savedAt}),
			Source: &mock.StopSource{
				FetchStopsFn: func(ctx context.Context) ([]paradas.Stop, error) {
					t.Fatal("unexpected fetch")
					return nil, nil
				},
			},
		}

		c := d.Load(context.Background())

		assert.Equal(t, 3, c.Len())
		assert.Equal(t, uint64(1), c.Generation)
		assert.Equal(t, savedAt, c.SavedAt)
		assert.Same(t, c, d.Catalog())
	})

	t.Run("fetches and caches on miss", func(t *testing.T) {
		t.Parallel()

		cache := memoryCache(nil)
		d := &search.Directory{
			Cache: cache,
			Source: &mock.StopSource{
				FetchStopsFn: func(ctx context.Context) ([]paradas.Stop, error) {
					return sampleStops(), nil
				},
			},
		}

		c := d.Load(context.Background())

		assert.Equal(t, 3, c.Len())
		snap, err := cache.ReadSnapshot(context.Background())
		require.NoError(t, err)
		require.NotNil(t, snap)
		assert.Equal(t, sampleStops(), snap.Stops)
	})

	t.Run("treats cache read error as miss", func(t *testing.T) {
		t.Parallel()

		d := &search.Directory{
			Cache: &mock.SnapshotCache{
				ReadSnapshotFn: func(ctx context.Context) (*paradas.Snapshot, error) {
					return nil, errors.New("disk error")
				},
				WriteSnapshotFn: func(ctx context.Context, stops []paradas.Stop) error {
					return nil
				},
			},
			Source: &mock.StopSource{
				FetchStopsFn: func(ctx context.Context) ([]paradas.Stop, error) {
					return sampleStops(), nil
				},
			},
		}

		assert.Equal(t, 3, d.Load(context.Background()).Len())
	})

	t.Run("exposes fetched stops when cache write fails", func(t *testing.T) {
		t.Parallel()

		d := &search.Directory{
			Cache: &mock.SnapshotCache{
				ReadSnapshotFn: func(ctx context.Context) (*paradas.Snapshot, error) {
					return nil, nil
				},
				WriteSnapshotFn: func(ctx context.Context, stops []paradas.Stop) error {
					return errors.New("disk full")
				},
			},
			Source: &mock.StopSource{
				FetchStopsFn: func(ctx context.Context) ([]paradas.Stop, error) {
					return sampleStops(), nil
				},
			},
		}

		c := d.Load(context.Background())

		assert.Equal(t, 3, c.Len())
		assert.Equal(t, []paradas.Stop{sampleStops()[0]}, paradas.Query("18 de julio", c.Index, c.Stops, 0))
	})

	t.Run("installs empty directory when cache and network fail", func(t *testing.T) {
		t.Parallel()

		d := &search.Directory{
			Cache: memoryCache(nil),
			Source: &mock.StopSource{
				FetchStopsFn: func(ctx context.Context) ([]paradas.Stop, error) {
					return nil, paradas.Errorf(paradas.ENETWORK, "HTTP 500")
				},
			},
		}

		c := d.Load(context.Background())

		assert.Equal(t, 0, c.Len())
		assert.Equal(t, uint64(1), c.Generation)
		assert.Empty(t, paradas.Query("any", c.Index, c.Stops, 0))
	})

	t.Run("drops duplicate ids keeping the first", func(t *testing.T) {
		t.Parallel()

		stops := []paradas.Stop{
			{ID: 7, Street1: "Colonia", Street2: "Ejido"},
			{ID: 7, Street1: "Mercedes", Street2: "Ejido"},
			{ID: 8, Street1: "Uruguay", Street2: "Ejido"},
		}
		d := &search.Directory{Cache: memoryCache(&paradas.Snapshot{Stops: stops})}

		c := d.Load(context.Background())

		require.Equal(t, 2, c.Len())
		stop, ok := c.FindStop(7)
		require.True(t, ok)
		assert.Equal(t, "Colonia", stop.Street1)
		assert.Empty(t, paradas.Query("mercedes", c.Index, c.Stops, 0))
	})
}

func TestDirectory_LoadAfterRefresh(t *testing.T) {
	t.Parallel()

	t.Run("failed fetch keeps directory installed by refresh", func(t *testing.T) {
		t.Parallel()

		loadStarted := make(chan struct{})
		releaseLoad := make(chan struct{})
		var calls int
		var mu sync.Mutex
		d := &search.Directory{
			Cache: memoryCache(nil),
			Source: &mock.StopSource{
				FetchStopsFn: func(ctx context.Context) ([]paradas.Stop, error) {
					mu.Lock()
					calls++
					n := calls
					mu.Unlock()
					if n == 1 {
						close(loadStarted)
						<-releaseLoad
						return nil, paradas.Errorf(paradas.ENETWORK, "timeout")
					}
					return sampleStops(), nil
				},
			},
		}

		done := make(chan *search.Catalog)
		go func() { done <- d.Load(context.Background()) }()
		<-loadStarted

		refreshed, err := d.Refresh(context.Background())
		require.NoError(t, err)
		close(releaseLoad)
		loaded := <-done

		assert.Same(t, refreshed, loaded)
		assert.Equal(t, 3, d.Catalog().Len())
		assert.Equal(t, uint64(1), d.Catalog().Generation)
	})

	t.Run("slow cache read keeps directory installed by refresh", func(t *testing.T) {
		t.Parallel()

		readStarted := make(chan struct{})
		releaseRead := make(chan struct{})
		d := &search.Directory{
			Cache: &mock.SnapshotCache{
				ReadSnapshotFn: func(ctx context.Context) (*paradas.Snapshot, error) {
					close(readStarted)
					<-releaseRead
					return &paradas.Snapshot{Stops: sampleStops()[:1]}, nil
				},
				WriteSnapshotFn: func(ctx context.Context, stops []paradas.Stop) error {
					return nil
				},
			},
			Source: &mock.StopSource{
				FetchStopsFn: func(ctx context.Context) ([]paradas.Stop, error) {
					return sampleStops(), nil
				},
			},
		}

		done := make(chan *search.Catalog)
		go func() { done <- d.Load(context.Background()) }()
		<-readStarted

		refreshed, err := d.Refresh(context.Background())
		require.NoError(t, err)
		close(releaseRead)

		assert.Same(t, refreshed, <-done)
		assert.Equal(t, 3, d.Catalog().Len())
	})
}

func TestDirectory_Refresh(t *testing.T) {
	t.Parallel()

	t.Run("replaces catalog and cache", func(t *testing.T) {
		t.Parallel()

		cache := memoryCache(&paradas.Snapshot{Stops: sampleStops()[:1]})
		d := &search.Directory{
			Cache: cache,
			Source: &mock.StopSource{
				FetchStopsFn: func(ctx context.Context) ([]paradas.Stop, error) {
					return sampleStops(), nil
				},
			},
		}
		first := d.Load(context.Background())
		require.Equal(t, 1, first.Len())

		c, err := d.Refresh(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, c.Len())
		assert.Equal(t, first.Generation+1, c.Generation)
		assert.Same(t, c, d.Catalog())
		snap, err := cache.ReadSnapshot(context.Background())
		require.NoError(t, err)
		assert.Len(t, snap.Stops, 3)

		// The previously handed out catalog is untouched.
		assert.Equal(t, 1, first.Len())
		assert.Len(t, paradas.Query("italia", first.Index, first.Stops, 0), 0)
	})

	t.Run("keeps catalog on failure", func(t *testing.T) {
		t.Parallel()

		d := &search.Directory{
			Cache: memoryCache(&paradas.Snapshot{Stops: sampleStops()}),
			Source: &mock.StopSource{
				FetchStopsFn: func(ctx context.Context) ([]paradas.Stop, error) {
					return nil, paradas.Errorf(paradas.ENETWORK, "connection refused")
				},
			},
		}
		first := d.Load(context.Background())

		c, err := d.Refresh(context.Background())

		require.Error(t, err)
		assert.Equal(t, paradas.ENETWORK, paradas.ErrorCode(err))
		assert.Same(t, first, c)
		assert.Same(t, first, d.Catalog())
	})

	t.Run("discards a response older than the installed one", func(t *testing.T) {
		t.Parallel()

		slowStarted := make(chan struct{})
		releaseSlow := make(chan struct{})
		var calls int
		var mu sync.Mutex
		d := &search.Directory{
			Cache: memoryCache(nil),
			Source: &mock.StopSource{
				FetchStopsFn: func(ctx context.Context) ([]paradas.Stop, error) {
					mu.Lock()
					calls++
					n := calls
					mu.Unlock()
					if n == 1 {
						close(slowStarted)
						<-releaseSlow
						return []paradas.Stop{{ID: 1, Street1: "Vieja", Street2: "Calle"}}, nil
					}
					return []paradas.Stop{{ID: 2, Street1: "Nueva", Street2: "Calle"}}, nil
				},
			},
		}

		done := make(chan *search.Catalog)
		go func() {
			c, _ := d.Refresh(context.Background())
			done <- c
		}()
		<-slowStarted

		newer, err := d.Refresh(context.Background())
		require.NoError(t, err)
		close(releaseSlow)
		older := <-done

		assert.Same(t, newer, older)
		_, ok := d.Catalog().FindStop(2)
		assert.True(t, ok)
		_, ok = d.Catalog().FindStop(1)
		assert.False(t, ok)
	})
}

func TestDirectory_Clear(t *testing.T) {
	t.Parallel()

	cache := memoryCache(&paradas.Snapshot{Stops: sampleStops()})
	d := &search.Directory{Cache: cache}
	d.Load(context.Background())

	require.NoError(t, d.Clear(context.Background()))

	snap, err := cache.ReadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
	assert.Equal(t, 3, d.Catalog().Len())
}

func TestDirectory_ConcurrentReaders(t *testing.T) {
	t.Parallel()

	d := &search.Directory{
		Cache: memoryCache(nil),
		Source: &mock.StopSource{
			FetchStopsFn: func(ctx context.Context) ([]paradas.Stop, error) {
				return sampleStops(), nil
			},
		},
	}
	d.Load(context.Background())

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = d.Refresh(context.Background())
		}()
		go func() {
			defer wg.Done()
			c := d.Catalog()
			// Every position the index yields must be valid for its stops.
			for _, key := range c.Index.Keys() {
				for _, pos := range c.Index.Positions(key) {
					assert.Less(t, pos, len(c.Stops))
				}
			}
		}()
	}
	wg.Wait()

	// Refreshes that lose the race to a newer one install nothing.
	gen := d.Catalog().Generation
	assert.GreaterOrEqual(t, gen, uint64(2))
	assert.LessOrEqual(t, gen, uint64(5))
}
