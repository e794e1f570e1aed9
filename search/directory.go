package search

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/paradas"
)

// Catalog pairs a directory snapshot with the index built from it.
// A Catalog is immutable; readers holding one always see matching stops
// and index.
type Catalog struct {
	Stops      []paradas.Stop
	Index      *paradas.Index
	Generation uint64
	SavedAt    time.Time
}

// FindStop returns the stop with the given ID.
func (c *Catalog) FindStop(id int) (paradas.Stop, bool) {
	for _, s := range c.Stops {
		if s.ID == id {
			return s, true
		}
	}
	return paradas.Stop{}, false
}

// Len returns the number of stops in the catalog.
func (c *Catalog) Len() int {
	return len(c.Stops)
}

var emptyCatalog = &Catalog{Index: paradas.BuildIndex(nil)}

// Directory owns the current stop catalog. Load and Refresh replace it
// wholesale; Catalog may be called concurrently with both.
type Directory struct {
	Cache  paradas.SnapshotCache
	Source paradas.StopSource
	Logger *slog.Logger

	current atomic.Pointer[Catalog]

	// issued is the token of the newest load or fetch started.
	issued atomic.Uint64

	mu         sync.Mutex // serializes commits
	generation uint64
	committed  uint64 // token of the newest directory installed
}

// Catalog returns the installed catalog, or an empty one before the first
// install.
func (d *Directory) Catalog() *Catalog {
	if c := d.current.Load(); c != nil {
		return c
	}
	return emptyCatalog
}

// Load installs the cached snapshot if there is one, and otherwise the
// remote directory, writing it to the cache. If both are unavailable the
// empty directory is installed. Load never fails; problems are logged.
// Whatever Load finds is dropped if a newer Refresh installed first.
func (d *Directory) Load(ctx context.Context) *Catalog {
	token := d.issued.Add(1)
	if snap := d.readCache(ctx); snap != nil {
		return d.commit(ctx, token, snap.Stops, snap.SavedAt, false)
	}

	token, stops, err := d.fetch(ctx)
	if err != nil {
		d.logger().Warn("load directory", "source", "empty", "err", err)
		return d.commit(ctx, token, nil, time.Time{}, false)
	}
	return d.commit(ctx, token, stops, time.Now(), true)
}

// Refresh fetches the remote directory, overwrites the cache and installs
// it. On failure the current catalog stays installed and the error is
// returned.
func (d *Directory) Refresh(ctx context.Context) (*Catalog, error) {
	token, stops, err := d.fetch(ctx)
	if err != nil {
		return d.Catalog(), err
	}
	return d.commit(ctx, token, stops, time.Now(), true), nil
}

// Clear removes the cached snapshot. The installed catalog is unchanged.
func (d *Directory) Clear(ctx context.Context) error {
	return d.Cache.ClearSnapshot(ctx)
}

func (d *Directory) readCache(ctx context.Context) *paradas.Snapshot {
	snap, err := d.Cache.ReadSnapshot(ctx)
	if err != nil {
		d.logger().Warn("read snapshot failed, treating as miss", "err", err)
		return nil
	}
	return snap
}

func (d *Directory) fetch(ctx context.Context) (uint64, []paradas.Stop, error) {
	token := d.issued.Add(1)
	stops, err := d.Source.FetchStops(ctx)
	return token, stops, err
}

// commit installs stops, and persists them if asked, unless a load or
// fetch started after token has already been installed.
func (d *Directory) commit(ctx context.Context, token uint64, stops []paradas.Stop, savedAt time.Time, persist bool) *Catalog {
	d.mu.Lock()
	defer d.mu.Unlock()

	if token < d.committed {
		d.logger().Info("discard stale directory", "token", token, "committed", d.committed)
		return d.Catalog()
	}
	d.committed = token

	if persist {
		if err := d.Cache.WriteSnapshot(ctx, stops); err != nil {
			d.logger().Warn("write snapshot failed", "err", err)
		}
	}
	return d.installLocked(stops, savedAt)
}

func (d *Directory) installLocked(stops []paradas.Stop, savedAt time.Time) *Catalog {
	stops, dropped := uniqueStops(stops)
	if dropped > 0 {
		d.logger().Warn("dropped duplicate stop ids", "count", dropped)
	}

	d.generation++
	c := &Catalog{
		Stops:      stops,
		Index:      paradas.BuildIndex(stops),
		Generation: d.generation,
		SavedAt:    savedAt,
	}
	d.current.Store(c)
	d.logger().Debug("install catalog", "generation", c.Generation, "count", len(stops))
	return c
}

func (d *Directory) logger() *slog.Logger {
	if d.Logger == nil {
		return discardLogger()
	}
	return d.Logger
}

// uniqueStops keeps the first stop for each ID.
func uniqueStops(stops []paradas.Stop) ([]paradas.Stop, int) {
	seen := make(map[int]struct{}, len(stops))
	out := make([]paradas.Stop, 0, len(stops))
	for _, s := range stops {
		if _, ok := seen[s.ID]; ok {
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}
	return out, len(stops) - len(out)
}
