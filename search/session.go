package search

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/paradas"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Session is one user's view of the directory: it answers queries against
// the installed catalog, debounces typed input, and toggles favorites.
type Session struct {
	ID string

	directory *Directory
	favorites *Favorites
	debouncer *Debouncer
	limit     int
	logger    *slog.Logger

	randMu sync.Mutex
	rand   *rand.Rand
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLimit caps query results. Zero or less means paradas.DefaultLimit.
func WithLimit(n int) SessionOption {
	return func(s *Session) { s.limit = n }
}

// WithDebounceInterval sets the quiet period for typed input.
func WithDebounceInterval(d time.Duration) SessionOption {
	return func(s *Session) { s.debouncer = NewDebouncer(d) }
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// WithRand sets the random source used to sample the default view.
func WithRand(r *rand.Rand) SessionOption {
	return func(s *Session) { s.rand = r }
}

// NewSession returns a Session over directory and favorites.
func NewSession(directory *Directory, favorites *Favorites, opts ...SessionOption) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		directory: directory,
		favorites: favorites,
		limit:     paradas.DefaultLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.debouncer == nil {
		s.debouncer = NewDebouncer(DefaultDebounceInterval)
	}
	if s.logger == nil {
		s.logger = discardLogger()
	}
	s.logger = s.logger.With("session", s.ID)
	return s
}

// Start loads the directory and the favorites concurrently. The session is
// usable even when Start returns an error; the error reports a favorites
// storage failure, after which the favorites set is empty.
func (s *Session) Start(ctx context.Context) error {
	begin := time.Now()

	// A favorites failure must not cancel the directory load.
	var g errgroup.Group
	g.Go(func() error {
		s.directory.Load(ctx)
		return nil
	})
	g.Go(func() error {
		return s.favorites.Load(ctx)
	})
	err := g.Wait()

	s.logger.Info("start session",
		"stops", s.directory.Catalog().Len(),
		"favorites", len(s.favorites.IDs()),
		"duration", time.Since(begin),
		"err", err,
	)
	return err
}

// Results returns the listing for raw input. Blank input yields the default
// view; anything else is matched against the index.
func (s *Session) Results(raw string) []paradas.Stop {
	catalog := s.directory.Catalog()
	if strings.TrimSpace(raw) == "" {
		s.randMu.Lock()
		defer s.randMu.Unlock()
		return paradas.DefaultView(catalog.Stops, s.favorites.IDs(), paradas.ViewOptions{Rand: s.rand})
	}
	return paradas.Query(raw, catalog.Index, catalog.Stops, s.limit)
}

// Type records typed input. Once input settles, fn receives its results.
// Only the last input of a burst is evaluated.
func (s *Session) Type(raw string, fn func(raw string, stops []paradas.Stop)) {
	s.debouncer.Schedule(func() {
		fn(raw, s.Results(raw))
	})
}

// Flush evaluates pending typed input now and waits for any evaluation in
// progress.
func (s *Session) Flush() {
	s.debouncer.Flush()
}

// SearchNow evaluates raw immediately, dropping any pending typed input.
func (s *Session) SearchNow(raw string) []paradas.Stop {
	var stops []paradas.Stop
	s.debouncer.Run(func() {
		stops = s.Results(raw)
	})
	return stops
}

// Toggle flips the favorite status of a stop and reports the new status.
func (s *Session) Toggle(ctx context.Context, id int) bool {
	member := s.favorites.Toggle(ctx, id)
	s.logger.Debug("toggle favorite", "id", id, "favorite", member)
	return member
}

// IsFavorite reports whether the stop is a favorite.
func (s *Session) IsFavorite(id int) bool {
	return s.favorites.Contains(id)
}

// Favorites returns the favorite stops present in the catalog, in order.
func (s *Session) Favorites() []paradas.Stop {
	catalog := s.directory.Catalog()
	ids := s.favorites.IDs()
	out := make([]paradas.Stop, 0, len(ids))
	for _, id := range ids {
		if stop, ok := catalog.FindStop(id); ok {
			out = append(out, stop)
		}
	}
	return out
}

// Catalog returns the installed catalog.
func (s *Session) Catalog() *Catalog {
	return s.directory.Catalog()
}

// Refresh refetches the directory from the network.
func (s *Session) Refresh(ctx context.Context) (*Catalog, error) {
	return s.directory.Refresh(ctx)
}

// Close drops pending input and waits for a running evaluation.
func (s *Session) Close() {
	s.debouncer.Stop()
}
