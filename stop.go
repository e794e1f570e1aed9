package paradas

import (
	"context"
	"time"
)

// Stop represents a transit stop as served by the directory service.
// A stop is identified by its number and described by the two streets
// that cross at its location.
type Stop struct {
	ID       int       `json:"busstopId"`
	Street1  string    `json:"street1"`
	Street2  string    `json:"street2"`
	Location *Location `json:"location,omitempty"`
}

// Location holds the optional point geometry of a stop.
// Coordinates are ordered longitude, latitude.
type Location struct {
	Type        string    `json:"type,omitempty"`
	Coordinates []float64 `json:"coordinates"`
}

// Coordinates returns the stop position. ok is false unless the stop carries
// exactly one longitude/latitude pair.
func (s *Stop) Coordinates() (lon, lat float64, ok bool) {
	if s.Location == nil || len(s.Location.Coordinates) != 2 {
		return 0, 0, false
	}
	return s.Location.Coordinates[0], s.Location.Coordinates[1], true
}

// Snapshot is a copy of the stop directory held in local storage.
type Snapshot struct {
	Stops   []Stop
	SavedAt time.Time
}

// SnapshotCache persists the stop directory locally.
// A written snapshot is used indefinitely until it is cleared.
type SnapshotCache interface {
	// ReadSnapshot returns the cached snapshot.
	// Returns nil and no error if nothing is cached or the cached data is corrupt.
	ReadSnapshot(ctx context.Context) (*Snapshot, error)

	// WriteSnapshot replaces the cached snapshot with stops.
	WriteSnapshot(ctx context.Context, stops []Stop) error

	// ClearSnapshot removes the cached snapshot.
	ClearSnapshot(ctx context.Context) error
}

// StopSource retrieves the stop directory from the remote directory service.
type StopSource interface {
	// FetchStops returns every stop known to the service.
	// Returns ENETWORK on transport failure or a non-success response.
	FetchStops(ctx context.Context) ([]Stop, error)
}

// FavoritesStorage persists the ordered list of favorite stop IDs.
type FavoritesStorage interface {
	// LoadFavorites returns the persisted IDs in their saved order.
	// Returns an empty list if nothing is stored or the data is corrupt.
	LoadFavorites(ctx context.Context) ([]int, error)

	// SaveFavorites replaces the persisted IDs.
	SaveFavorites(ctx context.Context, ids []int) error
}
