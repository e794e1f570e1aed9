package mock

import (
	"context"

	"github.com/fwojciec/paradas"
)

var _ paradas.StopSource = (*StopSource)(nil)

// StopSource is a mock implementation of paradas.StopSource.
type StopSource struct {
	FetchStopsFn func(ctx context.Context) ([]paradas.Stop, error)
}

func (s *StopSource) FetchStops(ctx context.Context) ([]paradas.Stop, error) {
	return s.FetchStopsFn(ctx)
}
