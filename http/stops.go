// Package http provides an HTTP implementation of paradas.StopSource backed
// by the stop directory service.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/paradas"
	"golang.org/x/time/rate"
)

// DefaultFetchTimeout is the default timeout for directory requests.
const DefaultFetchTimeout = 10 * time.Second

// stopsPath is the directory listing endpoint relative to the base URL.
const stopsPath = "/api/paradas"

// Ensure StopSource implements paradas.StopSource at compile time.
var _ paradas.StopSource = (*StopSource)(nil)

// StopSource fetches the stop directory from the directory service.
type StopSource struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	limiter *rate.Limiter
}

// Option configures a StopSource.
type Option func(*StopSource)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *StopSource) {
		s.timeout = d
	}
}

// WithLimiter makes every fetch wait for a token from l before the request
// is sent. Without a limiter requests are sent immediately.
func WithLimiter(l *rate.Limiter) Option {
	return func(s *StopSource) {
		s.limiter = l
	}
}

// NewStopSource creates a StopSource for the service at baseURL,
// e.g. "http://infobondiapi.ignaciofianza.com".
func NewStopSource(baseURL string, opts ...Option) *StopSource {
	s := &StopSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.client = &http.Client{
		Timeout: s.timeout,
	}

	return s
}

// URL returns the endpoint the directory is fetched from.
func (s *StopSource) URL() string {
	return s.baseURL + stopsPath
}

// FetchStops retrieves every stop from the directory service.
func (s *StopSource) FetchStops(ctx context.Context) ([]paradas.Stop, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	url := s.URL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, paradas.Errorf(paradas.ENETWORK, "failed to fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, paradas.Errorf(paradas.ENETWORK, "HTTP %d for %s", resp.StatusCode, url)
	}

	var stops []paradas.Stop
	if err := json.NewDecoder(resp.Body).Decode(&stops); err != nil {
		return nil, paradas.Errorf(paradas.EINVALID, "invalid directory response from %s: %v", url, err)
	}
	if stops == nil {
		return nil, paradas.Errorf(paradas.EINVALID, "empty directory response from %s", url)
	}

	return stops, nil
}
