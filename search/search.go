// Package search holds the stateful side of stop lookup: the installed
// stop catalog, the favorites set, keystroke debouncing, and the session
// that ties them to the query engine.
package search

import (
	"io"
	"log/slog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
