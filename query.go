package paradas

import (
	"math/rand/v2"
	"strings"
	"unicode/utf8"
)

// Query and listing defaults.
const (
	// MinQueryLength is the shortest normalized query, in runes, that is matched.
	MinQueryLength = 3

	// DefaultLimit caps the number of query results.
	DefaultLimit = 10

	// DefaultBaseCap is the length the default view fills up to while the
	// favorites fit under it.
	DefaultBaseCap = 10

	// DefaultOverflowExtra is the number of random stops appended once the
	// favorites alone exceed DefaultBaseCap.
	DefaultOverflowExtra = 3
)

// Query returns the stops whose index keys contain the normalized form of
// raw. Keys are scanned in build order and each stop is returned once, in the
// order it was first matched, up to limit stops. A limit of zero or less
// means DefaultLimit. Queries shorter than MinQueryLength match nothing.
//
// stops must be the slice idx was built from.
func Query(raw string, idx *Index, stops []Stop, limit int) []Stop {
	q := Normalize(raw)
	if utf8.RuneCountInString(q) < MinQueryLength || idx == nil {
		return []Stop{}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	out := make([]Stop, 0, limit)
	seen := make(map[int]struct{}, limit)
	for _, key := range idx.keys {
		if !strings.Contains(key, q) {
			continue
		}
		for _, pos := range idx.entries[key] {
			if _, ok := seen[pos]; ok {
				continue
			}
			seen[pos] = struct{}{}
			out = append(out, stops[pos])
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}

// ViewOptions configures DefaultView. Zero fields take the package defaults.
type ViewOptions struct {
	BaseCap       int
	OverflowExtra int

	// Rand drives sampling. Nil uses the global generator.
	Rand *rand.Rand
}

// DefaultView returns the listing shown when no query is active: every
// favorite present in stops, in favorites order, followed by a uniform
// random sample of the other stops. While the favorites fit under BaseCap
// the sample tops the listing up to BaseCap; once they exceed it only
// OverflowExtra stops are added.
func DefaultView(stops []Stop, favorites []int, opts ViewOptions) []Stop {
	baseCap := opts.BaseCap
	if baseCap <= 0 {
		baseCap = DefaultBaseCap
	}
	extra := opts.OverflowExtra
	if extra <= 0 {
		extra = DefaultOverflowExtra
	}

	byID := make(map[int]int, len(stops))
	for i := range stops {
		if _, ok := byID[stops[i].ID]; !ok {
			byID[stops[i].ID] = i
		}
	}

	favs := make([]Stop, 0, len(favorites))
	isFav := make(map[int]struct{}, len(favorites))
	for _, id := range favorites {
		if _, dup := isFav[id]; dup {
			continue
		}
		pos, ok := byID[id]
		if !ok {
			continue
		}
		isFav[id] = struct{}{}
		favs = append(favs, stops[pos])
	}

	others := make([]Stop, 0, len(stops))
	for i := range stops {
		if _, ok := isFav[stops[i].ID]; !ok {
			others = append(others, stops[i])
		}
	}

	n := baseCap - len(favs)
	if len(favs) > baseCap {
		n = extra
	}
	return append(favs, sample(others, n, opts.Rand)...)
}

// sample picks n elements of stops uniformly without replacement.
// It shuffles stops in place, so callers pass a copy they own.
func sample(stops []Stop, n int, r *rand.Rand) []Stop {
	if n > len(stops) {
		n = len(stops)
	}
	if n <= 0 {
		return nil
	}
	intN := rand.IntN
	if r != nil {
		intN = r.IntN
	}
	for i := 0; i < n; i++ {
		j := i + intN(len(stops)-i)
		stops[i], stops[j] = stops[j], stops[i]
	}
	return stops[:n]
}
