package paradas

// Index is an inverted index from normalized street keys to stop positions.
// Keys keep the order in which they were first produced during the build;
// that order breaks ties between matches. An Index is read-only once built
// and is safe for concurrent use.
type Index struct {
	keys    []string
	entries map[string][]int // key -> positions into the indexed stops
}

// BuildIndex indexes stops by their normalized street names. Each stop is
// reachable through "a y b", "b y a", "a" and "b", where a and b are the
// normalized streets. A street that normalizes to nothing adds no key of
// its own, but the pair keys are always present.
func BuildIndex(stops []Stop) *Index {
	idx := &Index{
		keys:    make([]string, 0, len(stops)*2),
		entries: make(map[string][]int, len(stops)*2),
	}
	for pos := range stops {
		a := Normalize(stops[pos].Street1)
		b := Normalize(stops[pos].Street2)
		idx.insert(a+" y "+b, pos)
		idx.insert(b+" y "+a, pos)
		if a != "" {
			idx.insert(a, pos)
		}
		if b != "" {
			idx.insert(b, pos)
		}
	}
	return idx
}

// insert adds pos to key. All inserts for one position happen together,
// so checking the last element is enough to keep entries duplicate-free.
func (idx *Index) insert(key string, pos int) {
	positions, ok := idx.entries[key]
	if !ok {
		idx.keys = append(idx.keys, key)
	}
	if n := len(positions); n > 0 && positions[n-1] == pos {
		return
	}
	idx.entries[key] = append(positions, pos)
}

// Len returns the number of distinct keys.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.keys)
}

// Keys returns the keys in build order.
func (idx *Index) Keys() []string {
	if idx == nil {
		return nil
	}
	out := make([]string, len(idx.keys))
	copy(out, idx.keys)
	return out
}

// Positions returns the stop positions stored under key.
func (idx *Index) Positions(key string) []int {
	if idx == nil {
		return nil
	}
	positions := idx.entries[key]
	out := make([]int, len(positions))
	copy(out, positions)
	return out
}
