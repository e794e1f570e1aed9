package main

import (
	"bufio"
	"fmt"

	"github.com/fwojciec/paradas"
)

// Run executes the watch command. Each input line is the full text of the
// search box after a keystroke; results are printed once typing pauses.
func (c *WatchCmd) Run(deps *Dependencies) error {
	// The session never runs two evaluations at once.
	show := func(raw string, stops []paradas.Stop) {
		fmt.Fprintf(deps.Stdout, "> %s\n", raw)
		if len(stops) == 0 {
			fmt.Fprintln(deps.Stdout, "  (no stops)")
			return
		}
		printStops(deps.Stdout, stops, deps.Session.IsFavorite)
	}

	scanner := bufio.NewScanner(deps.Stdin)
	for scanner.Scan() {
		deps.Session.Type(scanner.Text(), show)
	}
	// Input ended; evaluate whatever was typed last.
	deps.Session.Flush()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
