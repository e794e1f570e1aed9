package main

import (
	"fmt"
	"strings"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query := strings.Join(c.Query, " ")
	stops := deps.Session.SearchNow(query)
	if len(stops) == 0 {
		fmt.Fprintf(deps.Stdout, "No stops match %q.\n", query)
		return nil
	}
	printStops(deps.Stdout, stops, deps.Session.IsFavorite)
	return nil
}
