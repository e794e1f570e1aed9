package main

import (
	"fmt"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	stops := deps.Session.Results("")
	if len(stops) == 0 {
		fmt.Fprintln(deps.Stdout, "No stops available. Use 'paradas refresh' to download the directory.")
		return nil
	}
	printStops(deps.Stdout, stops, deps.Session.IsFavorite)
	return nil
}
