package main

import (
	"fmt"

	"github.com/fwojciec/paradas"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	stop, ok := deps.Session.Catalog().FindStop(c.ID)
	if !ok {
		fmt.Fprintf(deps.Stderr, "error: stop %d not found\n", c.ID)
		return paradas.Errorf(paradas.ENOTFOUND, "stop %d not found", c.ID)
	}

	fmt.Fprintf(deps.Stdout, "Parada %d\n", stop.ID)
	fmt.Fprintf(deps.Stdout, "  Street 1:  %s\n", stop.Street1)
	fmt.Fprintf(deps.Stdout, "  Street 2:  %s\n", stop.Street2)
	if lon, lat, ok := stop.Coordinates(); ok {
		fmt.Fprintf(deps.Stdout, "  Location:  %.6f, %.6f\n", lat, lon)
	} else {
		fmt.Fprintln(deps.Stdout, "  Location:  unknown")
	}
	if deps.Session.IsFavorite(stop.ID) {
		fmt.Fprintf(deps.Stdout, "  %s Favorite\n", favoriteMark)
	}
	return nil
}
