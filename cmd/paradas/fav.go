package main

import (
	"fmt"

	"github.com/fwojciec/paradas"
)

// Run executes the fav command.
func (c *FavCmd) Run(deps *Dependencies) error {
	stop, ok := deps.Session.Catalog().FindStop(c.ID)
	// Unknown stops can still be removed.
	if !ok && !deps.Session.IsFavorite(c.ID) {
		fmt.Fprintf(deps.Stderr, "error: stop %d not found. Use 'paradas search' to find stop numbers.\n", c.ID)
		return paradas.Errorf(paradas.ENOTFOUND, "stop %d not found", c.ID)
	}

	label := fmt.Sprintf("Parada %d", c.ID)
	if ok {
		label = formatStop(stop)
	}
	if deps.Session.Toggle(deps.Ctx, c.ID) {
		fmt.Fprintf(deps.Stdout, "%s %s added to favorites\n", favoriteMark, label)
	} else {
		fmt.Fprintf(deps.Stdout, "%s removed from favorites\n", label)
	}
	return nil
}

// Run executes the favs command.
func (c *FavsCmd) Run(deps *Dependencies) error {
	stops := deps.Session.Favorites()
	if len(stops) == 0 {
		fmt.Fprintln(deps.Stdout, "No favorites yet. Use 'paradas fav <id>' to add one.")
		return nil
	}
	printStops(deps.Stdout, stops, deps.Session.IsFavorite)
	return nil
}
