package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/paradas"
)

const favoriteMark = "★"

// printStops writes one line per stop, marking favorites.
func printStops(w io.Writer, stops []paradas.Stop, isFavorite func(int) bool) {
	for _, s := range stops {
		mark := " "
		if isFavorite != nil && isFavorite(s.ID) {
			mark = favoriteMark
		}
		fmt.Fprintf(w, "%s %s\n", mark, formatStop(s))
	}
}

// formatStop renders a stop as "Parada <id>  <street1> y <street2>".
func formatStop(s paradas.Stop) string {
	switch {
	case s.Street1 == "" && s.Street2 == "":
		return fmt.Sprintf("Parada %d", s.ID)
	case s.Street2 == "":
		return fmt.Sprintf("Parada %d  %s", s.ID, s.Street1)
	case s.Street1 == "":
		return fmt.Sprintf("Parada %d  %s", s.ID, s.Street2)
	}
	return fmt.Sprintf("Parada %d  %s y %s", s.ID, s.Street1, s.Street2)
}
