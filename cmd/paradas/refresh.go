package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/paradas"
)

// Run executes the refresh command.
func (c *RefreshCmd) Run(deps *Dependencies) error {
	catalog, err := deps.Directory.Refresh(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paradas.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Downloaded %d stops (generation %d, saved %s)\n",
		catalog.Len(), catalog.Generation, catalog.SavedAt.Format(time.RFC3339))
	return nil
}

// Run executes the clear-cache command.
func (c *ClearCacheCmd) Run(deps *Dependencies) error {
	if err := deps.Directory.Clear(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paradas.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, "Cleared cached stop directory")
	return nil
}
