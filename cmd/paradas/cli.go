package main

import (
	"context"
	"io"

	"github.com/fwojciec/paradas/search"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Directory *search.Directory
	Session   *search.Session
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `type:"path" help:"Config file (default ~/.paradas/config.yml)"`
	DB      string `type:"path" help:"Database path (overrides config and PARADAS_DB)"`
	BaseURL string `name:"base-url" help:"Directory service base URL"`
	Limit   int    `help:"Maximum number of search results"`
	Verbose bool   `short:"v" help:"Log debug output to stderr"`

	Search     SearchCmd     `cmd:"" help:"Search stops by street name"`
	List       ListCmd       `cmd:"" help:"Show favorites followed by a few other stops"`
	Fav        FavCmd        `cmd:"" help:"Add or remove a favorite stop"`
	Favs       FavsCmd       `cmd:"" help:"List favorite stops"`
	Show       ShowCmd       `cmd:"" help:"Show a stop with its location"`
	Refresh    RefreshCmd    `cmd:"" help:"Download the stop directory again"`
	ClearCache ClearCacheCmd `cmd:"" name:"clear-cache" help:"Delete the cached stop directory"`
	Watch      WatchCmd      `cmd:"" help:"Search as you type, one line of input per keystroke"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query []string `arg:"" help:"Street names to look for"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// FavCmd is the "fav" subcommand.
type FavCmd struct {
	ID int `arg:"" help:"Stop number"`
}

// FavsCmd is the "favs" subcommand.
type FavsCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID int `arg:"" help:"Stop number"`
}

// RefreshCmd is the "refresh" subcommand.
type RefreshCmd struct{}

// ClearCacheCmd is the "clear-cache" subcommand.
type ClearCacheCmd struct{}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct{}
