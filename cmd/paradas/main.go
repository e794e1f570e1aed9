package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/paradas"
	"github.com/fwojciec/paradas/config"
	parhttp "github.com/fwojciec/paradas/http"
	"github.com/fwojciec/paradas/search"
	paradasslog "github.com/fwojciec/paradas/slog"
	"github.com/fwojciec/paradas/sqlite"
	"golang.org/x/time/rate"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Overrides the configured path when set.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Stop source for end-to-end testing. Nil means the HTTP directory service.
	Source paradas.StopSource

	Session *search.Session
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Session != nil {
		m.Session.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("paradas"),
		kong.Description("Find transit stops by street name."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'paradas --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := m.loadConfig(cli)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", paradas.ErrorMessage(err))
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}
	m.DB = sqlite.NewDB(cfg.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set %s to use a different database path\n", config.DBEnv)
		return fmt.Errorf("failed to open database at %q: %w", cfg.DBPath, err)
	}
	defer m.Close()

	source := m.Source
	if source == nil {
		opts := []parhttp.Option{parhttp.WithTimeout(cfg.FetchTimeout())}
		if cfg.RequestsPerSecond > 0 {
			opts = append(opts, parhttp.WithLimiter(rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)))
		}
		source = parhttp.NewStopSource(cfg.BaseURL, opts...)
	}

	deps.Directory = &search.Directory{
		Cache:  paradasslog.NewLoggingSnapshotCache(sqlite.NewSnapshotCache(m.DB), logger),
		Source: paradasslog.NewLoggingStopSource(source, logger),
		Logger: logger,
	}
	favorites := search.NewFavorites(
		paradasslog.NewLoggingFavoritesStorage(sqlite.NewFavoritesStorage(m.DB), logger),
		logger,
	)
	m.Session = search.NewSession(deps.Directory, favorites,
		search.WithLimit(cfg.Limit),
		search.WithDebounceInterval(cfg.DebounceInterval()),
		search.WithLogger(logger),
	)
	deps.Session = m.Session

	// Cache maintenance commands act on the directory alone.
	switch strings.Fields(kongCtx.Command())[0] {
	case "refresh", "clear-cache":
	default:
		if err := m.Session.Start(ctx); err != nil {
			fmt.Fprintf(stderr, "warning: %v\n", err)
		}
	}

	return kongCtx.Run(deps)
}

// loadConfig reads the config file and applies flag overrides.
func (m *Main) loadConfig(cli *CLI) (config.Config, error) {
	path := cli.Config
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if m.DBPath != "" {
		cfg.DBPath = m.DBPath
	}
	if cli.DB != "" {
		cfg.DBPath = cli.DB
	}
	if cli.BaseURL != "" {
		cfg.BaseURL = cli.BaseURL
	}
	if cli.Limit > 0 {
		cfg.Limit = cli.Limit
	}
	return cfg, cfg.Validate()
}
