package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/paradas"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultBaseURL           = "http://infobondiapi.ignaciofianza.com"
	DefaultDebounceMS        = 300
	DefaultFetchTimeoutMS    = 10000
	DefaultRequestsPerSecond = 1.0
)

// DBEnv names the environment variable that overrides the database path.
const DBEnv = "PARADAS_DB"

// Config is the application configuration.
type Config struct {
	BaseURL           string  `yaml:"baseURL" validate:"required,url"`
	DBPath            string  `yaml:"dbPath" validate:"required"`
	DebounceMS        int     `yaml:"debounceMS" validate:"gte=0,lte=10000"`
	Limit             int     `yaml:"limit" validate:"gte=1,lte=1000"`
	FetchTimeoutMS    int     `yaml:"fetchTimeoutMS" validate:"gte=1"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond" validate:"gte=0"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		DBPath:            DefaultDBPath(),
		DebounceMS:        DefaultDebounceMS,
		Limit:             paradas.DefaultLimit,
		FetchTimeoutMS:    DefaultFetchTimeoutMS,
		RequestsPerSecond: DefaultRequestsPerSecond,
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result. A missing file is not an error. PARADAS_DB, when set, wins over
// the file's dbPath.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, paradas.Errorf(paradas.EINVALID, "parse config %s: %v", path, err)
			}
		}
	}

	if db := os.Getenv(DBEnv); db != "" {
		cfg.DBPath = db
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return paradas.Errorf(paradas.EINVALID, "invalid config: %v", err)
	}
	return nil
}

// DebounceInterval returns DebounceMS as a duration.
func (c Config) DebounceInterval() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// DefaultDBPath returns PARADAS_DB if set, else ~/.paradas/paradas.db.
func DefaultDBPath() string {
	if path := os.Getenv(DBEnv); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "paradas.db"
	}
	return filepath.Join(home, ".paradas", "paradas.db")
}

// DefaultPath returns the default config file location, ~/.paradas/config.yml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yml"
	}
	return filepath.Join(home, ".paradas", "config.yml")
}
