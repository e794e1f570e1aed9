// Package config loads the paradas configuration.
//
// Configuration is read from an optional YAML file and validated using
// struct tags. Values absent from the file keep their defaults, and the
// PARADAS_DB environment variable overrides the database path.
package config
