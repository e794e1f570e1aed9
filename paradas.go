// Package paradas finds transit stops by street name when the stop number
// is unknown. It normalizes street names, builds an inverted index over the
// stop directory, answers substring queries against it and computes the
// favorites-first listing shown when no query is active.
//
// This package contains domain types, interfaces and the pure search logic,
// following Ben Johnson's Standard Package Layout. Implementations of the
// interfaces live in subdirectories named after their primary dependency
// (e.g., sqlite/, http/, slog/).
package paradas
