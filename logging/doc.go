// Package logging provides structured logging using Go's standard library log/slog.
// It outputs logs in JSON (or logfmt-style text) and can read its settings
// from a "logging" section of a configuration tree.
package logging
