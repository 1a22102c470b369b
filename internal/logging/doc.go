// Package logging assembles structured slog loggers and formatting helpers used
// across recipebox.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so store and boundary code can
// tag log lines with recipe ids, cookbook ids, operations, and correlation ids.
// The package also provides a no-op logger for tests and wiring code that
// cannot fail.
package logging
