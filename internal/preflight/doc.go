// Package preflight provides readiness checks for the configuration, the
// data directory, and the recipe database.
//
// The CLI "recipebox doctor" command calls RunAll and prints one line per
// Result. Individual checks are exported so callers can run a subset.
package preflight
