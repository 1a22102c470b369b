// Package recipes owns the SQLite-backed recipe store: schema bootstrap,
// cookbook and recipe persistence, the case-insensitive ingredient catalog,
// tag and like links, and the list/search/detail read models.
//
// Every multi-table write runs inside a single transaction behind a process
// mutex and a cross-process file lock, so the store has exactly one writer at
// a time and partial writes are never observable. Ordered child collections
// (ingredients and steps) are always replaced wholesale: existing rows are
// deleted and the new sequence is inserted with positions 0..n-1.
//
// Errors returned from this package carry a Kind (validation, not_found,
// storage) through the ErrorKind method so the request boundary can map them
// to caller-visible responses without inspecting storage detail.
package recipes
