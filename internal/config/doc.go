// Package config loads, normalizes, and validates recipebox configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// RECIPEBOX_DATA_DIR. The Config type centralizes every knob the store, the
// request boundary, and the CLI need: where the database lives, how long
// writers wait on a busy database, how large a single request may grow, and
// how logs are rendered.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
