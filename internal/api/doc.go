// Package api is the request/response boundary in front of the recipe store.
// It validates every request before any storage write, translates store
// models into transport-friendly DTOs, and maps store failures onto a small
// caller-visible error taxonomy.
//
// # Key Types
//
// Service: one method per boundary operation (cookbooks, recipes, counters,
// tags, likes, ingredient suggestions).
//
// IngredientEntry: the tagged ingredient variant. On the wire it is either a
// bare string or an object {line, quantity, unit, name}.
//
// Optional: distinguishes an absent patch field from an explicit null so
// UpdateRecipeRequest can clear a photo with "photoDataUrl": null.
//
// Error: {kind, message} with kinds validation, not_found, and internal.
// Storage failures never leak their detail; they surface as "internal error"
// and are logged with the request's correlation id.
//
// # Design Notes
//
// DTOs use camelCase JSON tags. Timestamps use RFC3339 with milliseconds.
// Collections are always encoded as arrays, never null.
package api
