package testsupport

import (
	"context"
	"testing"

	"recipebox/internal/api"
	"recipebox/internal/config"
	"recipebox/internal/logging"
	"recipebox/internal/recipes"
)

// MustOpenStore opens a recipes.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *recipes.Store {
	t.Helper()

	store, err := recipes.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("recipes.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustOpenService opens a store and wraps it in the request boundary.
func MustOpenService(t testing.TB, cfg *config.Config) (*api.Service, *recipes.Store) {
	t.Helper()

	store := MustOpenStore(t, cfg)
	return api.NewService(store, cfg, logging.NewNop()), store
}

// MustCreateCookbook creates a cookbook and returns its id.
func MustCreateCookbook(t testing.TB, store *recipes.Store, name string) int64 {
	t.Helper()

	cookbook, err := store.CreateCookbook(context.Background(), name)
	if err != nil {
		t.Fatalf("store.CreateCookbook: %v", err)
	}
	return cookbook.ID
}

// MustCreateRecipe creates a recipe and returns its id.
func MustCreateRecipe(t testing.TB, store *recipes.Store, in recipes.NewRecipe) int64 {
	t.Helper()

	id, err := store.CreateRecipe(context.Background(), in)
	if err != nil {
		t.Fatalf("store.CreateRecipe: %v", err)
	}
	return id
}

// Quantity returns a pointer to q for structured ingredient fixtures.
func Quantity(q float64) *float64 {
	return &q
}
