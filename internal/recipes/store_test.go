package recipes_test

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"recipebox/internal/logging"
	"recipebox/internal/recipes"
	"recipebox/internal/testsupport"
)

func TestOpenSeedsDefaultCookbookOnce(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithDefaultCookbook("Family Favourites"))
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	cookbooks, err := store.ListCookbooks(ctx)
	if err != nil {
		t.Fatalf("ListCookbooks failed: %v", err)
	}
	if len(cookbooks) != 1 || cookbooks[0].Name != "Family Favourites" {
		t.Fatalf("expected single seeded cookbook, got %#v", cookbooks)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	cookbooks, err = reopened.ListCookbooks(ctx)
	if err != nil {
		t.Fatalf("ListCookbooks after reopen failed: %v", err)
	}
	if len(cookbooks) != 1 {
		t.Fatalf("expected reopen not to seed again, got %d cookbooks", len(cookbooks))
	}
}

func TestOpenDoesNotSeedWhenCookbooksExist(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	cookbooks, err := store.ListCookbooks(ctx)
	if err != nil {
		t.Fatalf("ListCookbooks failed: %v", err)
	}
	if err := store.RenameCookbook(ctx, cookbooks[0].ID, "Renamed"); err != nil {
		t.Fatalf("RenameCookbook failed: %v", err)
	}
	store.Close()

	reopened := testsupport.MustOpenStore(t, cfg)
	cookbooks, err = reopened.ListCookbooks(ctx)
	if err != nil {
		t.Fatalf("ListCookbooks failed: %v", err)
	}
	if len(cookbooks) != 1 || cookbooks[0].Name != "Renamed" {
		t.Fatalf("unexpected cookbooks after reopen: %#v", cookbooks)
	}
}

func TestOpenBackfillsLegacyColumns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}

	legacy, err := sql.Open("sqlite", cfg.DatabasePath())
	if err != nil {
		t.Fatalf("open legacy db: %v", err)
	}
	legacySchema := `
CREATE TABLE cookbooks (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, created_at TEXT NOT NULL);
CREATE TABLE recipes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    cookbook_id INTEGER NOT NULL REFERENCES cookbooks(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    author TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);
CREATE TABLE ingredients (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    recipe_id INTEGER NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
    line TEXT NOT NULL,
    position INTEGER NOT NULL
);
INSERT INTO cookbooks (name, created_at) VALUES ('Old Book', '2020-01-01T00:00:00.000000Z');
INSERT INTO recipes (cookbook_id, title, created_at) VALUES (1, 'Legacy Loaf', '2020-01-02T00:00:00.000000Z');
INSERT INTO ingredients (recipe_id, line, position) VALUES (1, '500 g flour', 0);
`
	if _, err := legacy.Exec(legacySchema); err != nil {
		t.Fatalf("create legacy schema: %v", err)
	}
	legacy.Close()

	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	detail, err := store.GetRecipe(ctx, 1)
	if err != nil {
		t.Fatalf("GetRecipe on legacy row failed: %v", err)
	}
	if detail.Title != "Legacy Loaf" || detail.Servings != 1 || detail.Uses != 0 || detail.Photo != nil {
		t.Fatalf("unexpected legacy detail: %#v", detail)
	}
	if len(detail.Ingredients) != 1 || detail.Ingredients[0].Line != "500 g flour" || detail.Ingredients[0].Structured() {
		t.Fatalf("unexpected legacy ingredients: %#v", detail.Ingredients)
	}

	cookbooks, err := store.ListCookbooks(ctx)
	if err != nil {
		t.Fatalf("ListCookbooks failed: %v", err)
	}
	if len(cookbooks) != 1 || cookbooks[0].Name != "Old Book" || cookbooks[0].RecipeCount != 1 {
		t.Fatalf("expected legacy cookbook only, got %#v", cookbooks)
	}

	photo := "data:image/png;base64,AAAA"
	id := testsupport.MustCreateRecipe(t, store, recipes.NewRecipe{
		CookbookID:  1,
		Title:       "New Loaf",
		Photo:       &photo,
		Servings:    4,
		Ingredients: []recipes.IngredientLine{{Quantity: testsupport.Quantity(2), Unit: "cups", Name: "Flour"}},
	})
	created := mustDetail(t, store, id)
	if created.Photo == nil || *created.Photo != photo || created.Servings != 4 {
		t.Fatalf("backfilled columns not writable: %#v", created)
	}
}

func TestOpenFailsWhenSchemaCannotBeVerified(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	broken, err := sql.Open("sqlite", cfg.DatabasePath())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// A view cannot take new columns, so the backfill must abort startup.
	if _, err := broken.Exec(`
CREATE TABLE cookbooks (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, created_at TEXT NOT NULL);
CREATE VIEW recipes AS SELECT id, id AS cookbook_id, name AS title FROM cookbooks;
`); err != nil {
		t.Fatalf("create broken schema: %v", err)
	}
	broken.Close()

	store, err := recipes.Open(cfg, logging.NewNop())
	if err == nil {
		store.Close()
		t.Fatal("expected Open to fail on an unverifiable schema")
	}
	if !strings.Contains(err.Error(), "add column recipes.") {
		t.Fatalf("expected backfill failure, got %v", err)
	}
}

func TestOpenRejectsNilConfig(t *testing.T) {
	if _, err := recipes.Open(nil, nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestErrorClassification(t *testing.T) {
	store, _, _ := newFixture(t)
	ctx := context.Background()

	err := store.DeleteRecipe(ctx, 999)
	if !recipes.IsNotFound(err) || recipes.KindOf(err) != recipes.KindNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
	var classifier recipes.ErrorClassifier
	if !errors.As(err, &classifier) || classifier.ErrorKind() != "not_found" {
		t.Fatalf("expected ErrorClassifier with not_found kind, got %v", err)
	}

	_, err = store.CreateCookbook(ctx, "   ")
	if !recipes.IsValidation(err) || recipes.IsNotFound(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if recipes.KindOf(sql.ErrConnDone) != recipes.KindStorage {
		t.Fatal("expected unclassified errors to be storage failures")
	}
}
