package recipes_test

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"recipebox/internal/config"
	"recipebox/internal/recipes"
	"recipebox/internal/testsupport"
)

// openRaw opens a second read connection so tests can inspect stored rows.
func openRaw(t *testing.T, cfg *config.Config) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", cfg.DatabasePath())
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func countRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var count int
	if err := db.QueryRow(query, args...).Scan(&count); err != nil {
		t.Fatalf("count %q: %v", query, err)
	}
	return count
}

func positions(t *testing.T, db *sql.DB, table string, recipeID int64) []int {
	t.Helper()
	rows, err := db.Query("SELECT position FROM "+table+" WHERE recipe_id = ? ORDER BY position", recipeID)
	if err != nil {
		t.Fatalf("query positions: %v", err)
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var p int
		if err := rows.Scan(&p); err != nil {
			t.Fatalf("scan position: %v", err)
		}
		out = append(out, p)
	}
	return out
}

// newFixture opens a store with one fresh cookbook.
func newFixture(t *testing.T, opts ...testsupport.ConfigOption) (*recipes.Store, *config.Config, int64) {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	store := testsupport.MustOpenStore(t, cfg)
	cookbookID := testsupport.MustCreateCookbook(t, store, "Weeknights")
	return store, cfg, cookbookID
}

func mustDetail(t *testing.T, store *recipes.Store, id int64) *recipes.RecipeDetail {
	t.Helper()
	detail, err := store.GetRecipe(context.Background(), id)
	if err != nil {
		t.Fatalf("GetRecipe(%d): %v", id, err)
	}
	return detail
}

func summaryIDs(summaries []recipes.RecipeSummary) []int64 {
	ids := make([]int64, len(summaries))
	for i, s := range summaries {
		ids[i] = s.ID
	}
	return ids
}
