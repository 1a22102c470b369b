package recipes_test

import (
	"context"
	"database/sql"
	"slices"
	"sync"
	"testing"

	"recipebox/internal/recipes"
	"recipebox/internal/testsupport"
)

func TestCreateRecipeValidation(t *testing.T) {
	store, cfg, cookbookID := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   recipes.NewRecipe
	}{
		{"missing cookbook id", recipes.NewRecipe{Title: "Soup"}},
		{"blank title", recipes.NewRecipe{CookbookID: cookbookID, Title: "  "}},
		{"negative servings", recipes.NewRecipe{CookbookID: cookbookID, Title: "Soup", Servings: -1}},
		{"empty ingredient", recipes.NewRecipe{CookbookID: cookbookID, Title: "Soup", Ingredients: []recipes.IngredientLine{{Unit: "cup"}}}},
		{"blank step", recipes.NewRecipe{CookbookID: cookbookID, Title: "Soup", Steps: []string{"Boil", " "}}},
		{"blank tag", recipes.NewRecipe{CookbookID: cookbookID, Title: "Soup", Tags: []string{""}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.CreateRecipe(ctx, tc.in); !recipes.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	if _, err := store.CreateRecipe(ctx, recipes.NewRecipe{CookbookID: 5555, Title: "Soup"}); !recipes.IsNotFound(err) {
		t.Fatalf("expected not_found for missing cookbook, got %v", err)
	}

	raw := openRaw(t, cfg)
	if got := countRows(t, raw, "SELECT COUNT(1) FROM recipes"); got != 0 {
		t.Fatalf("rejected creates must not write rows, found %d", got)
	}
}

// failStepInserts makes every later steps insert abort so a write fails
// after earlier statements in its transaction have run.
func failStepInserts(t *testing.T, raw *sql.DB) {
	t.Helper()
	if _, err := raw.Exec(`CREATE TRIGGER fail_step_insert BEFORE INSERT ON steps
BEGIN
    SELECT RAISE(ABORT, 'step insert rejected');
END`); err != nil {
		t.Fatalf("create trigger: %v", err)
	}
}

func TestCreateRecipeRollsBackOnStorageFailure(t *testing.T) {
	store, cfg, cookbookID := newFixture(t)
	raw := openRaw(t, cfg)
	failStepInserts(t, raw)

	_, err := store.CreateRecipe(context.Background(), recipes.NewRecipe{
		CookbookID:  cookbookID,
		Title:       "Soup",
		Ingredients: []recipes.IngredientLine{{Name: "Leek"}, {Line: "2 potatoes"}},
		Steps:       []string{"Chop", "Simmer"},
		Notes:       "Freezes well",
		Tags:        []string{"winter"},
	})
	if kind := recipes.KindOf(err); kind != recipes.KindStorage {
		t.Fatalf("expected storage error, got kind %q (%v)", kind, err)
	}

	for _, table := range []string{"recipes", "ingredients", "ingredient_catalog", "notes", "recipe_tags"} {
		if got := countRows(t, raw, "SELECT COUNT(1) FROM "+table); got != 0 {
			t.Fatalf("expected no %s rows after failed create, found %d", table, got)
		}
	}
}

func TestUpdateRecipeRollsBackOnStorageFailure(t *testing.T) {
	store, cfg, cookbookID := newFixture(t)
	ctx := context.Background()
	id := testsupport.MustCreateRecipe(t, store, recipes.NewRecipe{
		CookbookID:  cookbookID,
		Title:       "Soup",
		Ingredients: []recipes.IngredientLine{{Name: "Leek"}},
	})
	raw := openRaw(t, cfg)
	failStepInserts(t, raw)

	title := "Stew"
	servings := 6
	ingredients := []recipes.IngredientLine{{Name: "Potato"}, {Name: "Carrot"}}
	steps := []string{"Boil"}
	err := store.UpdateRecipe(ctx, id, recipes.RecipePatch{
		Title:       &title,
		Servings:    &servings,
		Ingredients: &ingredients,
		Steps:       &steps,
	})
	if kind := recipes.KindOf(err); kind != recipes.KindStorage {
		t.Fatalf("expected storage error, got kind %q (%v)", kind, err)
	}

	detail := mustDetail(t, store, id)
	if detail.Title != "Soup" || detail.Servings != 1 {
		t.Fatalf("scalar changes were not rolled back: %+v", detail)
	}
	if len(detail.Ingredients) != 1 || detail.Ingredients[0].Name != "Leek" {
		t.Fatalf("ingredient replacement was not rolled back: %+v", detail.Ingredients)
	}
	if got := countRows(t, raw, "SELECT COUNT(1) FROM ingredient_catalog WHERE name IN ('Potato', 'Carrot')"); got != 0 {
		t.Fatalf("catalog entries from failed update remain: %d", got)
	}
}

func TestUpdateReplacesOrderedListsDensely(t *testing.T) {
	store, cfg, cookbookID := newFixture(t)
	ctx := context.Background()
	raw := openRaw(t, cfg)

	id := testsupport.MustCreateRecipe(t, store, recipes.NewRecipe{
		CookbookID:  cookbookID,
		Title:       "Chili",
		Ingredients: []recipes.IngredientLine{{Line: "beans"}, {Line: "onion"}, {Line: "tomato"}, {Line: "chili"}},
		Steps:       []string{"Chop", "Simmer", "Serve"},
	})
	if got := positions(t, raw, "ingredients", id); !slices.Equal(got, []int{0, 1, 2, 3}) {
		t.Fatalf("unexpected initial positions: %v", got)
	}

	reordered := []recipes.IngredientLine{{Line: "tomato"}, {Line: "beans"}}
	steps := []string{"Simmer", "Chop", "Rest", "Serve"}
	if err := store.UpdateRecipe(ctx, id, recipes.RecipePatch{Ingredients: &reordered, Steps: &steps}); err != nil {
		t.Fatalf("UpdateRecipe failed: %v", err)
	}

	if got := positions(t, raw, "ingredients", id); !slices.Equal(got, []int{0, 1}) {
		t.Fatalf("ingredient positions not dense: %v", got)
	}
	if got := positions(t, raw, "steps", id); !slices.Equal(got, []int{0, 1, 2, 3}) {
		t.Fatalf("step positions not dense: %v", got)
	}
	detail := mustDetail(t, store, id)
	lines := make([]string, len(detail.Ingredients))
	for i, line := range detail.Ingredients {
		lines[i] = line.Line
	}
	if !slices.Equal(lines, []string{"tomato", "beans"}) {
		t.Fatalf("ingredient order not preserved: %v", lines)
	}
	if !slices.Equal(detail.Steps, steps) {
		t.Fatalf("step order not preserved: %v", detail.Steps)
	}

	empty := []string{}
	if err := store.UpdateRecipe(ctx, id, recipes.RecipePatch{Steps: &empty}); err != nil {
		t.Fatalf("UpdateRecipe with empty steps failed: %v", err)
	}
	if got := countRows(t, raw, "SELECT COUNT(1) FROM steps WHERE recipe_id = ?", id); got != 0 {
		t.Fatalf("expected no steps, got %d", got)
	}
	if got := positions(t, raw, "ingredients", id); !slices.Equal(got, []int{0, 1}) {
		t.Fatalf("untouched ingredients changed: %v", got)
	}
}

func TestUpdateRecipeIsSparse(t *testing.T) {
	store, cfg, cookbookID := newFixture(t)
	ctx := context.Background()
	photo := "data:image/jpeg;base64,/9j/"

	id := testsupport.MustCreateRecipe(t, store, recipes.NewRecipe{
		CookbookID:  cookbookID,
		Title:       "Focaccia",
		Description: "Airy",
		Author:      "Sam",
		Photo:       &photo,
		Servings:    6,
		Steps:       []string{"Knead"},
		Notes:       "Use good oil",
		Tags:        []string{"Bread"},
	})

	title := "Rosemary Focaccia"
	servings := 8
	if err := store.UpdateRecipe(ctx, id, recipes.RecipePatch{Title: &title, Servings: &servings}); err != nil {
		t.Fatalf("UpdateRecipe failed: %v", err)
	}
	detail := mustDetail(t, store, id)
	if detail.Title != title || detail.Servings != 8 {
		t.Fatalf("patched fields not applied: %#v", detail)
	}
	if detail.Description != "Airy" || detail.Author != "Sam" || detail.Photo == nil || *detail.Photo != photo {
		t.Fatalf("absent fields were modified: %#v", detail)
	}
	if detail.Notes != "Use good oil" || !slices.Equal(detail.Steps, []string{"Knead"}) || !slices.Equal(detail.Tags, []string{"Bread"}) {
		t.Fatalf("absent lists were modified: %#v", detail)
	}

	if err := store.UpdateRecipe(ctx, id, recipes.RecipePatch{SetPhoto: true}); err != nil {
		t.Fatalf("clearing photo failed: %v", err)
	}
	if detail := mustDetail(t, store, id); detail.Photo != nil {
		t.Fatalf("expected photo cleared, got %q", *detail.Photo)
	}

	blank := "   "
	if err := store.UpdateRecipe(ctx, id, recipes.RecipePatch{Notes: &blank}); err != nil {
		t.Fatalf("blanking notes failed: %v", err)
	}
	raw := openRaw(t, cfg)
	if got := countRows(t, raw, "SELECT COUNT(1) FROM notes WHERE recipe_id = ?", id); got != 0 {
		t.Fatalf("blank notes must not be persisted, found %d rows", got)
	}

	tags := []string{"Italian", "Italian", "Bread "}
	if err := store.UpdateRecipe(ctx, id, recipes.RecipePatch{Tags: &tags}); err != nil {
		t.Fatalf("replacing tags failed: %v", err)
	}
	if detail := mustDetail(t, store, id); !slices.Equal(detail.Tags, []string{"Bread", "Italian"}) {
		t.Fatalf("unexpected tags: %v", detail.Tags)
	}

	if err := store.UpdateRecipe(ctx, 8080, recipes.RecipePatch{Title: &title}); !recipes.IsNotFound(err) {
		t.Fatalf("expected not_found, got %v", err)
	}
	emptyTitle := ""
	if err := store.UpdateRecipe(ctx, id, recipes.RecipePatch{Title: &emptyTitle}); !recipes.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBlankPhotoIsStoredAsNull(t *testing.T) {
	store, cfg, cookbookID := newFixture(t)
	ctx := context.Background()
	empty := ""
	id := testsupport.MustCreateRecipe(t, store, recipes.NewRecipe{
		CookbookID: cookbookID,
		Title:      "Toast",
		Photo:      &empty,
	})
	if detail := mustDetail(t, store, id); detail.Photo != nil {
		t.Fatalf("expected no photo for blank input, got %q", *detail.Photo)
	}

	photo := "data:image/png;base64,iVBORw0KGgo="
	if err := store.UpdateRecipe(ctx, id, recipes.RecipePatch{SetPhoto: true, Photo: &photo}); err != nil {
		t.Fatalf("setting photo failed: %v", err)
	}
	blank := "  "
	if err := store.UpdateRecipe(ctx, id, recipes.RecipePatch{SetPhoto: true, Photo: &blank}); err != nil {
		t.Fatalf("blanking photo failed: %v", err)
	}
	if detail := mustDetail(t, store, id); detail.Photo != nil {
		t.Fatalf("expected blank photo cleared, got %q", *detail.Photo)
	}
	raw := openRaw(t, cfg)
	if got := countRows(t, raw, "SELECT COUNT(1) FROM recipes WHERE id = ? AND photo IS NULL", id); got != 1 {
		t.Fatalf("expected NULL photo column, found %d matching rows", got)
	}
}

func TestUpdateRecipeMovesBetweenCookbooks(t *testing.T) {
	store, _, cookbookID := newFixture(t)
	ctx := context.Background()
	target := testsupport.MustCreateCookbook(t, store, "Desserts")
	id := testsupport.MustCreateRecipe(t, store, recipes.NewRecipe{CookbookID: cookbookID, Title: "Flan"})

	missing := int64(4040)
	if err := store.UpdateRecipe(ctx, id, recipes.RecipePatch{CookbookID: &missing}); !recipes.IsNotFound(err) {
		t.Fatalf("expected not_found for missing target cookbook, got %v", err)
	}
	if err := store.UpdateRecipe(ctx, id, recipes.RecipePatch{CookbookID: &target}); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if detail := mustDetail(t, store, id); detail.CookbookID != target {
		t.Fatalf("expected recipe in cookbook %d, got %d", target, detail.CookbookID)
	}
	cookbook, err := store.GetCookbook(ctx, target)
	if err != nil {
		t.Fatalf("GetCookbook failed: %v", err)
	}
	if cookbook.RecipeCount != 1 {
		t.Fatalf("expected recipe count 1, got %d", cookbook.RecipeCount)
	}
}

func TestUsesCounterClampsAtZero(t *testing.T) {
	store, _, cookbookID := newFixture(t)
	ctx := context.Background()
	id := testsupport.MustCreateRecipe(t, store, recipes.NewRecipe{CookbookID: cookbookID, Title: "Toast"})

	uses, err := store.DecrementUses(ctx, id)
	if err != nil || uses != 0 {
		t.Fatalf("decrement from zero: uses=%d err=%v", uses, err)
	}
	for want := 1; want <= 2; want++ {
		uses, err = store.IncrementUses(ctx, id)
		if err != nil || uses != want {
			t.Fatalf("increment: uses=%d err=%v want %d", uses, err, want)
		}
	}
	uses, err = store.DecrementUses(ctx, id)
	if err != nil || uses != 1 {
		t.Fatalf("decrement: uses=%d err=%v", uses, err)
	}
	if _, err := store.IncrementUses(ctx, 1234); !recipes.IsNotFound(err) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if _, err := store.DecrementUses(ctx, 1234); !recipes.IsNotFound(err) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestConcurrentIncrementsAreSerialized(t *testing.T) {
	store, _, cookbookID := newFixture(t)
	ctx := context.Background()
	id := testsupport.MustCreateRecipe(t, store, recipes.NewRecipe{CookbookID: cookbookID, Title: "Popular"})

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.IncrementUses(ctx, id); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("IncrementUses failed: %v", err)
	}
	if detail := mustDetail(t, store, id); detail.Uses != workers {
		t.Fatalf("expected %d uses, got %d", workers, detail.Uses)
	}
}

func TestDeleteRecipeAndCookbookCascade(t *testing.T) {
	store, cfg, cookbookID := newFixture(t)
	ctx := context.Background()
	raw := openRaw(t, cfg)

	var ids []int64
	for _, title := range []string{"One", "Two"} {
		id := testsupport.MustCreateRecipe(t, store, recipes.NewRecipe{
			CookbookID:  cookbookID,
			Title:       title,
			Ingredients: []recipes.IngredientLine{{Name: "Salt"}, {Line: "water"}},
			Steps:       []string{"Mix"},
			Notes:       "note",
			Tags:        []string{"Basic"},
		})
		if err := store.AddLike(ctx, id, "Kim"); err != nil {
			t.Fatalf("AddLike failed: %v", err)
		}
		ids = append(ids, id)
	}

	if err := store.DeleteRecipe(ctx, ids[0]); err != nil {
		t.Fatalf("DeleteRecipe failed: %v", err)
	}
	if _, err := store.GetRecipe(ctx, ids[0]); !recipes.IsNotFound(err) {
		t.Fatalf("expected deleted recipe to be gone, got %v", err)
	}
	if err := store.DeleteRecipe(ctx, ids[0]); !recipes.IsNotFound(err) {
		t.Fatalf("expected not_found on second delete, got %v", err)
	}

	if err := store.DeleteCookbook(ctx, cookbookID); err != nil {
		t.Fatalf("DeleteCookbook failed: %v", err)
	}
	for _, table := range []string{"recipes", "ingredients", "steps", "notes", "recipe_tags", "likes"} {
		if got := countRows(t, raw, "SELECT COUNT(1) FROM "+table); got != 0 {
			t.Fatalf("expected %s to be empty after cascade, found %d rows", table, got)
		}
	}
	report, err := store.CheckIntegrity(ctx)
	if err != nil {
		t.Fatalf("CheckIntegrity failed: %v", err)
	}
	if !report.Clean() {
		t.Fatalf("expected clean integrity report, got %#v", report)
	}
	if err := store.DeleteCookbook(ctx, cookbookID); !recipes.IsNotFound(err) {
		t.Fatalf("expected not_found on second cookbook delete, got %v", err)
	}
}

func TestCookbookLifecycle(t *testing.T) {
	store, _, cookbookID := newFixture(t)
	ctx := context.Background()

	if err := store.RenameCookbook(ctx, cookbookID, "  Weekends  "); err != nil {
		t.Fatalf("RenameCookbook failed: %v", err)
	}
	cookbook, err := store.GetCookbook(ctx, cookbookID)
	if err != nil {
		t.Fatalf("GetCookbook failed: %v", err)
	}
	if cookbook.Name != "Weekends" || cookbook.RecipeCount != 0 {
		t.Fatalf("unexpected cookbook: %#v", cookbook)
	}
	if err := store.RenameCookbook(ctx, 999, "X"); !recipes.IsNotFound(err) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if err := store.RenameCookbook(ctx, cookbookID, ""); !recipes.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := store.GetCookbook(ctx, 999); !recipes.IsNotFound(err) {
		t.Fatalf("expected not_found, got %v", err)
	}

	later := testsupport.MustCreateCookbook(t, store, "Later")
	cookbooks, err := store.ListCookbooks(ctx)
	if err != nil {
		t.Fatalf("ListCookbooks failed: %v", err)
	}
	var ids []int64
	for _, c := range cookbooks {
		ids = append(ids, c.ID)
	}
	// The seeded default cookbook comes first.
	if len(ids) != 3 || ids[1] != cookbookID || ids[2] != later {
		t.Fatalf("expected creation order, got %v", ids)
	}
}
