package recipes_test

import (
	"context"
	"slices"
	"testing"

	"recipebox/internal/recipes"
	"recipebox/internal/testsupport"
)

func TestTagsAreTrimmedIdempotentAndExact(t *testing.T) {
	store, cfg, cookbookID := newFixture(t)
	ctx := context.Background()
	id := testsupport.MustCreateRecipe(t, store, recipes.NewRecipe{CookbookID: cookbookID, Title: "Soup"})

	for _, name := range []string{" Dinner ", "Dinner", "dinner"} {
		if err := store.AddTag(ctx, id, name); err != nil {
			t.Fatalf("AddTag(%q) failed: %v", name, err)
		}
	}
	detail := mustDetail(t, store, id)
	if !slices.Equal(detail.Tags, []string{"dinner", "Dinner"}) && !slices.Equal(detail.Tags, []string{"Dinner", "dinner"}) {
		t.Fatalf("expected case-distinct tags, got %v", detail.Tags)
	}

	raw := openRaw(t, cfg)
	if got := countRows(t, raw, "SELECT COUNT(1) FROM recipe_tags WHERE recipe_id = ?", id); got != 2 {
		t.Fatalf("expected two tag links, got %d", got)
	}

	if err := store.AddTag(ctx, id, "   "); !recipes.IsValidation(err) {
		t.Fatalf("expected validation error for blank tag, got %v", err)
	}
	if err := store.AddTag(ctx, 424242, "Dinner"); !recipes.IsNotFound(err) {
		t.Fatalf("expected not_found for missing recipe, got %v", err)
	}
}

func TestRemoveTagIsNoOpWhenAbsent(t *testing.T) {
	store, _, cookbookID := newFixture(t)
	ctx := context.Background()
	id := testsupport.MustCreateRecipe(t, store, recipes.NewRecipe{
		CookbookID: cookbookID,
		Title:      "Salad",
		Tags:       []string{"Lunch", "Quick"},
	})

	if err := store.RemoveTag(ctx, id, "never-created"); err != nil {
		t.Fatalf("RemoveTag of unknown tag should succeed, got %v", err)
	}
	if err := store.RemoveTag(ctx, id, "Lunch"); err != nil {
		t.Fatalf("RemoveTag failed: %v", err)
	}
	if err := store.RemoveTag(ctx, id, "Lunch"); err != nil {
		t.Fatalf("second RemoveTag should be a no-op, got %v", err)
	}
	if detail := mustDetail(t, store, id); !slices.Equal(detail.Tags, []string{"Quick"}) {
		t.Fatalf("unexpected tags after removal: %v", detail.Tags)
	}
	if err := store.RemoveTag(ctx, 9999, "Quick"); !recipes.IsNotFound(err) {
		t.Fatalf("expected not_found for missing recipe, got %v", err)
	}

	// Unlinked tags stay known.
	names, err := store.ListTagNames(ctx)
	if err != nil {
		t.Fatalf("ListTagNames failed: %v", err)
	}
	if !slices.Equal(names, []string{"Lunch", "Quick"}) {
		t.Fatalf("unexpected tag names: %v", names)
	}
}

func TestListTagNamesIsCaseInsensitivelySorted(t *testing.T) {
	store, _, cookbookID := newFixture(t)
	ctx := context.Background()
	id := testsupport.MustCreateRecipe(t, store, recipes.NewRecipe{CookbookID: cookbookID, Title: "Pie"})

	for _, name := range []string{"cherry", "Banana", "apple"} {
		if err := store.AddTag(ctx, id, name); err != nil {
			t.Fatalf("AddTag failed: %v", err)
		}
	}
	names, err := store.ListTagNames(ctx)
	if err != nil {
		t.Fatalf("ListTagNames failed: %v", err)
	}
	if !slices.Equal(names, []string{"apple", "Banana", "cherry"}) {
		t.Fatalf("unexpected order: %v", names)
	}
}

func TestLikesAreUniquePerName(t *testing.T) {
	store, cfg, cookbookID := newFixture(t)
	ctx := context.Background()
	id := testsupport.MustCreateRecipe(t, store, recipes.NewRecipe{CookbookID: cookbookID, Title: "Stew"})

	for _, name := range []string{"Alex", " Alex ", "Sam"} {
		if err := store.AddLike(ctx, id, name); err != nil {
			t.Fatalf("AddLike(%q) failed: %v", name, err)
		}
	}
	raw := openRaw(t, cfg)
	if got := countRows(t, raw, "SELECT COUNT(1) FROM likes WHERE recipe_id = ? AND name = 'Alex'", id); got != 1 {
		t.Fatalf("expected one Alex like, got %d", got)
	}
	if detail := mustDetail(t, store, id); !slices.Equal(detail.LikedBy, []string{"Alex", "Sam"}) {
		t.Fatalf("unexpected likers: %v", detail.LikedBy)
	}

	if err := store.RemoveLike(ctx, id, "Alex"); err != nil {
		t.Fatalf("RemoveLike failed: %v", err)
	}
	if err := store.RemoveLike(ctx, id, "Nobody"); err != nil {
		t.Fatalf("RemoveLike of absent like should succeed, got %v", err)
	}
	if detail := mustDetail(t, store, id); !slices.Equal(detail.LikedBy, []string{"Sam"}) {
		t.Fatalf("unexpected likers after removal: %v", detail.LikedBy)
	}

	if err := store.AddLike(ctx, id, ""); !recipes.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := store.AddLike(ctx, 777, "Alex"); !recipes.IsNotFound(err) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if err := store.RemoveLike(ctx, 777, "Alex"); !recipes.IsNotFound(err) {
		t.Fatalf("expected not_found, got %v", err)
	}
}
