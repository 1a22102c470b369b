package recipes_test

import (
	"context"
	"slices"
	"testing"

	"recipebox/internal/recipes"
	"recipebox/internal/testsupport"
)

func TestResolveIngredientIsCaseInsensitive(t *testing.T) {
	store, _, cookbookID := newFixture(t)
	ctx := context.Background()

	first, err := store.ResolveIngredient(ctx, "Sugar")
	if err != nil {
		t.Fatalf("ResolveIngredient failed: %v", err)
	}
	for _, spelling := range []string{"sugar", "SUGAR", "  sUgAr "} {
		id, err := store.ResolveIngredient(ctx, spelling)
		if err != nil {
			t.Fatalf("ResolveIngredient(%q) failed: %v", spelling, err)
		}
		if id != first {
			t.Fatalf("expected %q to resolve to %d, got %d", spelling, first, id)
		}
	}

	testsupport.MustCreateRecipe(t, store, recipes.NewRecipe{
		CookbookID:  cookbookID,
		Title:       "Syrup",
		Ingredients: []recipes.IngredientLine{{Name: "SUGAR"}, {Name: "sugar"}},
	})
	names, err := store.IngredientSuggestions(ctx, recipes.SuggestionQuery{CookbookID: cookbookID})
	if err != nil {
		t.Fatalf("IngredientSuggestions failed: %v", err)
	}
	if !slices.Equal(names, []string{"Sugar"}) {
		t.Fatalf("expected canonical spelling once, got %v", names)
	}

	if _, err := store.ResolveIngredient(ctx, " "); !recipes.IsValidation(err) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}

func TestSuggestionsFromMixedIngredientShapes(t *testing.T) {
	store, _, cookbookID := newFixture(t)
	ctx := context.Background()

	id := testsupport.MustCreateRecipe(t, store, recipes.NewRecipe{
		CookbookID:  cookbookID,
		Title:       "Toast",
		Ingredients: []recipes.IngredientLine{{Name: "Sugar"}, {Line: "butter"}},
		Steps:       []string{"Toast bread"},
	})

	detail := mustDetail(t, store, id)
	if len(detail.Ingredients) != 2 {
		t.Fatalf("expected two ingredients, got %#v", detail.Ingredients)
	}
	if detail.Ingredients[0].Name != "Sugar" || detail.Ingredients[0].Line != "Sugar" {
		t.Fatalf("unexpected first ingredient: %#v", detail.Ingredients[0])
	}
	if detail.Ingredients[1].Line != "butter" || detail.Ingredients[1].Structured() {
		t.Fatalf("unexpected second ingredient: %#v", detail.Ingredients[1])
	}
	if !slices.Equal(detail.Steps, []string{"Toast bread"}) {
		t.Fatalf("unexpected steps: %v", detail.Steps)
	}

	names, err := store.IngredientSuggestions(ctx, recipes.SuggestionQuery{CookbookID: cookbookID})
	if err != nil {
		t.Fatalf("IngredientSuggestions failed: %v", err)
	}
	if !slices.Equal(names, []string{"Sugar", "butter"}) {
		t.Fatalf("unexpected suggestions: %v", names)
	}

	testsupport.MustCreateRecipe(t, store, recipes.NewRecipe{
		CookbookID:  cookbookID,
		Title:       "Lemonade",
		Ingredients: []recipes.IngredientLine{{Name: "sugar"}, {Line: "4 lemons"}},
	})
	names, err = store.IngredientSuggestions(ctx, recipes.SuggestionQuery{CookbookID: cookbookID})
	if err != nil {
		t.Fatalf("IngredientSuggestions failed: %v", err)
	}
	sugarCount := 0
	for _, name := range names {
		if name == "Sugar" || name == "sugar" {
			sugarCount++
		}
	}
	if sugarCount != 1 {
		t.Fatalf("expected exactly one sugar variant, got %v", names)
	}
}

func TestBareLinesLinkToLongestCatalogWord(t *testing.T) {
	store, _, cookbookID := newFixture(t)
	ctx := context.Background()

	testsupport.MustCreateRecipe(t, store, recipes.NewRecipe{
		CookbookID:  cookbookID,
		Title:       "Pantry",
		Ingredients: []recipes.IngredientLine{{Name: "Sugar"}, {Name: "Brown Sugar"}, {Name: "Salt"}},
	})
	id := testsupport.MustCreateRecipe(t, store, recipes.NewRecipe{
		CookbookID: cookbookID,
		Title:      "Cookies",
		Ingredients: []recipes.IngredientLine{
			{Line: "1 cup packed brown sugar"},
			{Line: "a pinch of salted butter"},
		},
	})

	summaries, err := store.ListRecipes(ctx, cookbookID)
	if err != nil {
		t.Fatalf("ListRecipes failed: %v", err)
	}
	var cookies *recipes.RecipeSummary
	for i := range summaries {
		if summaries[i].ID == id {
			cookies = &summaries[i]
		}
	}
	if cookies == nil {
		t.Fatalf("recipe %d missing from listing", id)
	}
	// "salted" must not match "Salt" as a whole word, so the line registers itself.
	want := []string{"Brown Sugar", "a pinch of salted butter"}
	if !slices.Equal(cookies.Ingredients, want) {
		t.Fatalf("expected ingredient names %v, got %v", want, cookies.Ingredients)
	}
}

func TestSuggestionsFilters(t *testing.T) {
	store, _, cookbookID := newFixture(t)
	ctx := context.Background()
	other := testsupport.MustCreateCookbook(t, store, "Baking")

	testsupport.MustCreateRecipe(t, store, recipes.NewRecipe{
		CookbookID:  cookbookID,
		Title:       "Curry",
		Ingredients: []recipes.IngredientLine{{Name: "Cardamom"}, {Name: "Cumin"}, {Name: "Coriander"}},
	})
	testsupport.MustCreateRecipe(t, store, recipes.NewRecipe{
		CookbookID:  other,
		Title:       "Bread",
		Ingredients: []recipes.IngredientLine{{Name: "Flour"}, {Name: "cardamom"}},
	})
	if _, err := store.ResolveIngredient(ctx, "Unused Spice"); err != nil {
		t.Fatalf("ResolveIngredient failed: %v", err)
	}

	cases := []struct {
		name  string
		query recipes.SuggestionQuery
		want  []string
	}{
		{"all cookbooks", recipes.SuggestionQuery{}, []string{"Cardamom", "Cumin", "Coriander", "Flour"}},
		{"one cookbook", recipes.SuggestionQuery{CookbookID: other}, []string{"Cardamom", "Flour"}},
		{"query", recipes.SuggestionQuery{Query: "CU"}, []string{"Cumin"}},
		{"query within cookbook", recipes.SuggestionQuery{CookbookID: other, Query: "o"}, []string{"Cardamom", "Flour"}},
		{"limit", recipes.SuggestionQuery{Limit: 2}, []string{"Cardamom", "Cumin"}},
		{"wildcards are literal", recipes.SuggestionQuery{Query: "%"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			names, err := store.IngredientSuggestions(ctx, tc.query)
			if err != nil {
				t.Fatalf("IngredientSuggestions failed: %v", err)
			}
			if !slices.Equal(names, tc.want) {
				t.Fatalf("got %v want %v", names, tc.want)
			}
		})
	}
}
