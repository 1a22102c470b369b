package api

import (
	"time"

	"recipebox/internal/recipes"
)

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// FromCookbook converts a store cookbook into its DTO.
func FromCookbook(c recipes.Cookbook) Cookbook {
	return Cookbook{
		ID:          c.ID,
		Name:        c.Name,
		CreatedAt:   formatTimestamp(c.CreatedAt),
		RecipeCount: c.RecipeCount,
	}
}

// FromSummary converts a listing row into its DTO.
func FromSummary(r recipes.RecipeSummary) RecipeSummary {
	return RecipeSummary{
		ID:           r.ID,
		CookbookID:   r.CookbookID,
		Title:        r.Title,
		Description:  r.Description,
		Author:       r.Author,
		PhotoDataURL: r.Photo,
		Uses:         r.Uses,
		Servings:     r.Servings,
		CreatedAt:    formatTimestamp(r.CreatedAt),
		Tags:         nonNil(r.Tags),
		LikedBy:      nonNil(r.LikedBy),
		Ingredients:  nonNil(r.Ingredients),
	}
}

func fromSummaries(rows []recipes.RecipeSummary) []RecipeSummary {
	out := make([]RecipeSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromSummary(row))
	}
	return out
}

// FromDetail converts a full recipe into its DTO.
func FromDetail(r recipes.RecipeDetail) RecipeDetail {
	ingredients := make([]IngredientEntry, 0, len(r.Ingredients))
	for _, line := range r.Ingredients {
		ingredients = append(ingredients, fromIngredientLine(line))
	}
	return RecipeDetail{
		ID:           r.ID,
		CookbookID:   r.CookbookID,
		Title:        r.Title,
		Description:  r.Description,
		Author:       r.Author,
		PhotoDataURL: r.Photo,
		Uses:         r.Uses,
		Servings:     r.Servings,
		CreatedAt:    formatTimestamp(r.CreatedAt),
		Ingredients:  ingredients,
		Steps:        nonNil(r.Steps),
		Notes:        r.Notes,
		Tags:         nonNil(r.Tags),
		LikedBy:      nonNil(r.LikedBy),
	}
}

func fromIngredientLine(line recipes.IngredientLine) IngredientEntry {
	return IngredientEntry{
		Line:     line.Line,
		Quantity: line.Quantity,
		Unit:     line.Unit,
		Name:     line.Name,
	}
}

func toIngredientLines(entries []IngredientEntry) []recipes.IngredientLine {
	out := make([]recipes.IngredientLine, 0, len(entries))
	for _, entry := range entries {
		out = append(out, recipes.IngredientLine{
			Line:     entry.Line,
			Quantity: entry.Quantity,
			Unit:     entry.Unit,
			Name:     entry.Name,
		})
	}
	return out
}

func toNewRecipe(req CreateRecipeRequest) recipes.NewRecipe {
	return recipes.NewRecipe{
		CookbookID:  req.CookbookID,
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
		Photo:       req.PhotoDataURL,
		Servings:    req.Servings,
		Ingredients: toIngredientLines(req.Ingredients),
		Steps:       req.Steps,
		Notes:       req.Notes,
		Tags:        req.Tags,
	}
}

func optionalPtr[T any](o Optional[T]) *T {
	if !o.Set {
		return nil
	}
	value := o.Value
	return &value
}

// toPatch maps present fields onto a store patch. Null clears text and list
// fields to their empty value and clears the photo; null on required fields is
// rejected during validation before this runs.
func toPatch(req UpdateRecipeRequest) recipes.RecipePatch {
	patch := recipes.RecipePatch{
		CookbookID:  optionalPtr(req.CookbookID),
		Title:       optionalPtr(req.Title),
		Description: optionalPtr(req.Description),
		Author:      optionalPtr(req.Author),
		Servings:    optionalPtr(req.Servings),
		Steps:       optionalPtr(req.Steps),
		Notes:       optionalPtr(req.Notes),
		Tags:        optionalPtr(req.Tags),
	}
	if req.PhotoDataURL.Set {
		patch.SetPhoto = true
		if req.PhotoDataURL.Present() {
			patch.Photo = optionalPtr(req.PhotoDataURL)
		}
	}
	if req.Ingredients.Set {
		lines := toIngredientLines(req.Ingredients.Value)
		patch.Ingredients = &lines
	}
	return patch
}
