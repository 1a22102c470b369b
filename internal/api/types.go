package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Cookbook describes a cookbook in a transport-friendly format.
type Cookbook struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CreatedAt   string `json:"createdAt,omitempty"`
	RecipeCount int    `json:"recipeCount"`
}

// RecipeSummary is one row of a recipe listing or search.
type RecipeSummary struct {
	ID           int64    `json:"id"`
	CookbookID   int64    `json:"cookbookId"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Author       string   `json:"author"`
	PhotoDataURL *string  `json:"photoDataUrl"`
	Uses         int      `json:"uses"`
	Servings     int      `json:"servings"`
	CreatedAt    string   `json:"createdAt,omitempty"`
	Tags         []string `json:"tags"`
	LikedBy      []string `json:"likedBy"`
	Ingredients  []string `json:"ingredients"`
}

// RecipeDetail is the full recipe view.
type RecipeDetail struct {
	ID           int64             `json:"id"`
	CookbookID   int64             `json:"cookbookId"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Author       string            `json:"author"`
	PhotoDataURL *string           `json:"photoDataUrl"`
	Uses         int               `json:"uses"`
	Servings     int               `json:"servings"`
	CreatedAt    string            `json:"createdAt,omitempty"`
	Ingredients  []IngredientEntry `json:"ingredients"`
	Steps        []string          `json:"steps"`
	Notes        string            `json:"notes"`
	Tags         []string          `json:"tags"`
	LikedBy      []string          `json:"likedBy"`
}

// CreateRecipeRequest is the createRecipe payload.
type CreateRecipeRequest struct {
	CookbookID   int64             `json:"cookbookId"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	Author       string            `json:"author,omitempty"`
	PhotoDataURL *string           `json:"photoDataUrl,omitempty"`
	Servings     int               `json:"servings,omitempty"`
	Ingredients  []IngredientEntry `json:"ingredients,omitempty"`
	Steps        []string          `json:"steps,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
}

// UpdateRecipeRequest is the sparse updateRecipe payload. Absent fields are
// left untouched; list fields replace the stored list when present.
type UpdateRecipeRequest struct {
	CookbookID   Optional[int64]             `json:"cookbookId"`
	Title        Optional[string]            `json:"title"`
	Description  Optional[string]            `json:"description"`
	Author       Optional[string]            `json:"author"`
	PhotoDataURL Optional[string]            `json:"photoDataUrl"`
	Servings     Optional[int]               `json:"servings"`
	Ingredients  Optional[[]IngredientEntry] `json:"ingredients"`
	Steps        Optional[[]string]          `json:"steps"`
	Notes        Optional[string]            `json:"notes"`
	Tags         Optional[[]string]          `json:"tags"`
}

// SuggestionRequest filters ingredient suggestions. Nil fields mean no filter.
type SuggestionRequest struct {
	CookbookID *int64 `json:"cookbookId,omitempty"`
	Query      string `json:"query,omitempty"`
	Limit      *int   `json:"limit,omitempty"`
}

// CreatedResponse carries the id of a newly created recipe.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// UsesResponse carries the use counter after an increment or decrement.
type UsesResponse struct {
	Uses int `json:"uses"`
}
