package recipes

import (
	"strconv"
	"strings"
	"time"
)

// Cookbook is a named collection of recipes.
type Cookbook struct {
	ID          int64
	Name        string
	CreatedAt   time.Time
	RecipeCount int
}

// IngredientLine is one ingredient row. A bare line has only Line set; a
// structured line carries any of Quantity, Unit, or Name as well.
type IngredientLine struct {
	Line     string
	Quantity *float64
	Unit     string
	Name     string
}

// Structured reports whether any structured field is present.
func (l IngredientLine) Structured() bool {
	return l.Quantity != nil || strings.TrimSpace(l.Unit) != "" || strings.TrimSpace(l.Name) != ""
}

// ComposeLine renders "quantity unit name" from the structured fields.
func (l IngredientLine) ComposeLine() string {
	parts := make([]string, 0, 3)
	if l.Quantity != nil {
		parts = append(parts, strconv.FormatFloat(*l.Quantity, 'f', -1, 64))
	}
	if unit := strings.TrimSpace(l.Unit); unit != "" {
		parts = append(parts, unit)
	}
	if name := strings.TrimSpace(l.Name); name != "" {
		parts = append(parts, name)
	}
	return strings.Join(parts, " ")
}

// RecipeSummary is the listing view of a recipe.
type RecipeSummary struct {
	ID          int64
	CookbookID  int64
	Title       string
	Description string
	Author      string
	Photo       *string
	Uses        int
	Servings    int
	CreatedAt   time.Time
	Tags        []string
	LikedBy     []string
	// Ingredients holds the distinct canonical catalog names the recipe uses,
	// in first-use order.
	Ingredients []string
}

// RecipeDetail is the full view of one recipe.
type RecipeDetail struct {
	ID          int64
	CookbookID  int64
	Title       string
	Description string
	Author      string
	Photo       *string
	Uses        int
	Servings    int
	CreatedAt   time.Time
	Ingredients []IngredientLine
	Steps       []string
	Notes       string
	Tags        []string
	LikedBy     []string
}

// NewRecipe is the payload for CreateRecipe.
type NewRecipe struct {
	CookbookID  int64
	Title       string
	Description string
	Author      string
	Photo       *string
	// Servings defaults to 1 when zero.
	Servings    int
	Ingredients []IngredientLine
	Steps       []string
	Notes       string
	Tags        []string
}

// RecipePatch is a sparse update: nil fields are left untouched. List fields
// replace the stored list wholesale when non-nil.
type RecipePatch struct {
	CookbookID  *int64
	Title       *string
	Description *string
	Author      *string
	// SetPhoto selects whether Photo is applied; a nil Photo clears it.
	SetPhoto    bool
	Photo       *string
	Servings    *int
	Ingredients *[]IngredientLine
	Steps       *[]string
	Notes       *string
	Tags        *[]string
}

// Empty reports whether the patch touches nothing.
func (p RecipePatch) Empty() bool {
	return p.CookbookID == nil && p.Title == nil && p.Description == nil && p.Author == nil &&
		!p.SetPhoto && p.Servings == nil && p.Ingredients == nil && p.Steps == nil &&
		p.Notes == nil && p.Tags == nil
}

// IntegrityReport counts child rows whose owner no longer exists. A healthy
// store reports zero everywhere.
type IntegrityReport struct {
	OrphanRecipes     int
	OrphanIngredients int
	OrphanSteps       int
	OrphanNotes       int
	OrphanTagLinks    int
	OrphanLikes       int
}

// Clean reports whether no orphan rows exist.
func (r IntegrityReport) Clean() bool {
	return r == IntegrityReport{}
}
