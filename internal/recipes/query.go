package recipes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"recipebox/internal/textutil"
)

const recipeColumns = "r.id, r.cookbook_id, r.title, r.description, r.author, r.photo, r.uses, r.servings, r.created_at"

// recipeOrder is the listing order shared by List and Search.
const recipeOrder = " ORDER BY r.title COLLATE NOCASE, r.id"

func scanRecipeSummary(scanner rowScanner) (RecipeSummary, error) {
	var (
		summary    RecipeSummary
		photo      sql.NullString
		createdRaw string
	)
	if err := scanner.Scan(
		&summary.ID,
		&summary.CookbookID,
		&summary.Title,
		&summary.Description,
		&summary.Author,
		&photo,
		&summary.Uses,
		&summary.Servings,
		&createdRaw,
	); err != nil {
		return RecipeSummary{}, err
	}
	summary.Photo = nullStringPtr(photo)
	summary.CreatedAt = parseTime(createdRaw)
	return summary, nil
}

func ensureCookbook(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}, op string, cookbookID int64) error {
	var exists int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM cookbooks WHERE id = ?", cookbookID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundf(op, "cookbook %d not found", cookbookID)
	}
	if err != nil {
		return fmt.Errorf("lookup cookbook %d: %w", cookbookID, err)
	}
	return nil
}

// ListRecipes returns every recipe in the cookbook ordered by title
// (case-insensitive) and then id, each enriched with tags, likers, and
// catalog ingredient names.
func (s *Store) ListRecipes(ctx context.Context, cookbookID int64) ([]RecipeSummary, error) {
	const op = "list recipes"
	var summaries []RecipeSummary
	err := s.withReadTx(ctx, op, func(tx *sql.Tx) error {
		if err := ensureCookbook(ctx, tx, op, cookbookID); err != nil {
			return err
		}
		var err error
		summaries, err = querySummaries(ctx, tx,
			"SELECT "+recipeColumns+" FROM recipes r WHERE r.cookbook_id = ?"+recipeOrder,
			cookbookID,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// SearchRecipes returns recipes in the cookbook whose title, description,
// tags, likers, or ingredients contain term case-insensitively. A blank term
// behaves like ListRecipes; otherwise at most the configured search limit is
// returned, in listing order.
func (s *Store) SearchRecipes(ctx context.Context, cookbookID int64, term string) ([]RecipeSummary, error) {
	const op = "search recipes"
	term = strings.TrimSpace(term)
	if term == "" {
		return s.ListRecipes(ctx, cookbookID)
	}

	pattern := textutil.ContainsPattern(textutil.Fold(term))
	query := "SELECT " + recipeColumns + ` FROM recipes r
WHERE r.cookbook_id = ? AND (
    fold(r.title) LIKE ? ESCAPE '\'
    OR fold(r.description) LIKE ? ESCAPE '\'
    OR EXISTS (
        SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
        WHERE rt.recipe_id = r.id AND fold(t.name) LIKE ? ESCAPE '\'
    )
    OR EXISTS (
        SELECT 1 FROM likes l
        WHERE l.recipe_id = r.id AND fold(l.name) LIKE ? ESCAPE '\'
    )
    OR EXISTS (
        SELECT 1 FROM ingredients i
        LEFT JOIN ingredient_catalog c ON c.id = i.ingredient_id
        WHERE i.recipe_id = r.id
          AND (c.folded_name LIKE ? ESCAPE '\' OR fold(i.line) LIKE ? ESCAPE '\')
    )
)` + recipeOrder + " LIMIT ?"

	var summaries []RecipeSummary
	err := s.withReadTx(ctx, op, func(tx *sql.Tx) error {
		if err := ensureCookbook(ctx, tx, op, cookbookID); err != nil {
			return err
		}
		var err error
		summaries, err = querySummaries(ctx, tx, query,
			cookbookID, pattern, pattern, pattern, pattern, pattern, pattern, s.searchLimit,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func querySummaries(ctx context.Context, tx *sql.Tx, query string, args ...any) ([]RecipeSummary, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	summaries := make([]RecipeSummary, 0)
	for rows.Next() {
		summary, err := scanRecipeSummary(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	rows.Close()

	if err := enrichSummaries(ctx, tx, summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// enrichSummaries fills tags, likers, and ingredient names with one query per
// collection per id batch, never one per recipe.
func enrichSummaries(ctx context.Context, tx *sql.Tx, summaries []RecipeSummary) error {
	if len(summaries) == 0 {
		return nil
	}
	ids := make([]int64, len(summaries))
	index := make(map[int64]*RecipeSummary, len(summaries))
	for i := range summaries {
		summaries[i].Tags = []string{}
		summaries[i].LikedBy = []string{}
		summaries[i].Ingredients = []string{}
		ids[i] = summaries[i].ID
		index[summaries[i].ID] = &summaries[i]
	}

	lookups := []struct {
		name  string
		query string
		apply func(summary *RecipeSummary, value string)
	}{
		{
			name:  "tags",
			query: "SELECT rt.recipe_id, t.name FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id WHERE rt.recipe_id IN (%s) ORDER BY rt.recipe_id, t.name COLLATE NOCASE, t.name",
			apply: func(summary *RecipeSummary, value string) { summary.Tags = append(summary.Tags, value) },
		},
		{
			name:  "likes",
			query: "SELECT recipe_id, name FROM likes WHERE recipe_id IN (%s) ORDER BY recipe_id, id",
			apply: func(summary *RecipeSummary, value string) { summary.LikedBy = appendUnique(summary.LikedBy, value) },
		},
		{
			name:  "ingredient names",
			query: "SELECT i.recipe_id, c.name FROM ingredients i JOIN ingredient_catalog c ON c.id = i.ingredient_id WHERE i.recipe_id IN (%s) ORDER BY i.recipe_id, i.position",
			apply: func(summary *RecipeSummary, value string) {
				summary.Ingredients = appendUnique(summary.Ingredients, value)
			},
		},
	}

	for _, chunk := range chunkIDs(ids) {
		for _, lookup := range lookups {
			if err := collectPairs(ctx, tx, fmt.Sprintf(lookup.query, makePlaceholders(len(chunk))), chunk, func(recipeID int64, value string) {
				if summary, ok := index[recipeID]; ok {
					lookup.apply(summary, value)
				}
			}); err != nil {
				return fmt.Errorf("load %s: %w", lookup.name, err)
			}
		}
	}
	return nil
}

func collectPairs(ctx context.Context, tx *sql.Tx, query string, args []any, fn func(recipeID int64, value string)) error {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			recipeID int64
			value    string
		)
		if err := rows.Scan(&recipeID, &value); err != nil {
			return err
		}
		fn(recipeID, value)
	}
	return rows.Err()
}

// GetRecipe returns the full recipe or a not_found error.
func (s *Store) GetRecipe(ctx context.Context, recipeID int64) (*RecipeDetail, error) {
	const op = "get recipe"
	var detail *RecipeDetail
	err := s.withReadTx(ctx, op, func(tx *sql.Tx) error {
		summary, err := scanRecipeSummary(tx.QueryRowContext(ctx,
			"SELECT "+recipeColumns+" FROM recipes r WHERE r.id = ?", recipeID,
		))
		if errors.Is(err, sql.ErrNoRows) {
			return notFoundf(op, "recipe %d not found", recipeID)
		}
		if err != nil {
			return fmt.Errorf("load recipe: %w", err)
		}
		detail = &RecipeDetail{
			ID:          summary.ID,
			CookbookID:  summary.CookbookID,
			Title:       summary.Title,
			Description: summary.Description,
			Author:      summary.Author,
			Photo:       summary.Photo,
			Uses:        summary.Uses,
			Servings:    summary.Servings,
			CreatedAt:   summary.CreatedAt,
		}
		if detail.Ingredients, err = loadIngredients(ctx, tx, recipeID); err != nil {
			return err
		}
		if detail.Steps, err = loadStrings(ctx, tx, "SELECT instruction FROM steps WHERE recipe_id = ? ORDER BY position", recipeID); err != nil {
			return fmt.Errorf("load steps: %w", err)
		}
		if detail.Tags, err = loadStrings(ctx, tx, "SELECT t.name FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id WHERE rt.recipe_id = ? ORDER BY t.name COLLATE NOCASE, t.name", recipeID); err != nil {
			return fmt.Errorf("load tags: %w", err)
		}
		likers, err := loadStrings(ctx, tx, "SELECT name FROM likes WHERE recipe_id = ? ORDER BY id", recipeID)
		if err != nil {
			return fmt.Errorf("load likes: %w", err)
		}
		detail.LikedBy = make([]string, 0, len(likers))
		for _, name := range likers {
			detail.LikedBy = appendUnique(detail.LikedBy, name)
		}
		err = tx.QueryRowContext(ctx, "SELECT content FROM notes WHERE recipe_id = ?", recipeID).Scan(&detail.Notes)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("load notes: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func loadIngredients(ctx context.Context, tx *sql.Tx, recipeID int64) ([]IngredientLine, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT line, quantity, unit, name FROM ingredients WHERE recipe_id = ? ORDER BY position", recipeID,
	)
	if err != nil {
		return nil, fmt.Errorf("load ingredients: %w", err)
	}
	defer rows.Close()
	lines := make([]IngredientLine, 0)
	for rows.Next() {
		var (
			line     IngredientLine
			quantity sql.NullFloat64
			unit     sql.NullString
			name     sql.NullString
		)
		if err := rows.Scan(&line.Line, &quantity, &unit, &name); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		if quantity.Valid {
			q := quantity.Float64
			line.Quantity = &q
		}
		line.Unit = unit.String
		line.Name = name.String
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ingredients: %w", err)
	}
	return lines, nil
}

func loadStrings(ctx context.Context, tx *sql.Tx, query string, args ...any) ([]string, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	values := make([]string, 0)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}
