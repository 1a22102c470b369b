package recipes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipebox/internal/logging"
	"recipebox/internal/textutil"
)

// normalizeIngredients trims every line and composes a display line for
// entries given only structured fields.
func normalizeIngredients(op string, lines []IngredientLine) ([]IngredientLine, error) {
	out := make([]IngredientLine, 0, len(lines))
	for i, line := range lines {
		line.Line = strings.TrimSpace(line.Line)
		line.Unit = strings.TrimSpace(line.Unit)
		line.Name = textutil.NormalizeName(line.Name)
		if line.Line == "" {
			if line.Name == "" {
				return nil, invalidf(op, "ingredients[%d] needs a line or a name", i)
			}
			line.Line = line.ComposeLine()
		}
		out = append(out, line)
	}
	return out, nil
}

func normalizeSteps(op string, steps []string) ([]string, error) {
	out := make([]string, 0, len(steps))
	for i, step := range steps {
		step = strings.TrimSpace(step)
		if step == "" {
			return nil, invalidf(op, "steps[%d] must not be blank", i)
		}
		out = append(out, step)
	}
	return out, nil
}

func writeIngredients(ctx context.Context, tx *sql.Tx, recipeID int64, lines []IngredientLine) error {
	ids, err := replaceOrdered(ctx, tx, ingredientTable, recipeID, lines)
	if err != nil {
		return err
	}
	linker := newCatalogLinker(tx)
	for i, id := range ids {
		if err := linker.linkLine(ctx, id, lines[i]); err != nil {
			return err
		}
	}
	return nil
}

// writeNotes replaces the recipe's note. Blank notes leave no row behind.
func writeNotes(ctx context.Context, tx *sql.Tx, recipeID int64, notes string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM notes WHERE recipe_id = ?", recipeID); err != nil {
		return fmt.Errorf("clear notes: %w", err)
	}
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO notes (recipe_id, content) VALUES (?, ?)", recipeID, notes); err != nil {
		return fmt.Errorf("insert notes: %w", err)
	}
	return nil
}

// CreateRecipe inserts the recipe and all of its children in one
// transaction and returns the new id.
func (s *Store) CreateRecipe(ctx context.Context, in NewRecipe) (int64, error) {
	const op = "create recipe"
	if in.CookbookID <= 0 {
		return 0, invalidf(op, "cookbook id must be positive")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return 0, invalidf(op, "title must not be blank")
	}
	servings := in.Servings
	if servings == 0 {
		servings = 1
	}
	if servings < 0 {
		return 0, invalidf(op, "servings must be positive")
	}
	ingredients, err := normalizeIngredients(op, in.Ingredients)
	if err != nil {
		return 0, err
	}
	steps, err := normalizeSteps(op, in.Steps)
	if err != nil {
		return 0, err
	}
	tags, err := cleanLabels(op, "tags", in.Tags)
	if err != nil {
		return 0, err
	}

	var recipeID int64
	err = s.withTx(ctx, op, func(tx *sql.Tx) error {
		if err := ensureCookbook(ctx, tx, op, in.CookbookID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `INSERT INTO recipes
    (cookbook_id, title, description, author, photo, uses, servings, created_at)
VALUES (?, ?, ?, ?, ?, 0, ?, ?)`,
			in.CookbookID,
			title,
			strings.TrimSpace(in.Description),
			strings.TrimSpace(in.Author),
			nullableText(in.Photo),
			servings,
			formatTime(time.Now()),
		)
		if err != nil {
			return fmt.Errorf("insert recipe: %w", err)
		}
		if recipeID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("read recipe id: %w", err)
		}
		if err := writeIngredients(ctx, tx, recipeID, ingredients); err != nil {
			return err
		}
		if _, err := replaceOrdered(ctx, tx, stepTable, recipeID, steps); err != nil {
			return err
		}
		if err := writeNotes(ctx, tx, recipeID, in.Notes); err != nil {
			return err
		}
		return replaceTags(ctx, tx, recipeID, tags)
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("recipe created",
		logging.RecipeID(recipeID),
		logging.CookbookID(in.CookbookID),
		logging.Int("ingredients", len(ingredients)),
		logging.Int("steps", len(steps)),
	)
	return recipeID, nil
}

// UpdateRecipe applies the non-nil fields of patch. List fields are replaced
// wholesale. The recipe must exist.
func (s *Store) UpdateRecipe(ctx context.Context, recipeID int64, patch RecipePatch) error {
	const op = "update recipe"
	var (
		sets []string
		args []any
	)
	if patch.CookbookID != nil {
		if *patch.CookbookID <= 0 {
			return invalidf(op, "cookbook id must be positive")
		}
		sets = append(sets, "cookbook_id = ?")
		args = append(args, *patch.CookbookID)
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return invalidf(op, "title must not be blank")
		}
		sets = append(sets, "title = ?")
		args = append(args, title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, strings.TrimSpace(*patch.Description))
	}
	if patch.Author != nil {
		sets = append(sets, "author = ?")
		args = append(args, strings.TrimSpace(*patch.Author))
	}
	if patch.SetPhoto {
		sets = append(sets, "photo = ?")
		args = append(args, nullableText(patch.Photo))
	}
	if patch.Servings != nil {
		if *patch.Servings <= 0 {
			return invalidf(op, "servings must be positive")
		}
		sets = append(sets, "servings = ?")
		args = append(args, *patch.Servings)
	}

	var (
		ingredients []IngredientLine
		steps       []string
		tags        []string
		err         error
	)
	if patch.Ingredients != nil {
		if ingredients, err = normalizeIngredients(op, *patch.Ingredients); err != nil {
			return err
		}
	}
	if patch.Steps != nil {
		if steps, err = normalizeSteps(op, *patch.Steps); err != nil {
			return err
		}
	}
	if patch.Tags != nil {
		if tags, err = cleanLabels(op, "tags", *patch.Tags); err != nil {
			return err
		}
	}

	err = s.withTx(ctx, op, func(tx *sql.Tx) error {
		if err := ensureRecipe(ctx, tx, op, recipeID); err != nil {
			return err
		}
		if patch.CookbookID != nil {
			if err := ensureCookbook(ctx, tx, op, *patch.CookbookID); err != nil {
				return err
			}
		}
		if len(sets) > 0 {
			query := "UPDATE recipes SET " + strings.Join(sets, ", ") + " WHERE id = ?"
			if _, err := tx.ExecContext(ctx, query, append(args, recipeID)...); err != nil {
				return fmt.Errorf("update recipe: %w", err)
			}
		}
		if patch.Ingredients != nil {
			if err := writeIngredients(ctx, tx, recipeID, ingredients); err != nil {
				return err
			}
		}
		if patch.Steps != nil {
			if _, err := replaceOrdered(ctx, tx, stepTable, recipeID, steps); err != nil {
				return err
			}
		}
		if patch.Notes != nil {
			if err := writeNotes(ctx, tx, recipeID, *patch.Notes); err != nil {
				return err
			}
		}
		if patch.Tags != nil {
			if err := replaceTags(ctx, tx, recipeID, tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("recipe updated", logging.RecipeID(recipeID), logging.Int("fields", len(sets)))
	return nil
}

// IncrementUses adds one to the recipe's use counter and returns the new value.
func (s *Store) IncrementUses(ctx context.Context, recipeID int64) (int, error) {
	return s.adjustUses(ctx, "increment uses", recipeID, 1)
}

// DecrementUses subtracts one from the use counter, never going below zero.
// Decrementing a zero counter succeeds and returns zero.
func (s *Store) DecrementUses(ctx context.Context, recipeID int64) (int, error) {
	return s.adjustUses(ctx, "decrement uses", recipeID, -1)
}

func (s *Store) adjustUses(ctx context.Context, op string, recipeID int64, delta int) (int, error) {
	var uses int
	err := s.withTx(ctx, op, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			"UPDATE recipes SET uses = MAX(uses + ?, 0) WHERE id = ? RETURNING uses", delta, recipeID,
		).Scan(&uses)
		if errors.Is(err, sql.ErrNoRows) {
			return notFoundf(op, "recipe %d not found", recipeID)
		}
		return err
	})
	if err != nil {
		return 0, err
	}
	return uses, nil
}

// DeleteRecipe removes the recipe and, by cascade, all of its children.
func (s *Store) DeleteRecipe(ctx context.Context, recipeID int64) error {
	const op = "delete recipe"
	err := s.withTx(ctx, op, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM recipes WHERE id = ?", recipeID)
		if err != nil {
			return fmt.Errorf("delete recipe: %w", err)
		}
		return requireAffected(res, op, "recipe", recipeID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("recipe deleted", logging.RecipeID(recipeID))
	return nil
}
