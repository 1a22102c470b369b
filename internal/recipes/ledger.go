package recipes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

func ensureRecipe(ctx context.Context, tx *sql.Tx, op string, recipeID int64) error {
	var exists int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM recipes WHERE id = ?", recipeID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundf(op, "recipe %d not found", recipeID)
	}
	if err != nil {
		return fmt.Errorf("lookup recipe %d: %w", recipeID, err)
	}
	return nil
}

func linkTag(ctx context.Context, tx *sql.Tx, recipeID int64, name string) error {
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO tags (name) VALUES (?) ON CONFLICT(name) DO NOTHING", name,
	); err != nil {
		return fmt.Errorf("insert tag: %w", err)
	}
	var tagID int64
	if err := tx.QueryRowContext(ctx, "SELECT id FROM tags WHERE name = ?", name).Scan(&tagID); err != nil {
		return fmt.Errorf("lookup tag: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO recipe_tags (recipe_id, tag_id) VALUES (?, ?)", recipeID, tagID,
	); err != nil {
		return fmt.Errorf("link tag: %w", err)
	}
	return nil
}

// replaceTags swaps the recipe's tag links for names. Tag rows themselves are
// kept so ListTagNames still reports them.
func replaceTags(ctx context.Context, tx *sql.Tx, recipeID int64, names []string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM recipe_tags WHERE recipe_id = ?", recipeID); err != nil {
		return fmt.Errorf("clear tag links: %w", err)
	}
	for _, name := range names {
		if err := linkTag(ctx, tx, recipeID, name); err != nil {
			return err
		}
	}
	return nil
}

// cleanLabels trims each label, rejects blanks, and drops exact duplicates
// while keeping first-seen order.
func cleanLabels(op, field string, labels []string) ([]string, error) {
	out := make([]string, 0, len(labels))
	for i, label := range labels {
		trimmed := strings.TrimSpace(label)
		if trimmed == "" {
			return nil, invalidf(op, "%s[%d] must not be blank", field, i)
		}
		out = appendUnique(out, trimmed)
	}
	return out, nil
}

// AddTag links the trimmed tag name to the recipe, creating the tag when it
// is new. Linking an already linked tag succeeds without change.
func (s *Store) AddTag(ctx context.Context, recipeID int64, name string) error {
	const op = "add tag"
	name = strings.TrimSpace(name)
	if name == "" {
		return invalidf(op, "tag name must not be blank")
	}
	return s.withTx(ctx, op, func(tx *sql.Tx) error {
		if err := ensureRecipe(ctx, tx, op, recipeID); err != nil {
			return err
		}
		return linkTag(ctx, tx, recipeID, name)
	})
}

// RemoveTag unlinks the tag from the recipe. Unknown or unlinked tags are a no-op.
func (s *Store) RemoveTag(ctx context.Context, recipeID int64, name string) error {
	const op = "remove tag"
	name = strings.TrimSpace(name)
	return s.withTx(ctx, op, func(tx *sql.Tx) error {
		if err := ensureRecipe(ctx, tx, op, recipeID); err != nil {
			return err
		}
		if name == "" {
			return nil
		}
		_, err := tx.ExecContext(ctx,
			"DELETE FROM recipe_tags WHERE recipe_id = ? AND tag_id IN (SELECT id FROM tags WHERE name = ?)",
			recipeID, name,
		)
		return err
	})
}

// ListTagNames returns every known tag name sorted case-insensitively.
func (s *Store) ListTagNames(ctx context.Context) ([]string, error) {
	const op = "list tags"
	rows, err := s.db.QueryContext(ensureContext(ctx), "SELECT name FROM tags ORDER BY name COLLATE NOCASE, name")
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()
	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, storageError(op, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(op, err)
	}
	return names, nil
}

// AddLike records that name likes the recipe. Repeating a like is a no-op.
func (s *Store) AddLike(ctx context.Context, recipeID int64, name string) error {
	const op = "add like"
	name = strings.TrimSpace(name)
	if name == "" {
		return invalidf(op, "liker name must not be blank")
	}
	return s.withTx(ctx, op, func(tx *sql.Tx) error {
		if err := ensureRecipe(ctx, tx, op, recipeID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO likes (recipe_id, name, created_at) VALUES (?, ?, ?) ON CONFLICT(recipe_id, name) DO NOTHING",
			recipeID, name, formatTime(time.Now()),
		)
		return err
	})
}

// RemoveLike deletes the like when present.
func (s *Store) RemoveLike(ctx context.Context, recipeID int64, name string) error {
	const op = "remove like"
	name = strings.TrimSpace(name)
	return s.withTx(ctx, op, func(tx *sql.Tx) error {
		if err := ensureRecipe(ctx, tx, op, recipeID); err != nil {
			return err
		}
		if name == "" {
			return nil
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM likes WHERE recipe_id = ? AND name = ?", recipeID, name)
		return err
	})
}
