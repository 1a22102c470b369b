package recipes

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"
)

//go:embed schema.sql
var schemaSQL string

// columnBackfill is a column added after the first release. Databases created
// by older builds receive it through ALTER TABLE; newer ones already have it.
type columnBackfill struct {
	table      string
	column     string
	definition string
}

var columnBackfills = []columnBackfill{
	{"recipes", "photo", "TEXT"},
	{"recipes", "uses", "INTEGER NOT NULL DEFAULT 0"},
	{"recipes", "servings", "INTEGER NOT NULL DEFAULT 1"},
	{"ingredients", "quantity", "REAL"},
	{"ingredients", "unit", "TEXT"},
	{"ingredients", "name", "TEXT"},
	{"ingredients", "ingredient_id", "INTEGER REFERENCES ingredient_catalog(id) ON DELETE SET NULL"},
	{"likes", "created_at", "TEXT NOT NULL DEFAULT ''"},
}

// Indexes reference backfilled columns, so they are created after the backfill.
var schemaIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_recipes_cookbook ON recipes(cookbook_id)",
	"CREATE INDEX IF NOT EXISTS idx_ingredients_catalog ON ingredients(ingredient_id)",
	"CREATE INDEX IF NOT EXISTS idx_recipe_tags_tag ON recipe_tags(tag_id)",
}

func (s *Store) initSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	for _, backfill := range columnBackfills {
		if err := addColumnIfMissing(ctx, tx, backfill); err != nil {
			return err
		}
	}
	for _, stmt := range schemaIndexes {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	if err := s.seedDefaultCookbook(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

func addColumnIfMissing(ctx context.Context, tx *sql.Tx, backfill columnBackfill) error {
	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", backfill.table, backfill.column, backfill.definition)
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		if isDuplicateColumn(err) {
			return nil
		}
		return fmt.Errorf("add column %s.%s: %w", backfill.table, backfill.column, err)
	}
	return nil
}

func isDuplicateColumn(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "duplicate column name")
}

func (s *Store) seedDefaultCookbook(ctx context.Context, tx *sql.Tx) error {
	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM cookbooks").Scan(&count); err != nil {
		return fmt.Errorf("count cookbooks: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO cookbooks (name, created_at) VALUES (?, ?)",
		s.defaultCookbook, formatTime(time.Now()),
	); err != nil {
		return fmt.Errorf("seed default cookbook: %w", err)
	}
	s.logger.Info("seeded default cookbook", "name", s.defaultCookbook)
	return nil
}
