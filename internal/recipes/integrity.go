package recipes

import (
	"context"
	"fmt"
)

var orphanQueries = []struct {
	label string
	query string
	field func(*IntegrityReport) *int
}{
	{"recipes", "SELECT COUNT(1) FROM recipes WHERE cookbook_id NOT IN (SELECT id FROM cookbooks)", func(r *IntegrityReport) *int { return &r.OrphanRecipes }},
	{"ingredients", "SELECT COUNT(1) FROM ingredients WHERE recipe_id NOT IN (SELECT id FROM recipes)", func(r *IntegrityReport) *int { return &r.OrphanIngredients }},
	{"steps", "SELECT COUNT(1) FROM steps WHERE recipe_id NOT IN (SELECT id FROM recipes)", func(r *IntegrityReport) *int { return &r.OrphanSteps }},
	{"notes", "SELECT COUNT(1) FROM notes WHERE recipe_id NOT IN (SELECT id FROM recipes)", func(r *IntegrityReport) *int { return &r.OrphanNotes }},
	{"tag links", "SELECT COUNT(1) FROM recipe_tags WHERE recipe_id NOT IN (SELECT id FROM recipes) OR tag_id NOT IN (SELECT id FROM tags)", func(r *IntegrityReport) *int { return &r.OrphanTagLinks }},
	{"likes", "SELECT COUNT(1) FROM likes WHERE recipe_id NOT IN (SELECT id FROM recipes)", func(r *IntegrityReport) *int { return &r.OrphanLikes }},
}

// CheckIntegrity counts child rows whose owner is missing.
func (s *Store) CheckIntegrity(ctx context.Context) (IntegrityReport, error) {
	const op = "check integrity"
	ctx = ensureContext(ctx)
	var report IntegrityReport
	for _, check := range orphanQueries {
		if err := s.db.QueryRowContext(ctx, check.query).Scan(check.field(&report)); err != nil {
			return IntegrityReport{}, storageError(op, fmt.Errorf("count orphan %s: %w", check.label, err))
		}
	}
	return report, nil
}
