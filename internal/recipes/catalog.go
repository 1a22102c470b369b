package recipes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"recipebox/internal/textutil"
)

type catalogEntry struct {
	id     int64
	name   string
	folded string
}

// resolveIngredient returns the catalog id for name, creating the entry with
// the given spelling when no case-insensitive match exists. The first stored
// spelling stays canonical.
func resolveIngredient(ctx context.Context, tx *sql.Tx, name string) (catalogEntry, error) {
	name = textutil.NormalizeName(name)
	folded := textutil.Fold(name)
	if folded == "" {
		return catalogEntry{}, errors.New("resolve ingredient: blank name")
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO ingredient_catalog (name, folded_name) VALUES (?, ?) ON CONFLICT(folded_name) DO NOTHING",
		name, folded,
	); err != nil {
		return catalogEntry{}, fmt.Errorf("insert catalog entry: %w", err)
	}
	entry := catalogEntry{folded: folded}
	if err := tx.QueryRowContext(ctx,
		"SELECT id, name FROM ingredient_catalog WHERE folded_name = ?", folded,
	).Scan(&entry.id, &entry.name); err != nil {
		return catalogEntry{}, fmt.Errorf("lookup catalog entry: %w", err)
	}
	return entry, nil
}

// catalogLinker links the ingredient lines of one write to catalog entries.
// The catalog is loaded at most once per transaction for bare-line matching.
type catalogLinker struct {
	tx      *sql.Tx
	entries []catalogEntry
	loaded  bool
}

func newCatalogLinker(tx *sql.Tx) *catalogLinker {
	return &catalogLinker{tx: tx}
}

func (l *catalogLinker) resolve(ctx context.Context, name string) (catalogEntry, error) {
	entry, err := resolveIngredient(ctx, l.tx, name)
	if err != nil {
		return catalogEntry{}, err
	}
	if l.loaded && !l.known(entry.id) {
		l.entries = append(l.entries, entry)
	}
	return entry, nil
}

func (l *catalogLinker) known(id int64) bool {
	for _, entry := range l.entries {
		if entry.id == id {
			return true
		}
	}
	return false
}

func (l *catalogLinker) load(ctx context.Context) error {
	if l.loaded {
		return nil
	}
	rows, err := l.tx.QueryContext(ctx, "SELECT id, name, folded_name FROM ingredient_catalog ORDER BY id")
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var entry catalogEntry
		if err := rows.Scan(&entry.id, &entry.name, &entry.folded); err != nil {
			return fmt.Errorf("scan catalog entry: %w", err)
		}
		l.entries = append(l.entries, entry)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate catalog: %w", err)
	}
	l.loaded = true
	return nil
}

// match finds the longest catalog name occurring in line as a whole word.
// Ties go to the older entry.
func (l *catalogLinker) match(ctx context.Context, line string) (catalogEntry, bool, error) {
	if err := l.load(ctx); err != nil {
		return catalogEntry{}, false, err
	}
	folded := textutil.Fold(line)
	var (
		best  catalogEntry
		found bool
	)
	for _, entry := range l.entries {
		if len(entry.folded) <= len(best.folded) {
			continue
		}
		if textutil.ContainsWord(folded, entry.folded) {
			best = entry
			found = true
		}
	}
	return best, found, nil
}

// linkLine stores the catalog id for one ingredient row. Lines with a name
// link by name; the rest link to the best catalog match in their text, or
// register the trimmed line itself when nothing matches.
func (l *catalogLinker) linkLine(ctx context.Context, lineID int64, line IngredientLine) error {
	var (
		entry catalogEntry
		err   error
	)
	switch {
	case strings.TrimSpace(line.Name) != "":
		entry, err = l.resolve(ctx, line.Name)
	case textutil.IsBlank(line.Line):
		return nil
	default:
		var ok bool
		entry, ok, err = l.match(ctx, line.Line)
		if err == nil && !ok {
			entry, err = l.resolve(ctx, line.Line)
		}
	}
	if err != nil {
		return err
	}
	if _, err := l.tx.ExecContext(ctx,
		"UPDATE ingredients SET ingredient_id = ? WHERE id = ?", entry.id, lineID,
	); err != nil {
		return fmt.Errorf("link ingredient %d: %w", lineID, err)
	}
	return nil
}

// ResolveIngredient returns the catalog id for name, creating the entry when
// needed. "Sugar", "sugar" and "SUGAR" share one id.
func (s *Store) ResolveIngredient(ctx context.Context, name string) (int64, error) {
	const op = "resolve ingredient"
	if textutil.IsBlank(name) {
		return 0, invalidf(op, "ingredient name must not be blank")
	}
	var id int64
	err := s.withTx(ctx, op, func(tx *sql.Tx) error {
		entry, err := resolveIngredient(ctx, tx, name)
		id = entry.id
		return err
	})
	return id, err
}

// SuggestionQuery filters IngredientSuggestions. Zero values mean no filter.
type SuggestionQuery struct {
	CookbookID int64
	Query      string
	Limit      int
}

// IngredientSuggestions returns canonical catalog names referenced by at least
// one ingredient line, in catalog insertion order, each name at most once.
func (s *Store) IngredientSuggestions(ctx context.Context, q SuggestionQuery) ([]string, error) {
	const op = "ingredient suggestions"
	ctx = ensureContext(ctx)

	var (
		where strings.Builder
		args  []any
	)
	where.WriteString("EXISTS (SELECT 1 FROM ingredients i JOIN recipes r ON r.id = i.recipe_id WHERE i.ingredient_id = c.id")
	if q.CookbookID > 0 {
		where.WriteString(" AND r.cookbook_id = ?")
		args = append(args, q.CookbookID)
	}
	where.WriteString(")")
	if folded := textutil.Fold(q.Query); folded != "" {
		where.WriteString(` AND c.folded_name LIKE ? ESCAPE '\'`)
		args = append(args, textutil.ContainsPattern(folded))
	}
	query := "SELECT c.name FROM ingredient_catalog c WHERE " + where.String() + " ORDER BY c.id"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
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
