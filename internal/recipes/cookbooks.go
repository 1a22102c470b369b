package recipes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipebox/internal/logging"
)

func scanCookbook(scanner rowScanner) (Cookbook, error) {
	var (
		cookbook   Cookbook
		createdRaw string
	)
	if err := scanner.Scan(&cookbook.ID, &cookbook.Name, &createdRaw, &cookbook.RecipeCount); err != nil {
		return Cookbook{}, err
	}
	cookbook.CreatedAt = parseTime(createdRaw)
	return cookbook, nil
}

const cookbookSelect = `SELECT c.id, c.name, c.created_at,
    (SELECT COUNT(1) FROM recipes r WHERE r.cookbook_id = c.id)
FROM cookbooks c`

// ListCookbooks returns every cookbook ordered by creation time, oldest first.
func (s *Store) ListCookbooks(ctx context.Context) ([]Cookbook, error) {
	const op = "list cookbooks"
	rows, err := s.db.QueryContext(ensureContext(ctx), cookbookSelect+" ORDER BY c.created_at, c.id")
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()
	cookbooks := make([]Cookbook, 0)
	for rows.Next() {
		cookbook, err := scanCookbook(rows)
		if err != nil {
			return nil, storageError(op, err)
		}
		cookbooks = append(cookbooks, cookbook)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(op, err)
	}
	return cookbooks, nil
}

// GetCookbook returns one cookbook or a not_found error.
func (s *Store) GetCookbook(ctx context.Context, id int64) (*Cookbook, error) {
	const op = "get cookbook"
	cookbook, err := scanCookbook(s.db.QueryRowContext(ensureContext(ctx), cookbookSelect+" WHERE c.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundf(op, "cookbook %d not found", id)
	}
	if err != nil {
		return nil, storageError(op, err)
	}
	return &cookbook, nil
}

// CreateCookbook inserts a cookbook with the trimmed name.
func (s *Store) CreateCookbook(ctx context.Context, name string) (*Cookbook, error) {
	const op = "create cookbook"
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidf(op, "cookbook name must not be blank")
	}
	created := &Cookbook{Name: name, CreatedAt: time.Now().UTC()}
	err := s.withTx(ctx, op, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO cookbooks (name, created_at) VALUES (?, ?)", name, formatTime(created.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("insert cookbook: %w", err)
		}
		created.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("cookbook created", logging.CookbookID(created.ID))
	return created, nil
}

// RenameCookbook sets a new trimmed name on the cookbook.
func (s *Store) RenameCookbook(ctx context.Context, id int64, name string) error {
	const op = "rename cookbook"
	name = strings.TrimSpace(name)
	if name == "" {
		return invalidf(op, "cookbook name must not be blank")
	}
	return s.withTx(ctx, op, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "UPDATE cookbooks SET name = ? WHERE id = ?", name, id)
		if err != nil {
			return fmt.Errorf("rename cookbook: %w", err)
		}
		return requireAffected(res, op, "cookbook", id)
	})
}

// DeleteCookbook removes the cookbook and, by cascade, all of its recipes and
// their children.
func (s *Store) DeleteCookbook(ctx context.Context, id int64) error {
	const op = "delete cookbook"
	err := s.withTx(ctx, op, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM cookbooks WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete cookbook: %w", err)
		}
		return requireAffected(res, op, "cookbook", id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("cookbook deleted", logging.CookbookID(id))
	return nil
}

func requireAffected(res sql.Result, op, entity string, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return notFoundf(op, "%s %d not found", entity, id)
	}
	return nil
}
