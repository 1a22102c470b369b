package recipes

import (
	"context"
	"database/sql"
	"fmt"
)

// orderedTable describes a position-ordered child table owned by a recipe.
type orderedTable[T any] struct {
	name    string
	columns []string
	values  func(row T) []any
}

var ingredientTable = orderedTable[IngredientLine]{
	name:    "ingredients",
	columns: []string{"line", "quantity", "unit", "name"},
	values: func(row IngredientLine) []any {
		return []any{row.Line, nullablePtr(row.Quantity), nullableString(row.Unit), nullableString(row.Name)}
	},
}

var stepTable = orderedTable[string]{
	name:    "steps",
	columns: []string{"instruction"},
	values: func(row string) []any {
		return []any{row}
	},
}

// replaceOrdered deletes every row the recipe owns in table.name and inserts
// rows with position set to each element's index. It must run inside the
// caller's transaction. The returned ids are in input order.
func replaceOrdered[T any](ctx context.Context, tx *sql.Tx, table orderedTable[T], recipeID int64, rows []T) ([]int64, error) {
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE recipe_id = ?", table.name), recipeID); err != nil {
		return nil, fmt.Errorf("clear %s: %w", table.name, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	columns := "recipe_id, position"
	for _, column := range table.columns {
		columns += ", " + column
	}
	insert := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table.name, columns, makePlaceholders(len(table.columns)+2),
	)
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return nil, fmt.Errorf("prepare %s insert: %w", table.name, err)
	}
	defer stmt.Close()

	ids := make([]int64, 0, len(rows))
	for position, row := range rows {
		args := append([]any{recipeID, position}, table.values(row)...)
		res, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return nil, fmt.Errorf("insert %s position %d: %w", table.name, position, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("read %s id: %w", table.name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
