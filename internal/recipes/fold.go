package recipes

import (
	"database/sql/driver"

	"modernc.org/sqlite"

	"recipebox/internal/textutil"
)

// foldFunction is the SQL name of textutil.Fold. Search compares fold(column)
// against a folded term so both sides agree beyond ASCII.
const foldFunction = "fold"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(foldFunction, 1, sqlFold)
}

func sqlFold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return textutil.Fold(v), nil
	case []byte:
		return textutil.Fold(string(v)), nil
	default:
		return v, nil
	}
}
