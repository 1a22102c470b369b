// Package textutil provides text normalization helpers shared by the store and
// the request boundary.
//
// The primary use cases are:
//   - Normalizing user-supplied names (trim, collapse inner whitespace)
//   - Unicode case folding for case-insensitive identity ("Sugar" == "SUGAR")
//   - Escaping LIKE metacharacters so arbitrary search text matches literally
//   - Whole-word containment checks over folded text
package textutil
