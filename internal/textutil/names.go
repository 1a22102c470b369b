package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// NormalizeName trims surrounding whitespace and collapses inner runs of
// whitespace to a single space. Returns "" for blank input.
func NormalizeName(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, " ")
}

// Fold returns the case-folded form of a normalized name. Two names that fold
// to the same string are the same catalog identity.
func Fold(value string) string {
	value = NormalizeName(value)
	if value == "" {
		return ""
	}
	// cases.Caser keeps internal state, so a fresh one is used per call.
	return cases.Fold().String(value)
}

// IsBlank reports whether value contains only whitespace.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// likeEscaper escapes the LIKE metacharacters and the escape character itself.
var likeEscaper = strings.NewReplacer(
	`\`, `\\`,
	"%", `\%`,
	"_", `\_`,
)

// LikeEscapeChar is the escape character paired with EscapeLike in SQL
// (`... LIKE ? ESCAPE '\'`).
const LikeEscapeChar = `\`

// EscapeLike escapes % and _ (and the escape character) so the value matches
// literally inside a LIKE pattern.
func EscapeLike(value string) string {
	return likeEscaper.Replace(value)
}

// ContainsPattern builds a substring LIKE pattern for value.
func ContainsPattern(value string) string {
	return "%" + EscapeLike(value) + "%"
}

// ContainsWord reports whether needle occurs in haystack bounded by non-letter,
// non-digit runes (or the string edges). Both arguments are compared as given;
// callers fold them first for case-insensitive checks.
func ContainsWord(haystack, needle string) bool {
	if needle == "" || len(needle) > len(haystack) {
		return false
	}
	offset := 0
	for {
		idx := strings.Index(haystack[offset:], needle)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(needle)
		if isBoundary(haystack, start, true) && isBoundary(haystack, end, false) {
			return true
		}
		offset = start + 1
		if offset >= len(haystack) {
			return false
		}
	}
}

func isBoundary(s string, pos int, before bool) bool {
	if before {
		if pos == 0 {
			return true
		}
		r := lastRune(s[:pos])
		return !isWordRune(r)
	}
	if pos >= len(s) {
		return true
	}
	r := firstRune(s[pos:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}
