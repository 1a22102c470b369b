package api

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"recipebox/internal/config"
)

// validator collects the first failure for a request. Every check is a no-op
// once a failure has been recorded.
type validator struct {
	limits config.Limits
	err    *Error
}

func newValidator(limits config.Limits) *validator {
	return &validator{limits: limits}
}

func (v *validator) fail(format string, args ...any) {
	if v.err == nil {
		v.err = validationf(fmt.Sprintf(format, args...))
	}
}

func (v *validator) id(field string, value int64) {
	if v.err == nil && value <= 0 {
		v.fail("%s must be a positive integer", field)
	}
}

// required checks a name or title: non-blank after trimming and bounded.
func (v *validator) required(field, value string, limit int) {
	if v.err != nil {
		return
	}
	if strings.TrimSpace(value) == "" {
		v.fail("%s must not be blank", field)
		return
	}
	v.length(field, value, limit)
}

func (v *validator) length(field, value string, limit int) {
	if v.err == nil && limit > 0 && utf8.RuneCountInString(strings.TrimSpace(value)) > limit {
		v.fail("%s exceeds %d characters", field, limit)
	}
}

func (v *validator) count(field string, n, limit int) {
	if v.err == nil && limit > 0 && n > limit {
		v.fail("%s exceeds %d entries", field, limit)
	}
}

func (v *validator) photo(value *string) {
	if v.err == nil && value != nil && v.limits.MaxPhotoBytes > 0 && len(*value) > v.limits.MaxPhotoBytes {
		v.fail("photoDataUrl exceeds %d bytes", v.limits.MaxPhotoBytes)
	}
}

// servings accepts zero only when the store may substitute its default.
func (v *validator) servings(value int, allowZero bool) {
	if v.err != nil {
		return
	}
	if value < 0 || (value == 0 && !allowZero) {
		v.fail("servings must be a positive integer")
	}
}

func (v *validator) ingredients(entries []IngredientEntry) {
	v.count("ingredients", len(entries), v.limits.MaxIngredients)
	for i, entry := range entries {
		if v.err != nil {
			return
		}
		if strings.TrimSpace(entry.Line) == "" && strings.TrimSpace(entry.Name) == "" {
			v.fail("ingredients[%d] needs a line or a name", i)
			return
		}
		v.length(fmt.Sprintf("ingredients[%d].line", i), entry.Line, v.limits.MaxTextLength)
		v.length(fmt.Sprintf("ingredients[%d].name", i), entry.Name, v.limits.MaxNameLength)
		v.length(fmt.Sprintf("ingredients[%d].unit", i), entry.Unit, v.limits.MaxNameLength)
		if entry.Quantity != nil && *entry.Quantity < 0 {
			v.fail("ingredients[%d].quantity must not be negative", i)
		}
	}
}

func (v *validator) steps(steps []string) {
	v.count("steps", len(steps), v.limits.MaxSteps)
	for i, step := range steps {
		v.required(fmt.Sprintf("steps[%d]", i), step, v.limits.MaxTextLength)
	}
}

func (v *validator) tags(tags []string) {
	v.count("tags", len(tags), v.limits.MaxTags)
	for i, tag := range tags {
		v.required(fmt.Sprintf("tags[%d]", i), tag, v.limits.MaxNameLength)
	}
}

func (v *validator) result() error {
	if v.err == nil {
		return nil
	}
	return v.err
}
