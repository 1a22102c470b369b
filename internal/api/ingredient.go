package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// IngredientEntry is one ingredient as sent and received on the wire: a bare
// string, or an object with any of line, quantity, unit and name.
type IngredientEntry struct {
	Line     string   `json:"line,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Name     string   `json:"name,omitempty"`
}

// Structured reports whether the entry carries any structured field.
func (e IngredientEntry) Structured() bool {
	return e.Quantity != nil || strings.TrimSpace(e.Unit) != "" || strings.TrimSpace(e.Name) != ""
}

// MarshalJSON encodes bare lines as plain strings.
func (e IngredientEntry) MarshalJSON() ([]byte, error) {
	if !e.Structured() {
		return json.Marshal(e.Line)
	}
	type object IngredientEntry
	return json.Marshal(object(e))
}

// UnmarshalJSON accepts either a string or an object.
func (e *IngredientEntry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("ingredient: empty value")
	}
	switch data[0] {
	case '"':
		var line string
		if err := json.Unmarshal(data, &line); err != nil {
			return fmt.Errorf("ingredient: %w", err)
		}
		*e = IngredientEntry{Line: line}
		return nil
	case '{':
		type object IngredientEntry
		var decoded object
		if err := json.Unmarshal(data, &decoded); err != nil {
			return fmt.Errorf("ingredient: %w", err)
		}
		*e = IngredientEntry(decoded)
		return nil
	default:
		return fmt.Errorf("ingredient: expected string or object, got %s", data)
	}
}
