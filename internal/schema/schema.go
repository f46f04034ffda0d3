// Package schema validates decoded JSON payloads against named field
// rule sets before any repository mutation. Checks are pure: a payload
// is never modified, only judged.
package schema

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Kind is the expected JSON type of a field.
type Kind int

const (
	String Kind = iota
	Number
	StringArray
)

// FieldError describes a single failed rule for a single field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Rule is the set of constraints applied to one field when present.
type Rule struct {
	Type      Kind
	Enum      []string
	MinLength int
	MinItems  int
	Min       *float64
	Max       *float64
	Format    string
}

// Schema is a named set of field rules. Unknown fields are always
// rejected. Required is enforced only on full schemas; Partial returns
// a copy with the required constraint dropped, for shallow-merge
// updates where absent fields are retained.
type Schema struct {
	Name     string
	Fields   map[string]Rule
	Required []string
}

// format rules (currently just email) are delegated to validator/v10.
var formats = validator.New()

// Partial derives the update variant of the schema: the same per-field
// constraints without required-field presence.
func (s *Schema) Partial() *Schema {
	return &Schema{Name: s.Name + "-partial", Fields: s.Fields}
}

// Validate checks the payload and returns all field-level violations.
// An empty result means the payload is valid.
func (s *Schema) Validate(payload map[string]any) []FieldError {
	var errs []FieldError

	for _, name := range s.Required {
		if _, ok := payload[name]; !ok {
			errs = append(errs, FieldError{name, "required", fmt.Sprintf("%s is required", name)})
		}
	}

	for name, value := range payload {
		rule, ok := s.Fields[name]
		if !ok {
			errs = append(errs, FieldError{name, "additionalProperties", fmt.Sprintf("unknown field %s", name)})
			continue
		}
		errs = append(errs, checkField(name, value, rule)...)
	}

	return errs
}

func checkField(name string, value any, rule Rule) []FieldError {
	switch rule.Type {
	case String:
		return checkString(name, value, rule)
	case Number:
		return checkNumber(name, value, rule)
	case StringArray:
		return checkStringArray(name, value, rule)
	}
	return nil
}

func checkString(name string, value any, rule Rule) []FieldError {
	str, ok := value.(string)
	if !ok {
		return []FieldError{{name, "type", fmt.Sprintf("%s must be a string", name)}}
	}
	var errs []FieldError
	if len([]rune(str)) < rule.MinLength {
		errs = append(errs, FieldError{name, "minLength", fmt.Sprintf("%s must be at least %d characters", name, rule.MinLength)})
	}
	if len(rule.Enum) > 0 && !contains(rule.Enum, str) {
		errs = append(errs, FieldError{name, "enum", fmt.Sprintf("%s must be one of %v", name, rule.Enum)})
	}
	if rule.Format != "" {
		if err := formats.Var(str, rule.Format); err != nil {
			errs = append(errs, FieldError{name, "format", fmt.Sprintf("%s must be a valid %s", name, rule.Format)})
		}
	}
	return errs
}

func checkNumber(name string, value any, rule Rule) []FieldError {
	// encoding/json decodes every JSON number into float64.
	num, ok := value.(float64)
	if !ok {
		return []FieldError{{name, "type", fmt.Sprintf("%s must be a number", name)}}
	}
	var errs []FieldError
	if rule.Min != nil && num < *rule.Min {
		errs = append(errs, FieldError{name, "minimum", fmt.Sprintf("%s must be at least %g", name, *rule.Min)})
	}
	if rule.Max != nil && num > *rule.Max {
		errs = append(errs, FieldError{name, "maximum", fmt.Sprintf("%s must be at most %g", name, *rule.Max)})
	}
	return errs
}

func checkStringArray(name string, value any, rule Rule) []FieldError {
	items, ok := value.([]any)
	if !ok {
		return []FieldError{{name, "type", fmt.Sprintf("%s must be an array", name)}}
	}
	var errs []FieldError
	if len(items) < rule.MinItems {
		errs = append(errs, FieldError{name, "minItems", fmt.Sprintf("%s must have at least %d items", name, rule.MinItems)})
	}
	for i, item := range items {
		if _, ok := item.(string); !ok {
			errs = append(errs, FieldError{name, "items", fmt.Sprintf("%s[%d] must be a string", name, i)})
		}
	}
	return errs
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
