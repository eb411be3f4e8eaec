package input

import (
	"fmt"
	"strings"

	"github.com/yourusername/odds-apex/internal/models"
)

// FieldError describes one rejected input field
type FieldError struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// ValidationError lists every field that failed to parse
type ValidationError struct {
	Fields []FieldError `json:"fields"`

	unknownMarket bool
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s=%q: %s", f.Field, f.Value, f.Reason))
	}
	return fmt.Sprintf("%s: %s", models.ErrInvalidNumber, strings.Join(parts, "; "))
}

// Unwrap lets callers match models.ErrInvalidNumber, and
// models.ErrUnknownMarket when a quote names an unknown market, with errors.Is
func (e *ValidationError) Unwrap() []error {
	if e.unknownMarket {
		return []error{models.ErrInvalidNumber, models.ErrUnknownMarket}
	}
	return []error{models.ErrInvalidNumber}
}

func (e *ValidationError) add(field, value, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Value: value, Reason: reason})
}

func (e *ValidationError) errOrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
