// Package service orchestrates validation, repository operations and
// the rating/favorites aggregation on top of them.
package service

import (
	"errors"
	"fmt"

	"github.com/receptar-app/backend/internal/repo"
	"github.com/receptar-app/backend/internal/schema"
)

// Sentinel errors mapped to HTTP status codes at the API boundary.
// The entity-specific not-found errors wrap repo.ErrNotFound so a
// generic errors.Is check still matches.
var (
	ErrInvalidRating  = errors.New("rating must be between 0 and 5")
	ErrRecipeNotFound = fmt.Errorf("recipe %w", repo.ErrNotFound)
	ErrUserNotFound   = fmt.Errorf("user %w", repo.ErrNotFound)
)

// ValidationError carries the field-level detail of a rejected payload.
type ValidationError struct {
	Errors []schema.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation failed: %s", e.Errors[0].Message)
	}
	return fmt.Sprintf("validation failed with %d errors", len(e.Errors))
}

func invalidPayload() *ValidationError {
	return &ValidationError{Errors: []schema.FieldError{
		{Field: "payload", Rule: "json", Message: "request body must be a JSON object"},
	}}
}
