package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KhuramMirza/e-commerce-backend-api/internal/apperr"

	"github.com/go-playground/validator/v10"
)

// validationError turns validator failures into a single operational 400
// listing every failed field.
func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperr.BadRequest("validation failed")
	}

	parts := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		parts = append(parts, fmt.Sprintf("field '%s' failed on the '%s' rule", e.Field(), e.Tag()))
	}
	return apperr.BadRequest("validation failed: " + strings.Join(parts, "; "))
}
