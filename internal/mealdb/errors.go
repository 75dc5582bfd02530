package mealdb

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a lookup matches no meal.
	ErrNotFound = errors.New("meal not found")
	// ErrInvalidID is returned for identifiers that are not a run of digits.
	ErrInvalidID = errors.New("invalid meal id")
)

// StatusError captures non-2xx HTTP responses from the MealDB API.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Body == "" {
		return fmt.Sprintf("%s request failed: status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s request failed: status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// Temporary reports whether the upstream might answer differently on a later attempt.
func (e *StatusError) Temporary() bool {
	return e != nil && (e.StatusCode >= 500 || e.StatusCode == 429)
}
