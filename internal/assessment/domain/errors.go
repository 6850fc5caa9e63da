package domain

import "fmt"

// ValidationError reports a missing or out-of-range input field. The pipeline
// performs no partial computation once one is detected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("assessment: invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
