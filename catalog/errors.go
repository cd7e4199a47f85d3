package catalog

import (
	"errors"
	"fmt"
)

// ErrUnavailable is surfaced when a single-entity read cannot be resolved
// because retries were exhausted or the breaker is open. Callers should
// treat it as "try again later", not as "does not exist".
var ErrUnavailable = errors.New("service temporarily unavailable")

// NotFoundError reports that the requested entity does not exist. It is a
// domain outcome, not a dependency failure: it is never retried, never
// counted against a breaker, and never masked by a fallback.
type NotFoundError struct {
	Resource string
	Field    string
	Value    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s: %s", e.Resource, e.Field, e.Value)
}

// NewNotFound builds a NotFoundError for the given resource and lookup field.
func NewNotFound(resource, field, value string) error {
	return &NotFoundError{Resource: resource, Field: field, Value: value}
}

// IsNotFound reports whether err (anywhere in its chain) signals domain
// absence.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsUnavailable reports whether err signals a degraded read.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
