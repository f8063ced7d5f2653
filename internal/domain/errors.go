package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound signals an absent entity. Lookups treat it as an empty result,
// not a fault; only the REST boundary turns it into a 404.
var ErrNotFound = errors.New("entity not found")

// ErrConflict signals a create with a pre-existing identifier or a concurrent
// write detected by the version check. Conflicts are never coerced into
// another operation and never retried here.
var ErrConflict = errors.New("conflict")

// ValidationError carries field-level detail for a rejected entity. It is
// raised before any store mutation.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every failed constraint of one entity.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, v := range e {
		parts[i] = v.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ErrOrNil returns the aggregate as an error, or nil when empty.
func (e ValidationErrors) ErrOrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
