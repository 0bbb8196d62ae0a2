// Package apperrors defines the error vocabulary shared by the admin domain services.
// Handlers map these onto HTTP statuses; services wrap them with fmt.Errorf("pkg: op: %w").
package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound reports a missing entity.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports an operation that is not allowed in the entity's current state.
	ErrConflict = errors.New("conflict")
)

// ValidationError collects per-field input problems. Messages are user facing.
type ValidationError struct {
	Fields map[string]string
	Cause  error
}

// NewValidation returns an empty ValidationError ready for Add.
func NewValidation() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records msg for field unless the field already has a message.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; exists {
		return
	}
	e.Fields[field] = msg
}

// Field returns the message recorded for field.
func (e *ValidationError) Field(field string) string {
	if e == nil {
		return ""
	}
	return e.Fields[field]
}

// OrNil returns e when any field failed, nil otherwise.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes the optional cause (for example a duplicate sentinel).
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// TransitionError reports a disallowed status change.
// Hint, when set, is the operator-facing explanation shown instead of the
// generic conflict message. An empty To means the entity has no next step.
type TransitionError struct {
	Entity string
	From   string
	To     string
	Hint   string
}

// Error implements the error interface.
func (e *TransitionError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("%s: no step after %q", e.Entity, e.From)
	}
	return fmt.Sprintf("%s: cannot move from %q to %q", e.Entity, e.From, e.To)
}

// Unwrap classifies transition errors as conflicts.
func (e *TransitionError) Unwrap() error {
	return ErrConflict
}

// FieldErrors extracts field messages from err when it is a ValidationError.
func FieldErrors(err error) map[string]string {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Fields
	}
	return nil
}
