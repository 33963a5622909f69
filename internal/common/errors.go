// Package common defines shared constants and errors used across the
// storage, service and transport layers of gophchat. Callers should use
// errors.Is for the sentinel values and errors.As for the typed errors.
package common

import (
	"errors"
	"sort"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal      = errors.New("internal error")
	ErrUnauthenticated = errors.New("Unauthenticated")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// FieldViolation names a single storage constraint that a field broke.
type FieldViolation struct {
	Field   string
	Message string
}

// UniqueConstraintError is returned by repositories when an insert collides
// with an existing row on a unique column.
type UniqueConstraintError struct {
	Violations []FieldViolation
}

func (e *UniqueConstraintError) Error() string {
	return "unique constraint violated: " + joinFields(e.Violations)
}

// ConstraintValidationError is returned by repositories when a row is
// rejected by a not-null or check constraint.
type ConstraintValidationError struct {
	Violations []FieldViolation
}

func (e *ConstraintValidationError) Error() string {
	return "validation constraint violated: " + joinFields(e.Violations)
}

func joinFields(vs []FieldViolation) string {
	names := make([]string, 0, len(vs))
	for _, v := range vs {
		names = append(names, v.Field)
	}
	return strings.Join(names, ", ")
}

// InputError is a client-facing failure carrying a field-keyed map of
// validation messages.
type InputError struct {
	Message string
	Fields  map[string]string
}

// NewInputError copies fields so later mutation by the caller does not leak
// into the returned error.
func NewInputError(msg string, fields map[string]string) *InputError {
	cp := make(map[string]string, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return &InputError{Message: msg, Fields: cp}
}

func (e *InputError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}
