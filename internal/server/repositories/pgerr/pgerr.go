// Package pgerr translates PostgreSQL constraint failures into the typed
// storage errors defined in common, so services can react per field.
package pgerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes handled here.
const (
	NotNullViolation    = "23502"
	ForeignKeyViolation = "23503"
	UniqueViolation     = "23505"
	CheckViolation      = "23514"
)

// Translate wraps err as "db error: ...". Constraint violations become
// *common.UniqueConstraintError or *common.ConstraintValidationError
// inside the wrap.
func Translate(table string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("db error: %w", err)
	}

	field := fieldName(table, pgErr)

	switch pgErr.Code {
	case UniqueViolation:
		return fmt.Errorf("db error: %w", &common.UniqueConstraintError{
			Violations: []common.FieldViolation{{Field: field, Message: field + " must be unique"}},
		})
	case NotNullViolation:
		return validation(field, field+" must not be null")
	case CheckViolation:
		return validation(field, field+" is invalid")
	case ForeignKeyViolation:
		return validation(field, field+" references an unknown record")
	}
	return fmt.Errorf("db error: %w", err)
}

func validation(field, msg string) error {
	return fmt.Errorf("db error: %w", &common.ConstraintValidationError{
		Violations: []common.FieldViolation{{Field: field, Message: msg}},
	})
}

// fieldName prefers the reported column and otherwise derives the field
// from a conventional constraint name such as users_email_key.
func fieldName(table string, pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	name := strings.TrimPrefix(pgErr.ConstraintName, table+"_")
	for _, suffix := range []string{"_key", "_check", "_fkey", "_idx"} {
		if trimmed, ok := strings.CutSuffix(name, suffix); ok {
			return trimmed
		}
	}
	return name
}
