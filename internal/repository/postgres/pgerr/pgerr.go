// Package pgerr classifies PostgreSQL errors surfaced through gorm.
package pgerr

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
	invalidTextRep      = "22P02"
)

func IsUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolation)
}

// ForeignKeyViolation returns the violated constraint name.
func ForeignKeyViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

func IsCheckViolation(err error) bool {
	return hasCode(err, checkViolation)
}

// IsInvalidText reports a value Postgres could not parse for its column type,
// such as a malformed uuid.
func IsInvalidText(err error) bool {
	return hasCode(err, invalidTextRep)
}

// ValidID reports whether id can be compared against a uuid column. Lookups
// short-circuit to not found on anything else.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
