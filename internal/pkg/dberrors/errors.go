package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
)

func pgCode(err error) (string, string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName, true
	}
	return "", "", false
}

// IsUniqueViolation reports a unique_violation on any constraint.
func IsUniqueViolation(err error) bool {
	code, _, ok := pgCode(err)
	return ok && code == codeUniqueViolation
}

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	code, constraint, ok := pgCode(err)
	return ok && code == codeUniqueViolation && constraint == constraintName
}

// IsForeignKeyViolation reports a row referencing a missing parent.
func IsForeignKeyViolation(err error) bool {
	code, _, ok := pgCode(err)
	return ok && code == codeForeignKeyViolation
}

// IsConstraintViolation reports check and not-null failures, the ones a validator would catch.
func IsConstraintViolation(err error) bool {
	code, _, ok := pgCode(err)
	return ok && (code == codeCheckViolation || code == codeNotNullViolation)
}
