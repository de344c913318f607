package helper

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	SQLStateUniqueViolation     = "23505"
	SQLStateForeignKeyViolation = "23503"
	SQLStateCheckViolation      = "23514"
)

// PGError extracts SQLSTATE and constraint name from pgx or lib/pq errors.
func PGError(err error) (code, constraint string, ok bool) {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code, pgxErr.ConstraintName, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint, true
	}
	return "", "", false
}

func IsUniqueViolation(err error) (constraint string, ok bool) {
	code, constraint, found := PGError(err)
	if !found || code != SQLStateUniqueViolation {
		return "", false
	}
	return constraint, true
}

func IsForeignKeyViolation(err error) bool {
	code, _, found := PGError(err)
	return found && code == SQLStateForeignKeyViolation
}

func IsCheckViolation(err error) bool {
	code, _, found := PGError(err)
	return found && code == SQLStateCheckViolation
}
