package db

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned by repositories when the requested row does not
// exist.
var ErrNotFound = errors.New("db: row not found")

// PostgreSQL SQLSTATE codes the entity layer distinguishes.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
	CodeNotNullViolation    = "23502"
	CodeStringTooLong       = "22001"
	CodeNumericOutOfRange   = "22003"
)

// IsNotFound reports whether err means "no such row".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, pgx.ErrNoRows)
}

// PgError extracts the server error from err's chain.
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func hasCode(err error, codes ...string) bool {
	pgErr, ok := PgError(err)
	if !ok {
		return false
	}
	for _, c := range codes {
		if pgErr.Code == c {
			return true
		}
	}
	return false
}

// IsUniqueViolation reports a duplicate key.
func IsUniqueViolation(err error) bool {
	return hasCode(err, CodeUniqueViolation)
}

// IsForeignKeyViolation reports a reference to a missing parent row.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, CodeForeignKeyViolation)
}

// IsConstraintViolation reports a CHECK, NOT NULL, length or numeric range
// failure, i.e. bad input that slipped past application validation.
func IsConstraintViolation(err error) bool {
	return hasCode(err, CodeCheckViolation, CodeNotNullViolation, CodeStringTooLong, CodeNumericOutOfRange)
}

// ConstraintName returns the violated constraint's name, if any.
func ConstraintName(err error) string {
	if pgErr, ok := PgError(err); ok {
		return pgErr.ConstraintName
	}
	return ""
}
