// Package postgres provides PostgreSQL-backed implementations of the
// store interfaces.
package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avoronkov/memorizer-api/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the error code for unique constraint
	// violations.
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the error code for foreign key
	// violations.
	foreignKeyViolationCode = "23503"

	// checkViolationCode is the error code for check constraint
	// violations.
	checkViolationCode = "23514"
)

// MapError maps a database error to the matching store sentinel error,
// wrapping the original for context. All database operations in this
// package route errors through it so callers can rely on errors.Is
// against the store sentinels.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case foreignKeyViolationCode:
			return fmt.Errorf(
				"%w: foreign key violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case checkViolationCode:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		}
	}

	return err
}

// IsUniqueViolation checks if the given error is a unique constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
