package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn" // Import pgconn for PgError
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

// PostgreSQL error codes the query layer distinguishes.
const (
	UniqueViolation      = "23505"
	ForeignKeyViolation  = apperrors.ForeignKeyViolation
	CheckViolation       = "23514"
	NotNullViolation     = "23502"
	InvalidTextRepresent = "22P02"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == UniqueViolation && pgErr.ConstraintName == constraintName
}

// IsUniqueViolation reports any unique violation regardless of constraint.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == UniqueViolation
}

// Classify converts a driver error into the application taxonomy. op names
// the failed operation for logs, e.g. "posts.insert".
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewCustomError(apperrors.ErrNotFound, "no rows returned by "+op)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case UniqueViolation:
			return apperrors.NewCustomError(apperrors.ErrConflict, pgErr.Message).WithCode(pgErr.Code)
		case ForeignKeyViolation:
			return apperrors.NewForeignKeyError(pgErr.ConstraintName, pgErr.Message)
		case CheckViolation, NotNullViolation, InvalidTextRepresent:
			ce := apperrors.NewCustomError(apperrors.ErrValidationFailed, pgErr.Message).WithCode(pgErr.Code)
			ce.Field = pgErr.ColumnName
			return ce
		}
		return &apperrors.StoreError{Op: op, Code: pgErr.Code, Message: pgErr.Message, Err: err}
	}

	return apperrors.NewStoreError(op, err)
}
