package database

import (
	"errors"

	apperrors "github.com/hireflow/hireflow-backend/pkg/errors"
	"github.com/lib/pq"
)

// MapPQError converts a PostgreSQL error to an AppError with a meaningful
// message. Returns nil if the error is not a *pq.Error or has no mapping.
func MapPQError(err error) *apperrors.AppError {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch pqErr.Code {
	// Check constraint violation
	case "23514":
		return apperrors.Validation(map[string]string{
			constraintField(pqErr): "violates " + pqErr.Constraint,
		})

	// Unique constraint violation
	case "23505":
		return apperrors.Internal("a record with these values already exists")

	// Not null violation
	case "23502":
		col := pqErr.Column
		if col == "" {
			col = "required field"
		}
		return apperrors.Validation(map[string]string{
			col: "must not be empty",
		})

	// Undefined table
	case "42P01":
		return apperrors.Internal("database schema is missing, run migrations")

	default:
		return nil
	}
}

func constraintField(pqErr *pq.Error) string {
	if pqErr.Column != "" {
		return pqErr.Column
	}
	if pqErr.Constraint != "" {
		return pqErr.Constraint
	}
	return "record"
}
