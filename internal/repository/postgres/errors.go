package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/unais-08/blogs-fullstack/internal/apperror"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// translate maps constraint violations onto client-facing error kinds and
// passes every other error through unchanged.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolation:
		return apperror.Wrap(apperror.KindConflict, "Resource already exists", err)
	case foreignKeyViolation:
		return apperror.Wrap(apperror.KindValidation, "Referenced resource not found", err)
	default:
		return err
	}
}
