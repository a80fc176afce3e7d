package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/styledecor/styledecor/internal/domain"
)

const uniqueViolation = "23505"

// mapPgErr translates driver errors into tagged domain errors so services
// never inspect pg codes themselves.
func mapPgErr(err error, notFoundMsg, conflictMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.E(domain.KindNotFound, notFoundMsg)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.Wrap(domain.KindConflict, conflictMsg, err)
	}
	return err
}
