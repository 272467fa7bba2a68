package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/xwstats/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors, prefixed with the
// operation. Context errors are wrapped but not mapped.
func MapError(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23514", // check_violation
			"23502", // not_null_violation
			"22003": // numeric_value_out_of_range
			return fmt.Errorf("%s: %w: %s", op, domain.ErrValidation, pgErr.Message)
		case "42P01": // undefined_table
			return fmt.Errorf("%s: %w (run migrations first)", op, err)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
