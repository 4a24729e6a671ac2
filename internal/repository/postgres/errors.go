package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/oauthstore/internal/model"
)

// SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// execer is satisfied by both the pool and a transaction.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// classify maps a driver error onto the store error taxonomy, keeping the
// original error in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %w", model.ErrConflict, err)
		case foreignKeyViolation:
			return fmt.Errorf("%w: %w", model.ErrInvalidReference, err)
		}
	}

	return fmt.Errorf("%w: %w", model.ErrStorageUnavailable, err)
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// profileArg passes the document through as raw bytes so the json codec
// writes it untouched. An empty document is stored as SQL NULL.
func profileArg(p json.RawMessage) any {
	if len(p) == 0 {
		return nil
	}
	return []byte(p)
}
