package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dtroode/oauthstore/internal/model"
)

// RequiredRelations are the tables the stores read and write.
var RequiredRelations = []string{
	"clients",
	"users",
	"authorization_codes",
	"access_tokens",
	"refresh_tokens",
}

// SchemaIncompleteError lists relations that were not found.
type SchemaIncompleteError struct {
	Missing []string
}

func (e *SchemaIncompleteError) Error() string {
	return fmt.Sprintf("database schema is incomplete (missing: %s), run: oauthstore migrate",
		strings.Join(e.Missing, ", "))
}

func (e *SchemaIncompleteError) Unwrap() error {
	return model.ErrSchemaIncomplete
}

// Verify checks that every required relation exists. It never changes the schema.
func Verify(ctx context.Context, db *sql.DB) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w: %w", model.ErrStorageUnavailable, err)
	}
	defer conn.Close()

	var missing []string
	for _, relation := range RequiredRelations {
		var exists bool
		err := conn.QueryRowContext(ctx, `SELECT to_regclass($1) IS NOT NULL`, relation).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to look up relation %s: %w: %w", relation, model.ErrStorageUnavailable, err)
		}
		if !exists {
			missing = append(missing, relation)
		}
	}

	if len(missing) > 0 {
		return &SchemaIncompleteError{Missing: missing}
	}

	return nil
}
