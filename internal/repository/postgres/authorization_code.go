package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/oauthstore/internal/model"
)

var _ model.AuthorizationCodeStore = (*AuthorizationCodeRepository)(nil)

type AuthorizationCodeRepository struct {
	db *Connection
}

func NewAuthorizationCodeRepository(db *Connection) *AuthorizationCodeRepository {
	return &AuthorizationCodeRepository{db: db}
}

// Create inserts a new code. Reusing a code value fails with model.ErrConflict.
func (r *AuthorizationCodeRepository) Create(ctx context.Context, code model.AuthorizationCode) error {
	const query = `
        INSERT INTO authorization_codes (
            code, client_id, user_id, redirect_uri, scope, resource, code_challenge, code_challenge_method, expires_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    `

	_, err := r.db.Exec(ctx, query,
		code.Code, code.ClientID, code.UserID, code.RedirectURI, code.Scope,
		code.Resource, code.CodeChallenge, code.CodeChallengeMethod, code.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create authorization code: %w", classify(err))
	}
	return nil
}

// Get returns the code only while it has not expired.
func (r *AuthorizationCodeRepository) Get(ctx context.Context, code string) (*model.AuthorizationCode, error) {
	const query = `
        SELECT code, client_id, user_id, redirect_uri, scope, resource, code_challenge, code_challenge_method, expires_at, created_at
        FROM authorization_codes
        WHERE code = $1 AND expires_at > CURRENT_TIMESTAMP
    `
	var ac model.AuthorizationCode
	err := r.db.QueryRow(ctx, query, code).Scan(
		&ac.Code, &ac.ClientID, &ac.UserID, &ac.RedirectURI, &ac.Scope,
		&ac.Resource, &ac.CodeChallenge, &ac.CodeChallengeMethod, &ac.ExpiresAt, &ac.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get authorization code: %w", classify(err))
	}
	return &ac, nil
}

// Delete consumes the code after redemption.
func (r *AuthorizationCodeRepository) Delete(ctx context.Context, code string) error {
	const query = `DELETE FROM authorization_codes WHERE code = $1`

	if _, err := r.db.Exec(ctx, query, code); err != nil {
		return fmt.Errorf("failed to delete authorization code: %w", classify(err))
	}
	return nil
}

func (r *AuthorizationCodeRepository) CleanupExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM authorization_codes WHERE expires_at <= CURRENT_TIMESTAMP`

	cmd, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up expired authorization codes: %w", classify(err))
	}
	return cmd.RowsAffected(), nil
}
