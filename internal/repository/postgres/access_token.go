package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/oauthstore/internal/model"
)

var _ model.AccessTokenStore = (*AccessTokenRepository)(nil)

type AccessTokenRepository struct {
	db *Connection
}

func NewAccessTokenRepository(db *Connection) *AccessTokenRepository {
	return &AccessTokenRepository{db: db}
}

func (r *AccessTokenRepository) Create(ctx context.Context, token model.AccessToken) error {
	const query = `
        INSERT INTO access_tokens (token, client_id, user_id, scope, expires_at)
        VALUES ($1,$2,$3,$4,$5)
    `

	_, err := r.db.Exec(ctx, query,
		token.Token, token.ClientID, token.UserID, token.Scope, token.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create access token: %w", classify(err))
	}
	return nil
}

// Get returns the token only while it has not expired.
func (r *AccessTokenRepository) Get(ctx context.Context, token string) (*model.AccessToken, error) {
	const query = `
        SELECT token, client_id, user_id, scope, expires_at, created_at
        FROM access_tokens
        WHERE token = $1 AND expires_at > CURRENT_TIMESTAMP
    `
	var at model.AccessToken
	err := r.db.QueryRow(ctx, query, token).Scan(
		&at.Token, &at.ClientID, &at.UserID, &at.Scope, &at.ExpiresAt, &at.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get access token: %w", classify(err))
	}
	return &at, nil
}

// Delete revokes the token. Refresh tokens issued with it are removed in the
// same transaction, so no reader sees them outlive it.
func (r *AccessTokenRepository) Delete(ctx context.Context, token string) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := deleteRefreshTokensByAccessToken(ctx, tx, token); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `DELETE FROM access_tokens WHERE token = $1`, token)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to revoke access token: %w", classify(err))
	}
	return nil
}

// CleanupExpired removes expired access tokens only. Their refresh tokens
// keep their own expiry.
func (r *AccessTokenRepository) CleanupExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM access_tokens WHERE expires_at <= CURRENT_TIMESTAMP`

	cmd, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up expired access tokens: %w", classify(err))
	}
	return cmd.RowsAffected(), nil
}
