package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/oauthstore/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

type RefreshTokenRepository struct {
	db *Connection
}

func NewRefreshTokenRepository(db *Connection) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token model.RefreshToken) error {
	const query = `
        INSERT INTO refresh_tokens (token, access_token_id, client_id, user_id, scope, expires_at)
        VALUES ($1,$2,$3,$4,$5,$6)
    `

	_, err := r.db.Exec(ctx, query,
		token.Token, token.AccessTokenID, token.ClientID, token.UserID, token.Scope, token.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh token: %w", classify(err))
	}
	return nil
}

// Get returns the token only while it has not expired.
func (r *RefreshTokenRepository) Get(ctx context.Context, token string) (*model.RefreshToken, error) {
	const query = `
        SELECT token, access_token_id, client_id, user_id, scope, expires_at, created_at
        FROM refresh_tokens
        WHERE token = $1 AND expires_at > CURRENT_TIMESTAMP
    `
	var rt model.RefreshToken
	err := r.db.QueryRow(ctx, query, token).Scan(
		&rt.Token, &rt.AccessTokenID, &rt.ClientID, &rt.UserID, &rt.Scope, &rt.ExpiresAt, &rt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", classify(err))
	}
	return &rt, nil
}

func (r *RefreshTokenRepository) Delete(ctx context.Context, token string) error {
	const query = `DELETE FROM refresh_tokens WHERE token = $1`

	if _, err := r.db.Exec(ctx, query, token); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", classify(err))
	}
	return nil
}

// DeleteByAccessToken removes every refresh token issued with accessTokenID.
func (r *RefreshTokenRepository) DeleteByAccessToken(ctx context.Context, accessTokenID string) (int64, error) {
	n, err := deleteRefreshTokensByAccessToken(ctx, r.db, accessTokenID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete refresh tokens by access token: %w", classify(err))
	}
	return n, nil
}

func (r *RefreshTokenRepository) CleanupExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM refresh_tokens WHERE expires_at <= CURRENT_TIMESTAMP`

	cmd, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up expired refresh tokens: %w", classify(err))
	}
	return cmd.RowsAffected(), nil
}

func deleteRefreshTokensByAccessToken(ctx context.Context, db execer, accessTokenID string) (int64, error) {
	const query = `DELETE FROM refresh_tokens WHERE access_token_id = $1`

	cmd, err := db.Exec(ctx, query, accessTokenID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
