package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/oauthstore/internal/model"
)

var _ model.StatsProvider = (*Store)(nil)

// Store bundles the entity repositories over one owned connection pool.
type Store struct {
	db *Connection

	Clients            *ClientRepository
	Users              *UserRepository
	AuthorizationCodes *AuthorizationCodeRepository
	AccessTokens       *AccessTokenRepository
	RefreshTokens      *RefreshTokenRepository
}

func NewStore(db *Connection) *Store {
	return &Store{
		db:                 db,
		Clients:            NewClientRepository(db),
		Users:              NewUserRepository(db),
		AuthorizationCodes: NewAuthorizationCodeRepository(db),
		AccessTokens:       NewAccessTokenRepository(db),
		RefreshTokens:      NewRefreshTokenRepository(db),
	}
}

// Stats counts entities with a single query on every call. Codes and tokens
// past their expiry are not counted.
func (s *Store) Stats(ctx context.Context) (model.Stats, error) {
	const query = `
        SELECT
            (SELECT count(*) FROM clients),
            (SELECT count(*) FROM users),
            (SELECT count(*) FROM authorization_codes WHERE expires_at > CURRENT_TIMESTAMP),
            (SELECT count(*) FROM access_tokens WHERE expires_at > CURRENT_TIMESTAMP),
            (SELECT count(*) FROM refresh_tokens WHERE expires_at > CURRENT_TIMESTAMP)
    `
	var stats model.Stats
	err := s.db.QueryRow(ctx, query).Scan(
		&stats.Clients, &stats.Users, &stats.AuthorizationCodes, &stats.AccessTokens, &stats.RefreshTokens,
	)
	if err != nil {
		return model.Stats{}, fmt.Errorf("failed to collect stats: %w", classify(err))
	}
	return stats, nil
}
