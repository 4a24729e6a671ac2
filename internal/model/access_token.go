package model

import (
	"context"
	"time"
)

// AccessTokenStore persists bearer tokens. Delete is the revoke path and
// removes the refresh tokens issued alongside the access token.
type AccessTokenStore interface {
	Create(ctx context.Context, token AccessToken) error
	Get(ctx context.Context, token string) (*AccessToken, error)
	Delete(ctx context.Context, token string) error
	ExpiredCleaner
}

type AccessToken struct {
	Token     string
	ClientID  string
	UserID    string
	Scope     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
