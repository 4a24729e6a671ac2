package model

import (
	"context"
	"time"
)

type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	Get(ctx context.Context, token string) (*RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteByAccessToken(ctx context.Context, accessTokenID string) (int64, error)
	ExpiredCleaner
}

// RefreshToken is a long-lived token. AccessTokenID holds the value of the
// access token it was issued with.
type RefreshToken struct {
	Token         string
	AccessTokenID string
	ClientID      string
	UserID        string
	Scope         string
	ExpiresAt     time.Time
	CreatedAt     time.Time
}
