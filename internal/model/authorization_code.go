package model

import (
	"context"
	"time"
)

// AuthorizationCodeStore persists single-use authorization codes.
type AuthorizationCodeStore interface {
	Create(ctx context.Context, code AuthorizationCode) error
	Get(ctx context.Context, code string) (*AuthorizationCode, error)
	Delete(ctx context.Context, code string) error
	ExpiredCleaner
}

// AuthorizationCode is a short-lived grant issued at authorization time.
// PKCE fields are carried opaquely.
type AuthorizationCode struct {
	Code                string
	ClientID            string
	UserID              string
	RedirectURI         string
	Scope               string
	Resource            *string
	CodeChallenge       *string
	CodeChallengeMethod *string
	ExpiresAt           time.Time
	CreatedAt           time.Time
}
