package model

import "context"

// ExpiredCleaner removes rows whose expiry has passed and reports how many were removed.
type ExpiredCleaner interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// StatsProvider reports live entity counts.
type StatsProvider interface {
	Stats(ctx context.Context) (Stats, error)
}

// Stats holds entity counts. Codes and tokens only count unexpired rows.
type Stats struct {
	Clients            int64
	Users              int64
	AuthorizationCodes int64
	AccessTokens       int64
	RefreshTokens      int64
}
