package model

import (
	"context"
	"time"
)

// ClientType distinguishes clients that can keep a secret from those that cannot.
type ClientType string

const (
	ClientTypeConfidential ClientType = "confidential"
	ClientTypePublic       ClientType = "public"
)

// ClientStore defines persistence operations for OAuth clients.
type ClientStore interface {
	Create(ctx context.Context, client Client) (Client, error)
	Get(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context) ([]Client, error)
	Update(ctx context.Context, id string, update ClientUpdate) error
	Delete(ctx context.Context, id string) error
}

// Client is a registered OAuth client. Nil RedirectURIs, Scopes and
// GrantTypes are stored as empty sets; reads always return non-nil slices.
type Client struct {
	ID           string
	Secret       string
	Name         string
	Type         ClientType
	RedirectURIs []string
	Scopes       []string
	GrantTypes   []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ClientUpdate lists the client fields a partial update may change.
type ClientUpdate struct {
	Secret       Optional[string]
	Name         Optional[string]
	Type         Optional[ClientType]
	RedirectURIs Optional[[]string]
	Scopes       Optional[[]string]
	GrantTypes   Optional[[]string]
}
