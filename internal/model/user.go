package model

import (
	"context"
	"encoding/json"
	"time"
)

// DefaultUserScopes are granted to users provisioned by the bootstrap tooling.
var DefaultUserScopes = []string{"read", "write"}

// UserStore defines persistence operations for user accounts.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	Get(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id string, update UserUpdate) error
	Delete(ctx context.Context, id string) error
}

// User represents a stored user account. A nil Scopes slice is stored as an
// empty set; reads always return a non-nil slice.
type User struct {
	ID             string
	Username       string
	Email          string
	HashedPassword string
	Scopes         []string
	// Profile is an opaque JSON document, stored and returned byte for byte.
	// Nil means no profile.
	Profile   json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserUpdate lists the user fields a partial update may change.
// Some[json.RawMessage](nil) for Profile clears the stored document.
type UserUpdate struct {
	Username       Optional[string]
	Email          Optional[string]
	HashedPassword Optional[string]
	Scopes         Optional[[]string]
	Profile        Optional[json.RawMessage]
}
