package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/oauthstore/internal/logger"
	"github.com/dtroode/oauthstore/internal/model"
)

// PasswordHasher turns a plaintext password into a storable hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// BcryptHasher hashes passwords with bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// bootstrapProfile is the profile document written for provisioned users.
type bootstrapProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserProvisioner creates users from bootstrap tooling.
type UserProvisioner struct {
	users  model.UserStore
	hasher PasswordHasher
	logger *logger.Logger
}

func NewUserProvisioner(users model.UserStore, hasher PasswordHasher, logger *logger.Logger) *UserProvisioner {
	return &UserProvisioner{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// Provision registers a new user with the default scopes. Taken usernames and
// emails are rejected with model.ErrUserExists before anything is written.
func (p *UserProvisioner) Provision(ctx context.Context, name, email, password string) (model.User, error) {
	p.logger.Debug("Provisioner: creating user",
		"username", name,
		"email", email)

	existing, err := p.users.GetByUsername(ctx, name)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to check username: %w", err)
	}
	if existing == nil {
		existing, err = p.users.GetByEmail(ctx, email)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to check email: %w", err)
		}
	}
	if existing != nil {
		p.logger.Info("Provisioner: user already exists",
			"username", name,
			"email", email)
		return model.User{}, model.ErrUserExists
	}

	hash, err := p.hasher.Hash(password)
	if err != nil {
		return model.User{}, err
	}

	profile, err := json.Marshal(bootstrapProfile{Name: name, Email: email})
	if err != nil {
		return model.User{}, fmt.Errorf("failed to encode profile: %w", err)
	}

	scopes := make([]string, len(model.DefaultUserScopes))
	copy(scopes, model.DefaultUserScopes)

	user, err := p.users.Create(ctx, model.User{
		ID:             uuid.NewString(),
		Username:       name,
		Email:          email,
		HashedPassword: hash,
		Scopes:         scopes,
		Profile:        profile,
	})
	if err != nil {
		p.logger.Error("Provisioner: failed to create user",
			"username", name,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	p.logger.Info("Provisioner: user created",
		"user_id", user.ID,
		"username", user.Username)

	return user, nil
}
