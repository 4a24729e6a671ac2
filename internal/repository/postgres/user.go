package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/oauthstore/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, username, email, hashed_password, scopes, profile, created_at, updated_at`

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create upserts by id. A username or email already held by another id
// fails with model.ErrConflict.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, username, email, hashed_password, scopes, profile)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (id) DO UPDATE SET
			      username = EXCLUDED.username,
			      email = EXCLUDED.email,
			      hashed_password = EXCLUDED.hashed_password,
			      scopes = EXCLUDED.scopes,
			      profile = EXCLUDED.profile,
			      updated_at = CURRENT_TIMESTAMP
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.HashedPassword,
		nonNilStrings(user.Scopes), profileArg(user.Profile),
	))
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", classify(err))
	}

	return saved, nil
}

func (r *UserRepository) Get(ctx context.Context, id string) (*model.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, "email", email)
}

// getBy looks a user up by one of its unique columns. column is never caller input.
func (r *UserRepository) getBy(ctx context.Context, column, value string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", column, classify(err))
	}

	return &user, nil
}

// List returns all users, newest first.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", classify(err))
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", classify(err))
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", classify(err))
	}

	return users, nil
}

// Update writes only the fields set in update. An unknown id is not an error.
func (r *UserRepository) Update(ctx context.Context, id string, update model.UserUpdate) error {
	query, args := buildUserUpdate(id, update)

	if _, err := r.db.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("failed to update user: %w", classify(err))
	}
	return nil
}

// Delete removes the user together with every code and token issued to it.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM users WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", classify(err))
	}
	return nil
}

func buildUserUpdate(id string, update model.UserUpdate) (string, pgx.NamedArgs) {
	var set []string
	args := pgx.NamedArgs{"id": id}

	if v, ok := update.Username.Get(); ok {
		set = append(set, "username = @username")
		args["username"] = v
	}
	if v, ok := update.Email.Get(); ok {
		set = append(set, "email = @email")
		args["email"] = v
	}
	if v, ok := update.HashedPassword.Get(); ok {
		set = append(set, "hashed_password = @hashed_password")
		args["hashed_password"] = v
	}
	if v, ok := update.Scopes.Get(); ok {
		set = append(set, "scopes = @scopes")
		args["scopes"] = nonNilStrings(v)
	}
	if v, ok := update.Profile.Get(); ok {
		set = append(set, "profile = @profile")
		args["profile"] = profileArg(v)
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	return "UPDATE users SET " + strings.Join(set, ", ") + " WHERE id = @id", args
}

func scanUser(row pgx.Row) (model.User, error) {
	var (
		user    model.User
		profile []byte
	)
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.HashedPassword,
		&user.Scopes, &profile, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return model.User{}, err
	}
	user.Scopes = nonNilStrings(user.Scopes)
	user.Profile = profile

	return user, nil
}
