package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/oauthstore/internal/model"
)

var _ model.ClientStore = (*ClientRepository)(nil)

const clientColumns = `id, COALESCE(secret, ''), name, type, redirect_uris, scopes, grant_types, created_at, updated_at`

type ClientRepository struct {
	db *Connection
}

func NewClientRepository(db *Connection) *ClientRepository {
	return &ClientRepository{
		db: db,
	}
}

// Create inserts the client or, when the id already exists, overwrites every
// mutable field in the same statement.
func (r *ClientRepository) Create(ctx context.Context, client model.Client) (model.Client, error) {
	query := `INSERT INTO clients (id, secret, name, type, redirect_uris, scopes, grant_types)
			  VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7)
			  ON CONFLICT (id) DO UPDATE SET
			      secret = EXCLUDED.secret,
			      name = EXCLUDED.name,
			      type = EXCLUDED.type,
			      redirect_uris = EXCLUDED.redirect_uris,
			      scopes = EXCLUDED.scopes,
			      grant_types = EXCLUDED.grant_types,
			      updated_at = CURRENT_TIMESTAMP
			  RETURNING ` + clientColumns

	saved, err := scanClient(r.db.QueryRow(ctx, query,
		client.ID, client.Secret, client.Name, string(client.Type),
		nonNilStrings(client.RedirectURIs), nonNilStrings(client.Scopes), nonNilStrings(client.GrantTypes),
	))
	if err != nil {
		return model.Client{}, fmt.Errorf("failed to create client: %w", classify(err))
	}

	return saved, nil
}

func (r *ClientRepository) Get(ctx context.Context, id string) (*model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	client, err := scanClient(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get client: %w", classify(err))
	}

	return &client, nil
}

// List returns all clients, newest first.
func (r *ClientRepository) List(ctx context.Context) ([]model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", classify(err))
	}
	defer rows.Close()

	clients := []model.Client{}
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", classify(err))
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", classify(err))
	}

	return clients, nil
}

// Update writes only the fields set in update. An unknown id is not an error.
func (r *ClientRepository) Update(ctx context.Context, id string, update model.ClientUpdate) error {
	query, args := buildClientUpdate(id, update)

	if _, err := r.db.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("failed to update client: %w", classify(err))
	}
	return nil
}

// Delete removes the client; codes and tokens issued to it go with it.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM clients WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete client: %w", classify(err))
	}
	return nil
}

func buildClientUpdate(id string, update model.ClientUpdate) (string, pgx.NamedArgs) {
	var set []string
	args := pgx.NamedArgs{"id": id}

	if v, ok := update.Secret.Get(); ok {
		set = append(set, "secret = NULLIF(@secret, '')")
		args["secret"] = v
	}
	if v, ok := update.Name.Get(); ok {
		set = append(set, "name = @name")
		args["name"] = v
	}
	if v, ok := update.Type.Get(); ok {
		set = append(set, "type = @type")
		args["type"] = string(v)
	}
	if v, ok := update.RedirectURIs.Get(); ok {
		set = append(set, "redirect_uris = @redirect_uris")
		args["redirect_uris"] = nonNilStrings(v)
	}
	if v, ok := update.Scopes.Get(); ok {
		set = append(set, "scopes = @scopes")
		args["scopes"] = nonNilStrings(v)
	}
	if v, ok := update.GrantTypes.Get(); ok {
		set = append(set, "grant_types = @grant_types")
		args["grant_types"] = nonNilStrings(v)
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	return "UPDATE clients SET " + strings.Join(set, ", ") + " WHERE id = @id", args
}

func scanClient(row pgx.Row) (model.Client, error) {
	var (
		client     model.Client
		clientType string
	)
	err := row.Scan(
		&client.ID, &client.Secret, &client.Name, &clientType,
		&client.RedirectURIs, &client.Scopes, &client.GrantTypes,
		&client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		return model.Client{}, err
	}
	client.Type = model.ClientType(clientType)
	client.RedirectURIs = nonNilStrings(client.RedirectURIs)
	client.Scopes = nonNilStrings(client.Scopes)
	client.GrantTypes = nonNilStrings(client.GrantTypes)

	return client, nil
}
