package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/dtroode/oauthstore/database"
	"github.com/dtroode/oauthstore/internal/config"
)

// Connection is the pool shared by every repository. It is created once by
// the owner and passed to each repository constructor.
type Connection struct {
	*pgxpool.Pool
}

// NewConnection opens a pool using cfg and checks that the database answers.
// It does not touch the schema; call Initialize before serving traffic.
func NewConnection(ctx context.Context, cfg config.Database) (*Connection, error) {
	conf, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", classify(err))
	}

	conn := &Connection{
		Pool: pool,
	}
	if err := conn.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return conn, nil
}

func poolConfig(cfg config.Database) (*pgxpool.Config, error) {
	conf, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}

	if cfg.MaxConns > 0 {
		conf.MaxConns = cfg.MaxConns
	}
	conf.MinConns = cfg.MinConns
	if cfg.MaxConnLifetime > 0 {
		conf.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		conf.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.HealthCheckPeriod > 0 {
		conf.HealthCheckPeriod = cfg.HealthCheckPeriod
	}
	if cfg.ConnectTimeout > 0 {
		conf.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	return conf, nil
}

// Initialize verifies on a scoped connection that the migrated schema is in
// place. A missing relation yields a *database.SchemaIncompleteError.
func (s *Connection) Initialize(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(s.Pool)
	defer db.Close()

	return database.Verify(ctx, db)
}

// Close drains the pool: it blocks until every acquired connection has been
// released, then closes them all.
func (s *Connection) Close() error {
	if s.Pool != nil {
		s.Pool.Close()
	}
	return nil
}

// Ping acquires a connection and checks that the database answers. Failures
// are reported as model.ErrStorageUnavailable.
func (s *Connection) Ping(ctx context.Context) error {
	if s.Pool == nil {
		return fmt.Errorf("connection pool is nil")
	}
	if err := s.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to reach database: %w", classify(err))
	}
	return nil
}
