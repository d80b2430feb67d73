// Package postgres holds shared helpers for the Postgres-backed adapters:
// pool construction and the cassette schema.
package postgres

import (
	"context"
	_ "embed"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the DDL the cassette store expects. Deployments apply it via
// their own migration tooling; the test harness applies it directly.
//
//go:embed schema.sql
var Schema string

// PoolOptions tunes pool sizing; zero values keep pgxpool defaults.
type PoolOptions struct {
	MaxConns int32
	MinConns int32
}

func NewPool(ctx context.Context, dsn string, opts PoolOptions) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("empty postgres DSN")
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		cfg.MinConns = opts.MinConns
	}
	return pgxpool.NewWithConfig(ctx, cfg)
}
