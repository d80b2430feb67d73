package cassettestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Overland-East-Bay/tapedeck/internal/domain"
	"github.com/Overland-East-Bay/tapedeck/internal/ports/out/cassettestore"
	"github.com/Overland-East-Bay/tapedeck/internal/ports/out/clock"
)

// Store is a Postgres implementation of cassettestore.Store. It lets teams
// share recorded cassettes through a central database instead of checked-in
// files; names are stored raw since there is no path to sanitize.
type Store struct {
	pool *pgxpool.Pool
	clk  clock.Clock
}

func NewStore(pool *pgxpool.Pool, clk clock.Clock) *Store {
	return &Store{pool: pool, clk: clk}
}

func (s *Store) Exists(ctx context.Context, name domain.CassetteName) (bool, error) {
	if s.pool == nil {
		return false, errors.New("nil postgres pool")
	}
	var one int
	err := s.pool.QueryRow(ctx, `SELECT 1 FROM cassettes WHERE name = $1`, string(name)).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) Load(ctx context.Context, name domain.CassetteName) (domain.Cassette, error) {
	if s.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT tracks FROM cassettes WHERE name = $1`, string(name)).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%q: %w", string(name), cassettestore.ErrNotFound)
		}
		return nil, err
	}

	var cassette domain.Cassette
	if err := json.Unmarshal(data, &cassette); err != nil {
		return nil, &cassettestore.CorruptError{Name: name, Err: err}
	}
	if err := cassette.Validate(); err != nil {
		return nil, &cassettestore.CorruptError{Name: name, Err: err}
	}
	return cassette, nil
}

func (s *Store) Save(ctx context.Context, name domain.CassetteName, cassette domain.Cassette) error {
	if s.pool == nil {
		return errors.New("nil postgres pool")
	}
	data, err := json.Marshal(cassette)
	if err != nil {
		return fmt.Errorf("serialize cassette %q: %w", string(name), err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO cassettes (name, tracks, recorded_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name)
		DO UPDATE SET
			tracks = EXCLUDED.tracks,
			recorded_at = EXCLUDED.recorded_at
	`,
		string(name),
		data,
		s.clk.Now().UTC(),
	)
	return err
}

func (s *Store) List(ctx context.Context) ([]domain.CassetteName, error) {
	if s.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := s.pool.Query(ctx, `SELECT name FROM cassettes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []domain.CassetteName
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, domain.CassetteName(name))
	}
	return names, rows.Err()
}
