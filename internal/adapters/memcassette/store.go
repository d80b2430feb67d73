package memcassette

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Overland-East-Bay/tapedeck/internal/domain"
	"github.com/Overland-East-Bay/tapedeck/internal/ports/out/cassettestore"
)

// Store is an in-memory implementation of cassettestore.Store.
// It is safe for concurrent use across sessions.
type Store struct {
	mu sync.RWMutex
	m  map[domain.CassetteName]domain.Cassette
}

func NewStore() *Store {
	return &Store{
		m: make(map[domain.CassetteName]domain.Cassette),
	}
}

func (s *Store) Exists(ctx context.Context, name domain.CassetteName) (bool, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.m[name]
	return ok, nil
}

func (s *Store) Load(ctx context.Context, name domain.CassetteName) (domain.Cassette, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	cassette, ok := s.m[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", string(name), cassettestore.ErrNotFound)
	}
	return append(domain.Cassette(nil), cassette...), nil
}

func (s *Store) Save(ctx context.Context, name domain.CassetteName, cassette domain.Cassette) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[name] = append(domain.Cassette(nil), cassette...)
	return nil
}

func (s *Store) List(ctx context.Context) ([]domain.CassetteName, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]domain.CassetteName, 0, len(s.m))
	for name := range s.m {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names, nil
}
