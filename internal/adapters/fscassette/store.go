package fscassette

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Overland-East-Bay/tapedeck/internal/domain"
	"github.com/Overland-East-Bay/tapedeck/internal/ports/out/cassettestore"
)

const (
	cassetteDir    = "cassettes"
	cassetteSuffix = ".cassette"
)

// Store is the filesystem implementation of cassettestore.Store.
// Cassettes live at <baseDir>/cassettes/<sanitized-name>.cassette.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) path(name domain.CassetteName) string {
	return filepath.Join(s.baseDir, cassetteDir, name.FileName())
}

func (s *Store) Exists(ctx context.Context, name domain.CassetteName) (bool, error) {
	_ = ctx
	_, err := os.Stat(s.path(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (s *Store) Load(ctx context.Context, name domain.CassetteName) (domain.Cassette, error) {
	_ = ctx
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
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

// Save writes the cassette atomically: serialize to a uniquely named temp
// file in the target directory, then rename over the final path. A crash
// mid-write can therefore never corrupt a previously valid cassette.
func (s *Store) Save(ctx context.Context, name domain.CassetteName, cassette domain.Cassette) error {
	_ = ctx
	data, err := json.MarshalIndent(cassette, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize cassette %q: %w", string(name), err)
	}

	path := s.path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cassette dir: %w", err)
	}

	tmp := path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cassette %q: %w", string(name), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write cassette %q: %w", string(name), err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]domain.CassetteName, error) {
	_ = ctx
	entries, err := os.ReadDir(filepath.Join(s.baseDir, cassetteDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var names []domain.CassetteName
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), cassetteSuffix) {
			continue
		}
		names = append(names, domain.CassetteName(strings.TrimSuffix(entry.Name(), cassetteSuffix)))
	}
	return names, nil
}
