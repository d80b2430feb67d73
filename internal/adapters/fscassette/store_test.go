package fscassette_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Overland-East-Bay/tapedeck/internal/adapters/contracttest"
	"github.com/Overland-East-Bay/tapedeck/internal/adapters/fscassette"
	"github.com/Overland-East-Bay/tapedeck/internal/domain"
	"github.com/Overland-East-Bay/tapedeck/internal/ports/out/cassettestore"
)

func TestStore_LoadCorruptJSON(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "cassettes"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, "cassettes", "TestBroken.cassette")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	store := fscassette.NewStore(dir)
	_, err := store.Load(ctx, "TestBroken")
	var corrupt *cassettestore.CorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("Load: err=%v, want CorruptError", err)
	}
	if corrupt.Name != "TestBroken" {
		t.Fatalf("corrupt name=%q", corrupt.Name)
	}
}

func TestStore_LoadInvalidShape(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "cassettes"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	// Parses as JSON but the track is missing its method and status code.
	path := filepath.Join(dir, "cassettes", "TestShape.cassette")
	if err := os.WriteFile(path, []byte(`[{"request": {}, "response": {}}]`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	store := fscassette.NewStore(dir)
	_, err := store.Load(ctx, "TestShape")
	var corrupt *cassettestore.CorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("Load: err=%v, want CorruptError", err)
	}
}

func TestStore_NestedNameLandsFlat(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := t.TempDir()
	store := fscassette.NewStore(dir)
	name := domain.CassetteName("TestOuter/inner_case")
	if err := store.Save(ctx, name, contracttest.SampleCassette()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "cassettes", "TestOuter_inner_case.cassette")); err != nil {
		t.Fatalf("expected flat file: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(dir, "cassettes"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			t.Fatalf("unexpected subdirectory %q", e.Name())
		}
	}
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := t.TempDir()
	store := fscassette.NewStore(dir)
	if err := store.Save(ctx, "TestClean", contracttest.SampleCassette()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, "TestClean", contracttest.SampleCassette()); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "cassettes"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("leftover temp file %q", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single cassette file, got %d entries", len(entries))
	}
}

func TestStore_ListEmptyWhenDirMissing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := fscassette.NewStore(filepath.Join(t.TempDir(), "nowhere"))
	names, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected empty list, got %v", names)
	}
}
