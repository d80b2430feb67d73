// Package contracttest holds behavior suites every cassette store
// implementation must pass. Adapter packages run them against their own
// factories.
package contracttest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/oapi-codegen/nullable"

	"github.com/Overland-East-Bay/tapedeck/internal/domain"
	"github.com/Overland-East-Bay/tapedeck/internal/ports/out/cassettestore"
)

type CleanupFunc = func()

type StoreFactory func(t *testing.T) (cassettestore.Store, CleanupFunc)

// SampleCassette builds a two-track cassette covering the body variants the
// codec produces: a JSON object body and a plain-text body, with and without
// a request body.
func SampleCassette() domain.Cassette {
	return domain.Cassette{
		{
			Request: domain.Request{
				Method:  "GET",
				URL:     "http://api.example.com/users?id=1",
				Path:    "/users?id=1",
				Headers: map[string]string{"Accept": "application/json"},
				Body:    nullable.NewNullNullable[string](),
			},
			Response: domain.Response{
				StatusCode: 200,
				Headers:    map[string]string{"Content-Type": "application/json"},
				Body:       json.RawMessage(`{"id":1}`),
			},
		},
		{
			Request: domain.Request{
				Method:  "POST",
				URL:     "http://api.example.com/notes",
				Path:    "/notes",
				Headers: map[string]string{"Content-Type": "text/plain"},
				Body:    nullable.NewNullableWithValue("remember the milk"),
			},
			Response: domain.Response{
				StatusCode: 201,
				Headers:    map[string]string{"Content-Type": "text/plain"},
				Body:       json.RawMessage(`"created"`),
			},
		},
	}
}

func RunCassetteStore(t *testing.T, newStore StoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	// Nested identities must be storable without producing nested paths.
	name := domain.CassetteName("TestContract/with_subtest")

	ok, err := store.Exists(ctx, name)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Fatalf("expected no cassette before save")
	}
	if _, err := store.Load(ctx, name); !errors.Is(err, cassettestore.ErrNotFound) {
		t.Fatalf("Load before save: err=%v, want ErrNotFound", err)
	}

	cassette := SampleCassette()
	if err := store.Save(ctx, name, cassette); err != nil {
		t.Fatalf("Save: %v", err)
	}
	ok, err = store.Exists(ctx, name)
	if err != nil || !ok {
		t.Fatalf("Exists after save: ok=%v err=%v", ok, err)
	}

	got, err := store.Load(ctx, name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(cassette) {
		t.Fatalf("loaded %d tracks, want %d", len(got), len(cassette))
	}
	for i := range cassette {
		want, have := cassette[i], got[i]
		if have.Request.Method != want.Request.Method || have.Request.URL != want.Request.URL {
			t.Fatalf("track %d request: %+v", i, have.Request)
		}
		if have.Response.StatusCode != want.Response.StatusCode {
			t.Fatalf("track %d status=%d, want %d", i, have.Response.StatusCode, want.Response.StatusCode)
		}
		if !jsonEqual(have.Response.Body, want.Response.Body) {
			t.Fatalf("track %d body=%s, want %s", i, have.Response.Body, want.Response.Body)
		}
	}
	// Request body nullability survives the round trip.
	if !got[0].Request.Body.IsNull() {
		t.Fatalf("track 0 request body should be null")
	}
	if v, err := got[1].Request.Body.Get(); err != nil || v != "remember the milk" {
		t.Fatalf("track 1 request body=%q err=%v", v, err)
	}

	// Overwrite semantics.
	if err := store.Save(ctx, name, cassette[:1]); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}
	got, err = store.Load(ctx, name)
	if err != nil || len(got) != 1 {
		t.Fatalf("expected 1 track after overwrite, got %d err=%v", len(got), err)
	}

	// Listing includes the saved cassette.
	names, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	found := false
	for _, n := range names {
		if n == name || n.FileName() == name.FileName() {
			found = true
		}
	}
	if !found {
		t.Fatalf("List missing %q: %v", name, names)
	}
}

func jsonEqual(a, b json.RawMessage) bool {
	var av, bv any
	if err := json.Unmarshal(a, &av); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		return false
	}
	ab, _ := json.Marshal(av)
	bb, _ := json.Marshal(bv)
	return string(ab) == string(bb)
}
