// Package tapedeck records and replays the HTTP interactions a test makes.
//
// The first run of a test performs real network calls and persists each
// exchange as a track on a cassette; later runs find the cassette and answer
// the same calls from it without touching the network. Deleting the cassette
// re-records it.
//
// Typical use:
//
//	client := &http.Client{}
//	tapedeck.Record(t, client, "testdata")
//	// issue requests through client as usual
//
// The cassette lands in testdata/cassettes/<TestName>.cassette.
package tapedeck

import (
	"context"
	"net/http"
	"testing"

	"github.com/Overland-East-Bay/tapedeck/internal/adapters/fscassette"
	"github.com/Overland-East-Bay/tapedeck/internal/adapters/httpmockintercept"
	"github.com/Overland-East-Bay/tapedeck/internal/adapters/realsender"
	"github.com/Overland-East-Bay/tapedeck/internal/app/session"
	"github.com/Overland-East-Bay/tapedeck/internal/domain"
	"github.com/Overland-East-Bay/tapedeck/internal/ports/out/cassettestore"
)

// Session controls one record-or-playback session. See the session package
// for lifecycle semantics.
type Session = session.Session

// Stats counts cassette and session activity.
type Stats = session.Stats

// Mode is a session's lifecycle state.
type Mode = session.Mode

const (
	ModeRecording = session.ModeRecording
	ModePlaying   = session.ModePlaying
	ModeTornDown  = session.ModeTornDown
)

// Option configures a session.
type Option = session.Option

var (
	// WithLogger attaches a structured logger to the session.
	WithLogger = session.WithLogger
	// WithRecordTimeout bounds each real call made while recording.
	WithRecordTimeout = session.WithRecordTimeout
)

// Store is the cassette persistence port, for callers that bring their own
// backend via NewWithStore.
type Store = cassettestore.Store

// New wires a session over client with the default filesystem store rooted
// at baseDir. The session is not started; call Setup and Teardown yourself,
// or use Record.
func New(client *http.Client, baseDir, name string, opts ...Option) *Session {
	return NewWithStore(client, fscassette.NewStore(baseDir), name, opts...)
}

// NewWithStore is New with a caller-provided cassette store.
func NewWithStore(client *http.Client, store Store, name string, opts ...Option) *Session {
	intercept := httpmockintercept.New(client)
	sender := realsender.New(intercept.RealTransport())
	return session.New(domain.CassetteName(name), store, intercept, sender, opts...)
}

// Record wires a session for t, named after the test, runs Setup, and
// registers Teardown to run when the test (and its subtests) finish,
// pass or fail.
func Record(t testing.TB, client *http.Client, baseDir string, opts ...Option) *Session {
	t.Helper()
	s := New(client, baseDir, t.Name(), opts...)
	if err := s.Setup(context.Background()); err != nil {
		t.Fatalf("tapedeck setup: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Teardown(context.Background()); err != nil {
			t.Errorf("tapedeck teardown: %v", err)
		}
	})
	return s
}
