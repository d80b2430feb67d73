// Package session orchestrates one record-or-playback session over a single
// cassette identity. The mode is decided once at setup, from cassette
// existence alone, and never changes mid-session.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Overland-East-Bay/tapedeck/internal/domain"
	"github.com/Overland-East-Bay/tapedeck/internal/ports/out/cassettestore"
	"github.com/Overland-East-Bay/tapedeck/internal/ports/out/clock"
	"github.com/Overland-East-Bay/tapedeck/internal/ports/out/httpsender"
	"github.com/Overland-East-Bay/tapedeck/internal/ports/out/interceptor"
	platformclock "github.com/Overland-East-Bay/tapedeck/internal/platform/clock"
)

// Mode is the session's lifecycle state.
type Mode int

const (
	ModeUninitialized Mode = iota
	ModeRecording
	ModePlaying
	ModeTornDown
)

func (m Mode) String() string {
	switch m {
	case ModeUninitialized:
		return "uninitialized"
	case ModeRecording:
		return "recording"
	case ModePlaying:
		return "playing"
	case ModeTornDown:
		return "torn down"
	default:
		return "unknown"
	}
}

// DefaultRecordTimeout bounds each real call made while recording.
const DefaultRecordTimeout = 2 * time.Second

// Stats counts cassette and session activity.
type Stats struct {
	// TracksLoaded is the number of tracks loaded from the cassette at the
	// start of a playback session.
	TracksLoaded int

	// TracksRecorded is the number of new tracks captured this session.
	TracksRecorded int

	// TracksPlayed is the number of requests answered from the cassette.
	TracksPlayed int
}

// Session is the controller for one cassette identity. It is not safe for
// concurrent use; a session serves exactly one test at a time.
type Session struct {
	name      domain.CassetteName
	store     cassettestore.Store
	intercept interceptor.Interceptor
	sender    httpsender.Sender
	clk       clock.Clock
	log       *zap.Logger
	timeout   time.Duration

	mode      Mode
	cassette  domain.Cassette
	stats     Stats
	startedAt time.Time
}

type Option func(*Session)

// WithLogger attaches a structured logger; the default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithRecordTimeout overrides DefaultRecordTimeout.
func WithRecordTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// WithClock overrides the system clock.
func WithClock(clk clock.Clock) Option {
	return func(s *Session) { s.clk = clk }
}

func New(name domain.CassetteName, store cassettestore.Store, intercept interceptor.Interceptor, sender httpsender.Sender, opts ...Option) *Session {
	s := &Session{
		name:      name,
		store:     store,
		intercept: intercept,
		sender:    sender,
		clk:       platformclock.NewSystemClock(),
		log:       zap.NewNop(),
		timeout:   DefaultRecordTimeout,
		mode:      ModeUninitialized,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(
		zap.String("session", uuid.NewString()),
		zap.String("cassette", string(name)),
	)
	return s
}

// Setup starts interception and picks the session mode: no cassette means
// record, an existing cassette means play back. It must be called exactly
// once, before the test body issues any requests.
func (s *Session) Setup(ctx context.Context) error {
	if s.mode != ModeUninitialized {
		return fmt.Errorf("setup called on a %s session", s.mode)
	}
	s.startedAt = s.clk.Now()
	s.intercept.Start()

	exists, err := s.store.Exists(ctx, s.name)
	if err != nil {
		s.intercept.Stop()
		return fmt.Errorf("check cassette existence: %w", err)
	}
	if !exists {
		s.setupRecording()
		return nil
	}
	return s.setupPlayback(ctx)
}

func (s *Session) setupRecording() {
	s.log.Info("no cassette found, recording")
	s.intercept.Reset()
	s.intercept.RegisterCatchAll(s.record())
	s.mode = ModeRecording
}

func (s *Session) setupPlayback(ctx context.Context) error {
	cassette, err := s.store.Load(ctx, s.name)
	if err != nil {
		// Abort before any stand-ins exist; a failed setup must not leave
		// the mock transport installed.
		s.intercept.Stop()
		s.intercept.Reset()
		return fmt.Errorf("load cassette: %w", err)
	}
	s.cassette = cassette
	s.stats.TracksLoaded = len(cassette)

	s.intercept.Reset()
	s.rewind()
	s.mode = ModePlaying
	s.log.Info("playing back", zap.Int("tracks", len(cassette)))
	return nil
}

// Teardown stops interception and clears all stubs. Only a recording session
// that captured at least one track persists its cassette; a playback session
// never writes. Calling Teardown on an already torn-down session is a no-op
// so deferred cleanup stays safe on every path.
func (s *Session) Teardown(ctx context.Context) error {
	if s.mode == ModeTornDown {
		return nil
	}
	prev := s.mode
	s.mode = ModeTornDown
	s.intercept.Stop()
	s.intercept.Reset()

	if prev != ModeRecording || s.stats.TracksRecorded == 0 {
		return nil
	}
	if err := s.store.Save(ctx, s.name, s.cassette); err != nil {
		return fmt.Errorf("save cassette: %w", err)
	}
	s.log.Info("cassette saved",
		zap.Int("tracks", len(s.cassette)),
		zap.Duration("elapsed", s.clk.Now().Sub(s.startedAt)),
	)
	return nil
}

// Mode returns the session's current lifecycle state.
func (s *Session) Mode() Mode { return s.mode }

// Stats returns activity counters for the session so far.
func (s *Session) Stats() Stats { return s.stats }
