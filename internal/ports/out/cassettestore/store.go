package cassettestore

import (
	"context"

	"github.com/Overland-East-Bay/tapedeck/internal/domain"
)

// Store persists cassettes keyed by their test-scoped name.
//
// Existence of a cassette is the sole signal a session uses to decide between
// recording and playback, so Exists must be cheap and side-effect free.
// Implementations may keep cassettes on the filesystem, in memory, or in any
// other durable storage system.
type Store interface {
	// Exists reports whether a cassette was previously saved under name.
	Exists(ctx context.Context, name domain.CassetteName) (bool, error)

	// Load returns the cassette saved under name. It returns ErrNotFound if
	// no cassette exists and a *CorruptError if the stored content cannot be
	// parsed into the track shape.
	Load(ctx context.Context, name domain.CassetteName) (domain.Cassette, error)

	// Save persists the cassette under name, overwriting any previous one.
	// A save must never leave a previously valid cassette half-written.
	Save(ctx context.Context, name domain.CassetteName, cassette domain.Cassette) error

	// List returns the names of all saved cassettes.
	List(ctx context.Context) ([]domain.CassetteName, error)
}
