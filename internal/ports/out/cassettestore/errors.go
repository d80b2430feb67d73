package cassettestore

import (
	"errors"
	"fmt"

	"github.com/Overland-East-Bay/tapedeck/internal/domain"
)

// ErrNotFound is returned by Load when no cassette exists under the requested
// name. Sessions check existence before loading, so seeing this error during
// playback is an invariant violation, not a recoverable condition.
var ErrNotFound = errors.New("cassette not found")

// CorruptError reports a cassette whose stored content is not valid JSON or
// does not match the track shape.
type CorruptError struct {
	Name domain.CassetteName
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("cassette %q is corrupt: %v", string(e.Name), e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }
