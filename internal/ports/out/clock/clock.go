package clock

import "time"

// Clock provides time to the engine (session timing, store timestamps).
// Using an interface keeps recording sessions deterministic under test.
type Clock interface {
	Now() time.Time
}
