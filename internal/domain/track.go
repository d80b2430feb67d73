package domain

import (
	"encoding/json"
	"fmt"

	"github.com/oapi-codegen/nullable"
)

// Track is one complete HTTP exchange: the request exactly as sent and the
// decoded response captured for later replay.
type Track struct {
	Request  Request  `json:"request"`
	Response Response `json:"response"`
}

// Request is the recorded side of the exchange that was sent over the wire.
// Method and URL (query string included) form the lookup key during playback.
type Request struct {
	Method  string                    `json:"method"`
	URL     string                    `json:"url"`
	Path    string                    `json:"path"`
	Headers map[string]string         `json:"headers"`
	Body    nullable.Nullable[string] `json:"body"`
}

// Response stores the decoded representation of what the server returned.
// Body is the parsed value when the payload was JSON, or a JSON string of the
// raw text otherwise.
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       json.RawMessage   `json:"body"`
}

// Cassette is an ordered sequence of tracks. Insertion order is the
// chronological call order of the original recording; matching during
// playback is keyed, not positional.
type Cassette []Track

// Validate checks that every track carries the minimum shape playback relies
// on. Stores call it after parsing so a structurally hollow cassette is
// rejected at load time rather than at match time.
func (c Cassette) Validate() error {
	for i, track := range c {
		if track.Request.Method == "" {
			return fmt.Errorf("track %d: missing request method", i)
		}
		if track.Request.URL == "" {
			return fmt.Errorf("track %d: missing request url", i)
		}
		if track.Response.StatusCode == 0 {
			return fmt.Errorf("track %d: missing response status code", i)
		}
	}
	return nil
}
