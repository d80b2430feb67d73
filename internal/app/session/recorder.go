package session

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/Overland-East-Bay/tapedeck/internal/codec"
	"github.com/Overland-East-Bay/tapedeck/internal/ports/out/interceptor"
)

// record builds the catch-all responder used while recording: suspend
// interception, perform the real call, capture the exchange, and hand the
// real response back to the caller. Resume is deferred so interception is
// re-enabled no matter how the real call ends.
func (s *Session) record() interceptor.Responder {
	return func(req *http.Request) (interceptor.Reply, error) {
		resume := s.intercept.Suspend()
		defer resume()

		var reqBody []byte
		if req.Body != nil {
			b, err := io.ReadAll(req.Body)
			if err != nil {
				return interceptor.Reply{}, fmt.Errorf("read request body: %w", err)
			}
			_ = req.Body.Close()
			reqBody = b
			req.Body = io.NopCloser(bytes.NewReader(b))
		}

		// A transport failure here is the test's failure: propagate it
		// unchanged, record nothing.
		resp, err := s.sender.Send(req, s.timeout)
		if err != nil {
			return interceptor.Reply{}, err
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return interceptor.Reply{}, fmt.Errorf("read response body: %w", err)
		}

		track, err := codec.Encode(req, reqBody, resp, respBody)
		if err != nil {
			return interceptor.Reply{}, err
		}
		s.cassette = append(s.cassette, track)
		s.stats.TracksRecorded++
		s.log.Debug("recorded track",
			zap.String("method", track.Request.Method),
			zap.String("url", track.Request.URL),
			zap.Int("status", track.Response.StatusCode),
		)

		// Answer from the track's decoded form so the caller sees exactly
		// what a later playback of this track will produce.
		status, header, body := codec.DecodeForReplay(track)
		return interceptor.Reply{StatusCode: status, Header: header, Body: body}, nil
	}
}
