package session

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Overland-East-Bay/tapedeck/internal/codec"
	"github.com/Overland-East-Bay/tapedeck/internal/domain"
	"github.com/Overland-East-Bay/tapedeck/internal/ports/out/interceptor"
)

// rewind registers one stub per track, in cassette order. The interception
// layer replaces stubs registered under the same method+URL key, so later
// duplicates are skipped here to preserve first-registered-wins: the second
// of two identical keys is unreachable either way, and this keeps which one
// answers consistent with the original recording order.
func (s *Session) rewind() {
	seen := make(map[string]struct{}, len(s.cassette))
	for _, track := range s.cassette {
		key := track.Request.Method + " " + track.Request.URL
		if _, dup := seen[key]; dup {
			s.log.Warn("duplicate track key, keeping first", zap.String("key", key))
			continue
		}
		seen[key] = struct{}{}
		s.intercept.RegisterStub(track.Request.Method, track.Request.URL, s.play(track))
	}
}

func (s *Session) play(track domain.Track) interceptor.Responder {
	return func(*http.Request) (interceptor.Reply, error) {
		status, header, body := codec.DecodeForReplay(track)
		s.stats.TracksPlayed++
		return interceptor.Reply{StatusCode: status, Header: header, Body: body}, nil
	}
}
