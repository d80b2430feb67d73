package realsender

import (
	"net/http"
	"time"

	"github.com/Overland-East-Bay/tapedeck/internal/ports/out/httpsender"
)

// Sender performs real HTTP calls over a fixed round tripper, typically the
// transport a client had before interception was installed.
type Sender struct {
	rt http.RoundTripper
}

var _ httpsender.Sender = (*Sender)(nil)

func New(rt http.RoundTripper) *Sender {
	if rt == nil {
		rt = http.DefaultTransport
	}
	return &Sender{rt: rt}
}

func (s *Sender) Send(req *http.Request, timeout time.Duration) (*http.Response, error) {
	client := &http.Client{Transport: s.rt, Timeout: timeout}
	return client.Do(req)
}
