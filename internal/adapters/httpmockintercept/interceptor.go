// Package httpmockintercept implements the interceptor port over
// jarcoal/httpmock, bound to a single *http.Client. The mock transport owns
// method+URL matching (query string included) and fails unmatched requests
// with its NoResponderFound error. Registering a key twice replaces the
// first stub, so callers that need first-wins semantics must register each
// key only once.
package httpmockintercept

import (
	"net/http"

	"github.com/jarcoal/httpmock"

	"github.com/Overland-East-Bay/tapedeck/internal/ports/out/interceptor"
)

// Interceptor swaps a client's transport for an httpmock.MockTransport while
// active. The client's original transport is captured at construction so it
// can be restored on Stop and used for real calls during recording.
type Interceptor struct {
	client   *http.Client
	mock     *httpmock.MockTransport
	original http.RoundTripper
	active   bool
}

var _ interceptor.Interceptor = (*Interceptor)(nil)

func New(client *http.Client) *Interceptor {
	original := client.Transport
	if original == nil {
		original = http.DefaultTransport
	}
	return &Interceptor{
		client:   client,
		mock:     httpmock.NewMockTransport(),
		original: original,
	}
}

// RealTransport returns the transport the client had before interception.
func (i *Interceptor) RealTransport() http.RoundTripper { return i.original }

func (i *Interceptor) Start() {
	if i.active {
		return
	}
	i.client.Transport = i.mock
	i.active = true
}

func (i *Interceptor) Stop() {
	if !i.active {
		return
	}
	i.client.Transport = i.original
	i.active = false
}

func (i *Interceptor) Reset() {
	i.mock.Reset()
}

func (i *Interceptor) RegisterStub(method, url string, respond interceptor.Responder) {
	i.mock.RegisterResponder(method, url, adapt(respond))
}

func (i *Interceptor) RegisterCatchAll(respond interceptor.Responder) {
	i.mock.RegisterNoResponder(adapt(respond))
}

// Suspend points the client back at its real transport until resume is
// called. The session's recorder calls this around the real network call so
// nothing made inside that window is intercepted.
func (i *Interceptor) Suspend() (resume func()) {
	i.client.Transport = i.original
	return func() {
		if i.active {
			i.client.Transport = i.mock
		}
	}
}

func adapt(respond interceptor.Responder) httpmock.Responder {
	return func(req *http.Request) (*http.Response, error) {
		reply, err := respond(req)
		if err != nil {
			return nil, err
		}
		resp := httpmock.NewStringResponse(reply.StatusCode, reply.Body)
		if reply.Header != nil {
			resp.Header = reply.Header.Clone()
		}
		resp.Request = req
		return resp, nil
	}
}
