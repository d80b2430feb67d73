package interceptor

import "net/http"

// Reply is the synthetic response a stub hands back to the intercepted
// caller.
type Reply struct {
	StatusCode int
	Header     http.Header
	Body       string
}

// Responder produces the reply for one intercepted request. Returning an
// error fails the caller's request with that error.
type Responder func(req *http.Request) (Reply, error)

// Interceptor is the transport interception layer a session drives.
//
// The engine relies on the layer's own matching discipline: stubs are keyed
// by exact method + URL (query string included), and a request that matches
// no stub fails with whatever error the layer raises by default. The engine
// neither adds fallback behavior nor softens that error.
type Interceptor interface {
	// Start installs the interception layer on the underlying client.
	Start()

	// Stop removes the interception layer, restoring the real transport.
	Stop()

	// Reset removes all registered stubs.
	Reset()

	// RegisterStub registers a stub for an exact method + URL key.
	RegisterStub(method, url string, respond Responder)

	// RegisterCatchAll registers a stub that receives every request no
	// keyed stub matched.
	RegisterCatchAll(respond Responder)

	// Suspend lets real traffic through until the returned resume func is
	// called. Callers must guarantee resume runs regardless of the outcome
	// of the suspended work.
	Suspend() (resume func())
}
