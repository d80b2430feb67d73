package httpsender

import (
	"net/http"
	"time"
)

// Sender performs a real HTTP call on behalf of a recording session.
//
// The timeout bounds recording latency so a dead endpoint surfaces quickly
// instead of hanging the test run. Errors are transport-level failures and
// must propagate to the caller unchanged; a non-2xx response is not an error.
type Sender interface {
	Send(req *http.Request, timeout time.Duration) (*http.Response, error)
}
