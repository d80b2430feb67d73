package httpmockintercept

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/Overland-East-Bay/tapedeck/internal/ports/out/interceptor"
)

func fixedReply(status int, body string) interceptor.Responder {
	return func(*http.Request) (interceptor.Reply, error) {
		header := http.Header{}
		header.Set("X-Fixture", "yes")
		return interceptor.Reply{StatusCode: status, Header: header, Body: body}, nil
	}
}

func get(t *testing.T, client *http.Client, url string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func TestInterceptor_StubMatch(t *testing.T) {
	client := &http.Client{}
	i := New(client)
	i.Start()
	defer i.Stop()

	i.RegisterStub("GET", "http://fixture.test/ping", fixedReply(200, "pong"))

	resp, body := get(t, client, "http://fixture.test/ping")
	if resp.StatusCode != 200 || body != "pong" {
		t.Fatalf("status=%d body=%q", resp.StatusCode, body)
	}
	if resp.Header.Get("X-Fixture") != "yes" {
		t.Fatalf("missing stub header: %v", resp.Header)
	}
}

func TestInterceptor_QueryStringDistinguishesStubs(t *testing.T) {
	client := &http.Client{}
	i := New(client)
	i.Start()
	defer i.Stop()

	i.RegisterStub("GET", "http://fixture.test/users?id=1", fixedReply(200, "alice"))
	i.RegisterStub("GET", "http://fixture.test/users?id=2", fixedReply(200, "bob"))

	if _, body := get(t, client, "http://fixture.test/users?id=1"); body != "alice" {
		t.Fatalf("id=1 body=%q", body)
	}
	if _, body := get(t, client, "http://fixture.test/users?id=2"); body != "bob" {
		t.Fatalf("id=2 body=%q", body)
	}
}

func TestInterceptor_UnmatchedRequestFails(t *testing.T) {
	client := &http.Client{}
	i := New(client)
	i.Start()
	defer i.Stop()

	i.RegisterStub("GET", "http://fixture.test/known", fixedReply(200, "ok"))

	_, err := client.Get("http://fixture.test/unknown")
	if err == nil {
		t.Fatalf("expected error for unmatched request")
	}
	if !strings.Contains(err.Error(), "no responder found") {
		t.Fatalf("err=%v", err)
	}
}

func TestInterceptor_CatchAll(t *testing.T) {
	client := &http.Client{}
	i := New(client)
	i.Start()
	defer i.Stop()

	i.RegisterCatchAll(fixedReply(200, "anything"))

	if _, body := get(t, client, "http://fixture.test/whatever"); body != "anything" {
		t.Fatalf("body=%q", body)
	}
	if _, body := get(t, client, "http://other.test/path?x=1"); body != "anything" {
		t.Fatalf("body=%q", body)
	}
}

func TestInterceptor_SuspendAndResume(t *testing.T) {
	client := &http.Client{}
	i := New(client)
	i.Start()

	i.RegisterStub("GET", "http://fixture.test/ping", fixedReply(200, "pong"))

	resume := i.Suspend()
	if client.Transport != i.RealTransport() {
		t.Fatalf("suspend did not restore the real transport")
	}
	resume()

	if _, body := get(t, client, "http://fixture.test/ping"); body != "pong" {
		t.Fatalf("stub not active after resume: %q", body)
	}
	i.Stop()
}

func TestInterceptor_StopRestoresTransport(t *testing.T) {
	client := &http.Client{}
	i := New(client)

	i.Start()
	i.Stop()
	if client.Transport != i.RealTransport() {
		t.Fatalf("stop did not restore the real transport")
	}

	// Suspend after stop must be a no-op on resume.
	resume := i.Suspend()
	resume()
	if client.Transport != i.RealTransport() {
		t.Fatalf("resume re-enabled interception on a stopped client")
	}
}

func TestInterceptor_ResetClearsStubs(t *testing.T) {
	client := &http.Client{}
	i := New(client)
	i.Start()
	defer i.Stop()

	i.RegisterStub("GET", "http://fixture.test/ping", fixedReply(200, "pong"))
	i.Reset()

	if _, err := client.Get("http://fixture.test/ping"); err == nil {
		t.Fatalf("expected unmatched request after reset")
	}
}
