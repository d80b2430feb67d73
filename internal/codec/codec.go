// Package codec converts a live HTTP exchange into its serializable track
// form and a stored track back into replayable response data. It holds no
// state; both directions are pure transformations.
package codec

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/oapi-codegen/nullable"

	"github.com/Overland-East-Bay/tapedeck/internal/domain"
)

// Encode captures one request/response pair as a track.
//
// The response body must already be fully read; reqBody is the outgoing body
// exactly as sent (nil when the request had none). If the response carries a
// gzip Content-Encoding the body is decoded here and the header dropped:
// keeping it would make the transport attempt a second decode on replay.
// Bodies that parse as JSON are stored as the parsed value; everything else
// is stored as the raw text.
func Encode(req *http.Request, reqBody []byte, resp *http.Response, respBody []byte) (domain.Track, error) {
	respHeaders := flattenHeader(resp.Header)

	body := respBody
	if enc := resp.Header.Get("Content-Encoding"); strings.Contains(strings.ToLower(enc), "gzip") {
		decoded, err := gunzip(body)
		if err != nil {
			return domain.Track{}, fmt.Errorf("decode gzip response body: %w", err)
		}
		body = decoded
		delete(respHeaders, "Content-Encoding")
	}

	track := domain.Track{
		Request: domain.Request{
			Method:  req.Method,
			URL:     req.URL.String(),
			Path:    req.URL.RequestURI(),
			Headers: flattenHeader(req.Header),
			Body:    requestBody(reqBody),
		},
		Response: domain.Response{
			StatusCode: resp.StatusCode,
			Headers:    respHeaders,
			Body:       storedBody(body),
		},
	}
	return track, nil
}

// DecodeForReplay turns a stored track into the synthetic response data the
// interception layer hands back: status code and headers unchanged, body
// re-serialized to a string. JSON bodies come back as compact JSON; text
// bodies come back verbatim.
func DecodeForReplay(track domain.Track) (int, http.Header, string) {
	header := make(http.Header, len(track.Response.Headers))
	for name, value := range track.Response.Headers {
		header.Set(name, value)
	}

	raw := track.Response.Body
	if len(raw) == 0 {
		return track.Response.StatusCode, header, ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return track.Response.StatusCode, header, text
	}
	var compacted bytes.Buffer
	if err := json.Compact(&compacted, raw); err != nil {
		// Load-time validation guarantees well-formed JSON; fall back to
		// the raw bytes if a hand-edited cassette slipped through.
		return track.Response.StatusCode, header, string(raw)
	}
	return track.Response.StatusCode, header, compacted.String()
}

// storedBody picks the persisted representation: parsed JSON value for JSON
// payloads, JSON string of the raw text otherwise. Bare JSON strings take the
// text path so record and replay output stay bit-identical.
func storedBody(body []byte) json.RawMessage {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err == nil {
		if _, isString := parsed.(string); !isString {
			var compacted bytes.Buffer
			if err := json.Compact(&compacted, body); err == nil {
				return json.RawMessage(compacted.Bytes())
			}
		}
	}
	quoted, err := json.Marshal(string(body))
	if err != nil {
		return json.RawMessage(`""`)
	}
	return json.RawMessage(quoted)
}

func requestBody(reqBody []byte) nullable.Nullable[string] {
	if reqBody == nil {
		return nullable.NewNullNullable[string]()
	}
	return nullable.NewNullableWithValue(string(reqBody))
}

// flattenHeader collapses multi-valued headers into the RFC 9110 list form,
// mirroring how the cassette format keeps one value per header name.
func flattenHeader(header http.Header) map[string]string {
	out := make(map[string]string, len(header))
	for name, values := range header {
		out[name] = strings.Join(values, ", ")
	}
	return out
}

func gunzip(body []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}
