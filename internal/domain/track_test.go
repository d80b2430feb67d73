package domain

import (
	"encoding/json"
	"testing"
)

func TestCassetteName_FileName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want string
	}{
		{"TestFoo", "TestFoo.cassette"},
		{"TestFoo/with_subtest", "TestFoo_with_subtest.cassette"},
		{"a/b/c", "a_b_c.cassette"},
		{`win\style`, "win_style.cassette"},
	}
	for _, tc := range cases {
		if got := CassetteName(tc.name).FileName(); got != tc.want {
			t.Fatalf("FileName(%q)=%q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCassette_Validate(t *testing.T) {
	t.Parallel()

	valid := Cassette{{
		Request:  Request{Method: "GET", URL: "http://x.test/"},
		Response: Response{StatusCode: 200, Body: json.RawMessage(`"ok"`)},
	}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	missingMethod := Cassette{{
		Request:  Request{URL: "http://x.test/"},
		Response: Response{StatusCode: 200},
	}}
	if err := missingMethod.Validate(); err == nil {
		t.Fatalf("expected error for missing method")
	}

	missingURL := Cassette{{
		Request:  Request{Method: "GET"},
		Response: Response{StatusCode: 200},
	}}
	if err := missingURL.Validate(); err == nil {
		t.Fatalf("expected error for missing url")
	}

	missingStatus := Cassette{{
		Request: Request{Method: "GET", URL: "http://x.test/"},
	}}
	if err := missingStatus.Validate(); err == nil {
		t.Fatalf("expected error for missing status code")
	}
}
