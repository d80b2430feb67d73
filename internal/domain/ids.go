package domain

import "strings"

// CassetteName is the test-scoped identity of a cassette, typically the
// enclosing test's name. We model it as an opaque identifier: its format is
// controlled by the test runner.
type CassetteName string

// FileName flattens path separators so nested test identifiers (e.g. Go
// subtests joined with "/") never produce nested directories, and appends the
// cassette suffix.
func (n CassetteName) FileName() string {
	sanitized := strings.NewReplacer("/", "_", "\\", "_").Replace(string(n))
	return sanitized + ".cassette"
}
