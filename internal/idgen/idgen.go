package idgen

import "github.com/google/uuid"

// NewFunc produces run identifiers; tests replace it for stable output.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier as string.
func New() string { return NewFunc() }

// Short returns the first segment of a new identifier, handy for log lines.
func Short() string {
	id := New()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
