package util

import "github.com/oklog/ulid/v2"

// NewID returns a new ULID string. Used for request and event ids.
// ulid.Make draws from a process-wide monotonic source and is safe for concurrent use.
func NewID() string {
	return ulid.Make().String()
}
